package models

import (
	"testing"
	"time"
)

func TestRawValueShapes(t *testing.T) {
	var absent RawValue
	if !absent.Absent() {
		t.Error("zero RawValue must be absent")
	}
	if _, ok := absent.First(); ok {
		t.Error("First on absent value must report not-ok")
	}

	if v, ok := Scalar("x").First(); !ok || v != "x" {
		t.Errorf("scalar First: got (%q, %v)", v, ok)
	}

	list := List("a", "b")
	if v, _ := list.First(); v != "a" {
		t.Errorf("list First: got %q", v)
	}
	if len(list.Values()) != 2 {
		t.Errorf("Values: got %d, want 2", len(list.Values()))
	}
}

func TestRawRecordGetMissingField(t *testing.T) {
	rec := RawRecord{"price": Scalar("1")}
	if !rec.Get("title").Absent() {
		t.Error("missing field must read as absent")
	}
}

func TestRecordAccessors(t *testing.T) {
	now := time.Now()
	rec := Record{
		"price":        int64(750000),
		"surface_area": 120.5,
		"city":         "Dakar",
		"scraped_at":   now,
	}

	if n, ok := rec.Int("price"); !ok || n != 750000 {
		t.Errorf("Int: got (%d, %v)", n, ok)
	}
	if f, ok := rec.Float("surface_area"); !ok || f != 120.5 {
		t.Errorf("Float: got (%g, %v)", f, ok)
	}
	if f, ok := rec.Float("price"); !ok || f != 750000 {
		t.Errorf("Float over integer: got (%g, %v)", f, ok)
	}
	if s, ok := rec.Text("city"); !ok || s != "Dakar" {
		t.Errorf("Text: got (%q, %v)", s, ok)
	}
	if ts, ok := rec.Time("scraped_at"); !ok || !ts.Equal(now) {
		t.Errorf("Time: got (%v, %v)", ts, ok)
	}
	if _, ok := rec.Int("missing"); ok {
		t.Error("Int on missing field must report not-ok")
	}
}
