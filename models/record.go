package models

import "time"

// RawValue is a single field as the extraction layer produced it: absent,
// one text value, or several text values when a selector matched more than
// one DOM node. The zero value is absent.
type RawValue struct {
	vals []string
}

// Scalar wraps a single extracted text value.
func Scalar(s string) RawValue {
	return RawValue{vals: []string{s}}
}

// List wraps an ordered sequence of extracted text values.
func List(vs ...string) RawValue {
	return RawValue{vals: vs}
}

// Absent reports whether no value was extracted at all.
func (v RawValue) Absent() bool {
	return len(v.vals) == 0
}

// First returns the first extracted value, untrimmed.
func (v RawValue) First() (string, bool) {
	if len(v.vals) == 0 {
		return "", false
	}
	return v.vals[0], true
}

// Values returns every extracted value in order.
func (v RawValue) Values() []string {
	return v.vals
}

// RawRecord is one extracted listing before any type coercion. Field names
// match the persisted column names. A missing key and an absent RawValue
// mean the same thing; Get makes the two indistinguishable to callers.
type RawRecord map[string]RawValue

// Get returns the field's raw value, absent if the field was never set.
func (r RawRecord) Get(name string) RawValue {
	return r[name]
}

// Record is a normalized listing: every value present has already been
// coerced to int64, float64, string, or time.Time by the normalization
// boundary. No raw extraction text survives into a Record.
type Record map[string]any

// Text returns the named field as a string.
func (r Record) Text(name string) (string, bool) {
	s, ok := r[name].(string)
	return s, ok
}

// Int returns the named field as an int64.
func (r Record) Int(name string) (int64, bool) {
	switch n := r[name].(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// Float returns the named field as a float64.
func (r Record) Float(name string) (float64, bool) {
	switch n := r[name].(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Time returns the named field as a time.Time.
func (r Record) Time(name string) (time.Time, bool) {
	t, ok := r[name].(time.Time)
	return t, ok
}
