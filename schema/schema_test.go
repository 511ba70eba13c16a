package schema

import "testing"

func TestEverySchemaSharesTheIngestionContract(t *testing.T) {
	for _, sc := range All() {
		if sc.ConflictKey != "url" {
			t.Errorf("%s: conflict key got %q, want url", sc.Source, sc.ConflictKey)
		}

		if len(sc.UpdateSet) != 2 || !sc.Mutable("price") || !sc.Mutable("scraped_at") {
			t.Errorf("%s: update set got %v, want exactly price and scraped_at", sc.Source, sc.UpdateSet)
		}

		price, ok := sc.Column("price")
		if !ok || !price.Required || price.Kind != Integer {
			t.Errorf("%s: price must be a required integer column", sc.Source)
		}

		id, ok := sc.Column("id")
		if !ok || !id.PrimaryKey {
			t.Errorf("%s: id must be the primary key", sc.Source)
		}

		url, ok := sc.Column("url")
		if !ok || !url.Unique {
			t.Errorf("%s: url must carry the uniqueness constraint", sc.Source)
		}

		if _, ok := sc.Column("scraped_at"); !ok {
			t.Errorf("%s: scraped_at column missing", sc.Source)
		}
	}
}

func TestSchemaSpecificColumns(t *testing.T) {
	tests := []struct {
		sc      Schema
		table   string
		present []string
		absent  []string
	}{
		{Generic, "properties",
			[]string{"latitude", "longitude", "nb_annonces"},
			[]string{"region", "member_since", "listing_id"}},
		{ExpatDakar, "expat_dakar_properties",
			[]string{"region", "member_since"},
			[]string{"latitude", "nb_annonces", "listing_id"}},
		{LogerDakar, "loger_dakar_properties",
			[]string{"region", "listing_id"},
			[]string{"latitude", "nb_annonces", "member_since"}},
	}

	for _, tt := range tests {
		if tt.sc.Table != tt.table {
			t.Errorf("%s: table got %q, want %q", tt.sc.Source, tt.sc.Table, tt.table)
		}
		for _, name := range tt.present {
			if _, ok := tt.sc.Column(name); !ok {
				t.Errorf("%s: expected column %q", tt.sc.Source, name)
			}
		}
		for _, name := range tt.absent {
			if _, ok := tt.sc.Column(name); ok {
				t.Errorf("%s: unexpected column %q", tt.sc.Source, name)
			}
		}
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"generic", "coinafrique", true},
		{"Coinafrique", "coinafrique", true},
		{"expat_dakar", "expat_dakar", true},
		{"expat-dakar", "expat_dakar", true},
		{"loger_dakar", "loger_dakar", true},
		{"mubawab", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		sc, ok := ByName(tt.in)
		if ok != tt.ok {
			t.Errorf("ByName(%q): ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && sc.Source != tt.want {
			t.Errorf("ByName(%q): got %q, want %q", tt.in, sc.Source, tt.want)
		}
	}
}

func TestRequiredOrder(t *testing.T) {
	got := Generic.Required()
	want := []string{"id", "url", "price"}
	if len(got) != len(want) {
		t.Fatalf("required: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("required: got %v, want %v", got, want)
		}
	}
}
