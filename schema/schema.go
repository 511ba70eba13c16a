// Package schema describes the three source schemas: which columns each
// source persists, which fields are required, and how upserts behave.
// The pipeline and the store are both driven entirely by these descriptors,
// so adding a source is a matter of declaring a new Schema here.
package schema

import "strings"

// Kind is the coerced type of a column's value.
type Kind int

const (
	Text Kind = iota
	Integer
	Real
	Timestamp
)

// Column describes one persisted column.
type Column struct {
	Name       string
	Kind       Kind
	Required   bool
	PrimaryKey bool
	Unique     bool
}

// Schema describes one source's table: ordered column list, conflict key,
// and the mutable subset refreshed when a known URL is seen again.
type Schema struct {
	Source      string
	Table       string
	Columns     []Column
	ConflictKey string
	UpdateSet   []string
}

// Column returns the descriptor for the named column.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Required returns the names of all required columns, in column order.
func (s Schema) Required() []string {
	var names []string
	for _, c := range s.Columns {
		if c.Required {
			names = append(names, c.Name)
		}
	}
	return names
}

// Mutable reports whether the named column belongs to the upsert update set.
func (s Schema) Mutable(name string) bool {
	for _, m := range s.UpdateSet {
		if m == name {
			return true
		}
	}
	return false
}

// baseColumns are shared by every source table. The id is the md5 hex digest
// of the url, so it is fixed-width; url carries the uniqueness constraint
// that makes cross-run upserts work.
func baseColumns() []Column {
	return []Column{
		{Name: "id", Kind: Text, Required: true, PrimaryKey: true},
		{Name: "url", Kind: Text, Required: true, Unique: true},
		{Name: "title", Kind: Text},
		{Name: "price", Kind: Integer, Required: true},
		{Name: "surface_area", Kind: Real},
		{Name: "bedrooms", Kind: Integer},
		{Name: "bathrooms", Kind: Integer},
		{Name: "city", Kind: Text},
		{Name: "description", Kind: Text},
		{Name: "source", Kind: Text},
		{Name: "scraped_at", Kind: Timestamp},
		{Name: "statut", Kind: Text},
		{Name: "posted_time", Kind: Text},
		{Name: "adresse", Kind: Text},
		{Name: "property_type", Kind: Text},
	}
}

func withExtras(extras ...Column) []Column {
	return append(baseColumns(), extras...)
}

var (
	// Generic is the coinafrique schema: geolocation plus advertiser stats.
	Generic = Schema{
		Source: "coinafrique",
		Table:  "properties",
		Columns: withExtras(
			Column{Name: "latitude", Kind: Real},
			Column{Name: "longitude", Kind: Real},
			Column{Name: "nb_annonces", Kind: Integer},
		),
		ConflictKey: "url",
		UpdateSet:   []string{"price", "scraped_at"},
	}

	// ExpatDakar adds the region and the advertiser's membership age.
	ExpatDakar = Schema{
		Source: "expat_dakar",
		Table:  "expat_dakar_properties",
		Columns: withExtras(
			Column{Name: "region", Kind: Text},
			Column{Name: "member_since", Kind: Text},
		),
		ConflictKey: "url",
		UpdateSet:   []string{"price", "scraped_at"},
	}

	// LogerDakar adds the region and the site's own listing reference.
	LogerDakar = Schema{
		Source: "loger_dakar",
		Table:  "loger_dakar_properties",
		Columns: withExtras(
			Column{Name: "region", Kind: Text},
			Column{Name: "listing_id", Kind: Text},
		),
		ConflictKey: "url",
		UpdateSet:   []string{"price", "scraped_at"},
	}
)

// All lists every registered schema.
func All() []Schema {
	return []Schema{Generic, ExpatDakar, LogerDakar}
}

// ByName resolves a schema from its configuration name.
func ByName(name string) (Schema, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "generic", "coinafrique":
		return Generic, true
	case "expat_dakar", "expat-dakar":
		return ExpatDakar, true
	case "loger_dakar", "loger-dakar":
		return LogerDakar, true
	}
	return Schema{}, false
}
