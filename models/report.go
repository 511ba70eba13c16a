package models

// ListingSummary is the slice of a stored row the insight report cares about.
type ListingSummary struct {
	Title       string
	City        string
	Source      string
	URL         string
	Price       int64
	SurfaceArea float64
}

// InsightReport holds the computed analytics over the persisted dataset.
type InsightReport struct {
	TotalListings  int
	BySource       map[string]int
	AveragePrice   float64
	MinPrice       int64
	MaxPrice       int64
	MostExpensive  *ListingSummary
	LargestSurface *ListingSummary
	ListingsByCity map[string]int
}
