package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"immo-scraper/models"
	"immo-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Summarize projects a stored record onto the fields the report uses.
func Summarize(rec models.Record) models.ListingSummary {
	s := models.ListingSummary{}
	s.Title, _ = rec.Text("title")
	s.City, _ = rec.Text("city")
	s.Source, _ = rec.Text("source")
	s.URL, _ = rec.Text("url")
	s.Price, _ = rec.Int("price")
	s.SurfaceArea, _ = rec.Float("surface_area")
	return s
}

func (s *InsightService) Generate(listings []models.ListingSummary) *models.InsightReport {
	report := &models.InsightReport{
		BySource:       make(map[string]int),
		ListingsByCity: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	var priced []models.ListingSummary
	for i := range listings {
		l := listings[i]
		if l.Source != "" {
			report.BySource[l.Source]++
		}
		if l.City != "" {
			report.ListingsByCity[l.City]++
		}
		if l.Price > 0 {
			priced = append(priced, l)
		}
		if l.SurfaceArea > 0 {
			if report.LargestSurface == nil || l.SurfaceArea > report.LargestSurface.SurfaceArea {
				cp := l
				report.LargestSurface = &cp
			}
		}
	}

	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		var total int64
		for i := range priced {
			l := priced[i]
			total += l.Price
			if l.Price < report.MinPrice {
				report.MinPrice = l.Price
			}
			if l.Price >= report.MaxPrice {
				report.MaxPrice = l.Price
				cp := l
				report.MostExpensive = &cp
			}
		}
		report.AveragePrice = float64(total) / float64(len(priced))
	}

	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  IMMOBILIER SCRAPE INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total listings stored : \033[1m%d\033[0m\n", r.TotalListings)
	for _, src := range sortedKeys(r.BySource) {
		fmt.Printf("  %-22s: \033[1m%d\033[0m\n", src, r.BySource[src])
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Price Statistics (CFA)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price : \033[1;32m%.0f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m%d\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m%d\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.MostExpensive.Title, 50))
		fmt.Printf("  City  : %s\n", r.MostExpensive.City)
		fmt.Printf("  Price : \033[1;31m%d CFA\033[0m\n", r.MostExpensive.Price)
		fmt.Println()
	}

	if r.LargestSurface != nil {
		fmt.Printf("\033[1;33m  Largest Surface\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.LargestSurface.Title, 50))
		fmt.Printf("  Surface : \033[1;32m%.1f m²\033[0m\n", r.LargestSurface.SurfaceArea)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Listings by City\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ListingsByCity) == 0 {
		fmt.Printf("  No city data\n")
	} else {
		type cityCount struct {
			city  string
			count int
		}
		var cities []cityCount
		for city, cnt := range r.ListingsByCity {
			cities = append(cities, cityCount{city, cnt})
		}
		sort.Slice(cities, func(i, j int) bool {
			if cities[i].count != cities[j].count {
				return cities[i].count > cities[j].count
			}
			return cities[i].city < cities[j].city
		})
		for _, cc := range cities {
			bar := strings.Repeat("█", cc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(cc.city, 28), bar, cc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truncate cuts a string to a display width, not a byte count — titles are
// French text with accents and the layout breaks on byte-based slicing.
func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}
