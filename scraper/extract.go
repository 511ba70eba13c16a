package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"immo-scraper/models"
)

// AddText stores every matched node's text under the field, preserving the
// multi-valued shape when a selector hits more than one element. Nothing is
// stored when the selector matched nothing, so absent stays absent.
func AddText(rec models.RawRecord, field string, sel *goquery.Selection) {
	var vals []string
	sel.Each(func(_ int, s *goquery.Selection) {
		vals = append(vals, s.Text())
	})
	switch len(vals) {
	case 0:
	case 1:
		rec[field] = models.Scalar(vals[0])
	default:
		rec[field] = models.List(vals...)
	}
}
