package logerdakar

import (
	"github.com/PuerkitoBio/goquery"

	"immo-scraper/models"
	"immo-scraper/scraper"
)

// listingCard is what the index page knows about one property.
type listingCard struct {
	href  string
	title string
}

// parseListing extracts property cards and the next pagination URL.
func parseListing(doc *goquery.Document, pageURL string) (cards []listingCard, next string) {
	doc.Find("article.g5ere__property-item").Each(func(_ int, article *goquery.Selection) {
		thumb := article.Find("a.g5core__entry-thumbnail")
		href, ok := thumb.Attr("href")
		if !ok || href == "" {
			return
		}
		title, _ := thumb.Attr("title")
		cards = append(cards, listingCard{
			href:  scraper.Resolve(pageURL, href),
			title: title,
		})
	})

	if href, ok := doc.Find("a.next").First().Attr("href"); ok {
		next = scraper.Resolve(pageURL, href)
	}
	return cards, next
}

// parseDetail extracts one listing page into a RawRecord, merging in the
// title carried over from the index card.
func parseDetail(doc *goquery.Document, card listingCard) models.RawRecord {
	rec := models.RawRecord{
		"url":    models.Scalar(card.href),
		"source": models.Scalar(source),
	}
	if card.title != "" {
		rec["title"] = models.Scalar(card.title)
	}

	scraper.AddText(rec, "price", doc.Find("span.g5ere__lpp-price"))
	scraper.AddText(rec, "adresse", doc.Find("li.address span"))
	scraper.AddText(rec, "city", doc.Find("li.city a"))
	scraper.AddText(rec, "region", doc.Find("li.state a"))
	scraper.AddText(rec, "description", doc.Find("div.g5ere__property-block-description"))

	scraper.AddText(rec, "bedrooms", doc.Find("span.g5ere__property-bedrooms"))
	scraper.AddText(rec, "bathrooms", doc.Find("span.g5ere__property-bathrooms"))
	scraper.AddText(rec, "surface_area", doc.Find("span.g5ere__loop-property-size"))

	scraper.AddText(rec, "listing_id", doc.Find("span.g5ere__property-identity"))
	scraper.AddText(rec, "posted_time", doc.Find("div.g5ere__property-date span"))
	scraper.AddText(rec, "property_type", doc.Find("span.g5ere__property-type a"))
	scraper.AddText(rec, "statut", doc.Find("span.g5ere__property-status a"))

	return rec
}
