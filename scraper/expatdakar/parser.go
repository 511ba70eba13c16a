package expatdakar

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"immo-scraper/models"
	"immo-scraper/scraper"
)

// parseListing extracts detail-page links and the next pagination URL.
func parseListing(doc *goquery.Document, pageURL string) (links []string, next string) {
	doc.Find(`a.listing-card__inner[href*="/annonce/"]`).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			links = append(links, scraper.Resolve(pageURL, href))
		}
	})

	if href, ok := doc.Find(`a[rel="next"]`).First().Attr("href"); ok {
		next = scraper.Resolve(pageURL, href)
	}
	return links, next
}

// parseDetail extracts one listing page into a RawRecord.
func parseDetail(doc *goquery.Document, pageURL string) models.RawRecord {
	rec := models.RawRecord{
		"url":           models.Scalar(pageURL),
		"source":        models.Scalar(source),
		"statut":        models.Scalar("Particulier"),
		"property_type": models.Scalar("Appartement"),
	}

	scraper.AddText(rec, "title", doc.Find("h1.listing-item__header"))
	scraper.AddText(rec, "price", doc.Find("span.listing-card__price__value"))
	scraper.AddText(rec, "city", doc.Find("span.listing-item__address-location"))
	scraper.AddText(rec, "region", doc.Find("span.listing-item__address-region"))
	scraper.AddText(rec, "description", doc.Find("div.listing-item__description"))

	// characteristics are a dt/dd definition list with French labels
	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		label := dt.Text()
		dd := dt.NextFiltered("dd")
		switch {
		case strings.Contains(label, "Chambres"):
			scraper.AddText(rec, "bedrooms", dd)
		case strings.Contains(label, "Salle de Bain"):
			scraper.AddText(rec, "bathrooms", dd)
		case strings.Contains(label, "Mètres carrés"):
			scraper.AddText(rec, "surface_area", dd)
		}
	})

	if ref := doc.Find("div.listing-item__details__ad-id").Text(); ref != "" {
		ref = strings.TrimSpace(strings.ReplaceAll(ref, "Référence de l'annonce :", ""))
		rec["listing_id"] = models.Scalar(ref)
	}
	scraper.AddText(rec, "posted_time", doc.Find("div.listing-item__details__date"))

	if member := doc.Find("span.listing-item-transparency__member-since").Text(); member != "" {
		member = strings.TrimSpace(strings.ReplaceAll(member, "Membre depuis", ""))
		rec["member_since"] = models.Scalar(member)
	}

	return rec
}
