package coinafrique

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"immo-scraper/models"
	"immo-scraper/scraper"
)

var (
	latRe = regexp.MustCompile(`"lat":([\d.-]+)`)
	lngRe = regexp.MustCompile(`"lng":([\d.-]+)`)
)

// parseListing extracts detail-page links and the next pagination URL.
func parseListing(doc *goquery.Document, pageURL string) (links []string, next string) {
	doc.Find(`div.column.four-fifth a[href*="/annonce/"]`).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			links = append(links, scraper.Resolve(pageURL, href))
		}
	})

	pager := doc.Find(`li.pagination-indicator.direction a[href*="page="]`)
	if href, ok := pager.Last().Attr("href"); ok {
		next = scraper.Resolve(pageURL, href)
	}
	return links, next
}

// parseDetail extracts one listing page into a RawRecord. Values go out as
// the DOM produced them; coercion is the pipeline's job.
func parseDetail(doc *goquery.Document, pageURL string) models.RawRecord {
	rec := models.RawRecord{
		"url":    models.Scalar(pageURL),
		"source": models.Scalar(source),
	}

	scraper.AddText(rec, "title", doc.Find("h1.title-ad"))
	scraper.AddText(rec, "price", doc.Find("p.price"))
	scraper.AddText(rec, "city", doc.Find("span[data-address] span"))
	scraper.AddText(rec, "description", doc.Find("div.ad__info__box-descriptions p:nth-of-type(2)"))

	// characteristics table rows are labelled in French
	doc.Find("div.details-characteristics li").Each(func(_ int, li *goquery.Selection) {
		label := li.Text()
		qt := li.Find("span.qt")
		switch {
		case strings.Contains(label, "pièces"):
			scraper.AddText(rec, "bedrooms", qt)
		case strings.Contains(label, "salle"):
			scraper.AddText(rec, "bathrooms", qt)
		case strings.Contains(label, "Superficie"):
			scraper.AddText(rec, "surface_area", qt)
		}
	})

	if geo, ok := doc.Find("div#ad-details").Attr("data-geolocation"); ok {
		if m := latRe.FindStringSubmatch(geo); m != nil {
			rec["latitude"] = models.Scalar(m[1])
		}
		if m := lngRe.FindStringSubmatch(geo); m != nil {
			rec["longitude"] = models.Scalar(m[1])
		}
	}

	if doc.Find("a.card-image img.icon-pro").Length() > 0 {
		rec["statut"] = models.Scalar("Pro")
	} else {
		rec["statut"] = models.Scalar("Particulier")
	}

	scraper.AddText(rec, "nb_annonces", doc.Find("p.nb-ads"))
	scraper.AddText(rec, "posted_time", doc.Find("div.extra-info-ad-detail span.valign-wrapper span"))

	return rec
}
