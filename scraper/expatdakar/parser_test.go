package expatdakar

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const detailHTML = `
<html><body>
  <h1 class="listing-item__header">Appartement meublé 3 pièces</h1>
  <span class="listing-card__price__value">650 000 F Cfa</span>
  <span class="listing-item__address-location">Ngor</span>
  <span class="listing-item__address-region">Dakar</span>
  <div class="listing-item__description">Grand appartement avec vue sur mer.</div>
  <dl>
    <dt>Chambres</dt><dd>3</dd>
    <dt>Salle de Bain</dt><dd>2</dd>
    <dt>Mètres carrés</dt><dd>110 m²</dd>
  </dl>
  <div class="listing-item__details__ad-id">Référence de l'annonce : 178-442</div>
  <div class="listing-item__details__date">il y a 2 jours</div>
  <span class="listing-item-transparency__member-since">Membre depuis mars 2021</span>
</body></html>`

const listingHTML = `
<html><body>
  <a class="listing-card__inner" href="/annonce/appart-1">A</a>
  <a class="listing-card__inner" href="/annonce/villa-2">B</a>
  <a class="listing-card__inner" href="/vendeur/ignore">C</a>
  <a rel="next" href="/immobilier?page=2">Suivant</a>
</body></html>`

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return d
}

func TestParseDetail(t *testing.T) {
	rec := parseDetail(doc(t, detailHTML), "https://www.expat-dakar.com/annonce/appart-1")

	text := func(field string) string {
		v, _ := rec.Get(field).First()
		return strings.TrimSpace(v)
	}

	if got := text("title"); got != "Appartement meublé 3 pièces" {
		t.Errorf("title: got %q", got)
	}
	if got := text("price"); got != "650 000 F Cfa" {
		t.Errorf("price: got %q", got)
	}
	if got := text("city"); got != "Ngor" {
		t.Errorf("city: got %q", got)
	}
	if got := text("region"); got != "Dakar" {
		t.Errorf("region: got %q", got)
	}
	if got := text("bedrooms"); got != "3" {
		t.Errorf("bedrooms: got %q", got)
	}
	if got := text("bathrooms"); got != "2" {
		t.Errorf("bathrooms: got %q", got)
	}
	if got := text("surface_area"); got != "110 m²" {
		t.Errorf("surface_area: got %q", got)
	}
	if got := text("listing_id"); got != "178-442" {
		t.Errorf("listing_id: got %q", got)
	}
	if got := text("member_since"); got != "mars 2021" {
		t.Errorf("member_since: got %q", got)
	}
	if got := text("statut"); got != "Particulier" {
		t.Errorf("statut: got %q", got)
	}
	if got := text("source"); got != "expat_dakar" {
		t.Errorf("source: got %q", got)
	}
}

func TestParseListing(t *testing.T) {
	links, next := parseListing(doc(t, listingHTML), "https://www.expat-dakar.com/immobilier")

	if len(links) != 2 {
		t.Fatalf("links: got %d, want 2", len(links))
	}
	if links[1] != "https://www.expat-dakar.com/annonce/villa-2" {
		t.Errorf("second link: got %q", links[1])
	}
	if next != "https://www.expat-dakar.com/immobilier?page=2" {
		t.Errorf("next: got %q", next)
	}
}

func TestParseListingWithoutNext(t *testing.T) {
	_, next := parseListing(doc(t, `<html><body></body></html>`), "https://www.expat-dakar.com/immobilier")
	if next != "" {
		t.Errorf("next: got %q, want empty", next)
	}
}
