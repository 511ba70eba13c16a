package coinafrique

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const detailHTML = `
<html><body>
  <h1 class="title-ad"> Appartement F4 aux Almadies </h1>
  <p class="price">45 000 000 CFA</p>
  <span data-address><span>Dakar</span></span>
  <div class="ad__info__box-descriptions">
    <p>Caractéristiques</p>
    <p> Bel appartement lumineux proche de la corniche. </p>
  </div>
  <div class="details-characteristics">
    <ul>
      <li>Nombre de pièces <span class="qt">4</span></li>
      <li>Nombre de salle de bain <span class="qt">2</span></li>
      <li>Superficie <span class="qt">120 m²</span></li>
    </ul>
  </div>
  <div id="ad-details" data-geolocation='{"lat":14.744,"lng":-17.529}'></div>
  <a class="card-image"><img class="icon-pro" src="pro.png"></a>
  <p class="nb-ads">32 annonces</p>
  <div class="extra-info-ad-detail"><span class="valign-wrapper"><span>il y a 3 jours</span></span></div>
</body></html>`

const listingHTML = `
<html><body>
  <div class="column four-fifth">
    <a href="/annonce/appartement-1">A</a>
    <a href="/annonce/villa-2">B</a>
    <a href="/autre/ignore">C</a>
  </div>
  <ul>
    <li class="pagination-indicator direction"><a href="?page=1">1</a></li>
    <li class="pagination-indicator direction"><a href="?page=4">Suivant</a></li>
  </ul>
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
	rec := parseDetail(doc(t, detailHTML), "https://sn.coinafrique.com/annonce/appartement-1")

	text := func(field string) string {
		v, _ := rec.Get(field).First()
		return strings.TrimSpace(v)
	}

	if got := text("title"); got != "Appartement F4 aux Almadies" {
		t.Errorf("title: got %q", got)
	}
	if got := text("price"); got != "45 000 000 CFA" {
		t.Errorf("price: got %q", got)
	}
	if got := text("city"); got != "Dakar" {
		t.Errorf("city: got %q", got)
	}
	if got := text("bedrooms"); got != "4" {
		t.Errorf("bedrooms: got %q", got)
	}
	if got := text("bathrooms"); got != "2" {
		t.Errorf("bathrooms: got %q", got)
	}
	if got := text("surface_area"); got != "120 m²" {
		t.Errorf("surface_area: got %q", got)
	}
	if got := text("latitude"); got != "14.744" {
		t.Errorf("latitude: got %q", got)
	}
	if got := text("longitude"); got != "-17.529" {
		t.Errorf("longitude: got %q", got)
	}
	if got := text("statut"); got != "Pro" {
		t.Errorf("statut: got %q", got)
	}
	if got := text("nb_annonces"); got != "32 annonces" {
		t.Errorf("nb_annonces: got %q", got)
	}
	if got := text("source"); got != "coinafrique" {
		t.Errorf("source: got %q", got)
	}
	if got := text("url"); got != "https://sn.coinafrique.com/annonce/appartement-1" {
		t.Errorf("url: got %q", got)
	}
}

func TestParseDetailParticulierWithoutProBadge(t *testing.T) {
	rec := parseDetail(doc(t, `<html><body><p class="price">1</p></body></html>`), "https://x/1")
	if v, _ := rec.Get("statut").First(); v != "Particulier" {
		t.Errorf("statut: got %q, want Particulier", v)
	}
	if !rec.Get("title").Absent() {
		t.Error("title should be absent when the page has none")
	}
}

func TestParseListing(t *testing.T) {
	links, next := parseListing(doc(t, listingHTML), "https://sn.coinafrique.com/categorie/immobilier")

	if len(links) != 2 {
		t.Fatalf("links: got %d, want 2", len(links))
	}
	if links[0] != "https://sn.coinafrique.com/annonce/appartement-1" {
		t.Errorf("first link: got %q", links[0])
	}
	if next != "https://sn.coinafrique.com/categorie/immobilier?page=4" {
		t.Errorf("next: got %q", next)
	}
}
