// Package scraper turns product cards from the listing page into typed
// listings. Missing sub-elements fall back to fixed values instead of
// failing the card.
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/javajoker/catalog-importer/internal/models"
	"github.com/javajoker/catalog-importer/internal/utils"
)

const (
	UnknownTitle        = "Titolo sconosciuto"
	UnknownAvailability = "Unknown"
	defaultPriceText    = "0.00"
)

// Selectors locates the fields of one product card.
type Selectors struct {
	Card         string
	Title        string
	Price        string
	Image        string
	Description  string
	Categories   string
	Availability string
}

func DefaultSelectors() Selectors {
	return Selectors{
		Card:         ".product-card",
		Title:        "h4.title",
		Price:        ".price-wrapper",
		Image:        "img.image",
		Description:  "p.description",
		Categories:   "p.category span",
		Availability: "p.in-stock, p.out-of-stock",
	}
}

// Listing is what one card yields.
type Listing struct {
	Title        string
	Price        decimal.Decimal
	ImageURL     *string
	Description  *string
	Category     string
	Availability string
}

type Extractor struct {
	selectors Selectors
}

var defaultExtractor = NewExtractor(DefaultSelectors())

// Extract reads one card using DefaultSelectors.
func Extract(card *goquery.Selection) Listing {
	return defaultExtractor.Extract(card)
}

func NewExtractor(selectors Selectors) *Extractor {
	return &Extractor{selectors: selectors}
}

// CardSelector matches one product card on the listing page.
func (e *Extractor) CardSelector() string {
	return e.selectors.Card
}

func (e *Extractor) Extract(card *goquery.Selection) Listing {
	listing := Listing{
		Title:        UnknownTitle,
		Availability: UnknownAvailability,
	}

	if title, ok := firstText(card, e.selectors.Title); ok {
		listing.Title = title
	}

	priceText := defaultPriceText
	if text, ok := firstText(card, e.selectors.Price); ok {
		priceText = text
	}
	listing.Price = utils.NormalizePrice(priceText)

	if src, ok := card.Find(e.selectors.Image).First().Attr("src"); ok {
		listing.ImageURL = &src
	}

	if description, ok := firstText(card, e.selectors.Description); ok {
		listing.Description = &description
	}

	categories := card.Find(e.selectors.Categories).Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	listing.Category = utils.JoinCategories(categories)

	if availability, ok := firstText(card, e.selectors.Availability); ok {
		listing.Availability = availability
	}

	return listing
}

// Product maps the listing onto the columns the scraper owns.
func (l Listing) Product() *models.Product {
	category := l.Category
	availability := l.Availability
	return &models.Product{
		Title:        l.Title,
		Price:        l.Price,
		Category:     &category,
		Description:  l.Description,
		ImageURL:     l.ImageURL,
		Availability: &availability,
	}
}

func firstText(card *goquery.Selection, selector string) (string, bool) {
	found := card.Find(selector)
	if found.Length() == 0 {
		return "", false
	}
	text := collapseSpaces(found.First().Text())
	return text, text != ""
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
