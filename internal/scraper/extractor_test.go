// internal/scraper/extractor_test.go
package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body>
<div class="product-card">
  <img class="image" src="/assets/zelda.jpg">
  <h4 class="title">The Legend of Zelda:
     Ocarina of Time</h4>
  <p class="category"><span> Action </span><span>Adventure</span></p>
  <p class="description">A classic.</p>
  <div class="price-wrapper">91,99 €</div>
  <p class="in-stock">In stock</p>
</div>
<div class="product-card">
  <h4 class="title">Super Mario Galaxy</h4>
  <div class="price-wrapper">€ 12,50</div>
  <p class="out-of-stock">Out of Stock</p>
</div>
<div class="product-card"><span>broken</span></div>
</body></html>`

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractFullCard(t *testing.T) {
	e := NewExtractor(DefaultSelectors())
	cards := parse(t, listingPage).Find(e.CardSelector())
	require.Equal(t, 3, cards.Length())

	listing := e.Extract(cards.Eq(0))
	assert.Equal(t, "The Legend of Zelda: Ocarina of Time", listing.Title)
	assert.Equal(t, "91.99", listing.Price.StringFixed(2))
	require.NotNil(t, listing.ImageURL)
	assert.Equal(t, "/assets/zelda.jpg", *listing.ImageURL)
	require.NotNil(t, listing.Description)
	assert.Equal(t, "A classic.", *listing.Description)
	assert.Equal(t, "Action, Adventure", listing.Category)
	assert.Equal(t, "In stock", listing.Availability)
}

func TestExtractUsesDefaultSelectors(t *testing.T) {
	card := parse(t, listingPage).Find(".product-card").Eq(1)
	assert.Equal(t, NewExtractor(DefaultSelectors()).Extract(card), Extract(card))
}

func TestExtractOutOfStock(t *testing.T) {
	e := NewExtractor(DefaultSelectors())
	listing := e.Extract(parse(t, listingPage).Find(e.CardSelector()).Eq(1))

	assert.Equal(t, "Super Mario Galaxy", listing.Title)
	assert.Equal(t, "12.50", listing.Price.StringFixed(2))
	assert.Equal(t, "Out of Stock", listing.Availability)
	assert.Nil(t, listing.ImageURL)
	assert.Nil(t, listing.Description)
	assert.Equal(t, "", listing.Category)
}

func TestExtractFallbacks(t *testing.T) {
	e := NewExtractor(DefaultSelectors())
	listing := e.Extract(parse(t, listingPage).Find(e.CardSelector()).Eq(2))

	assert.Equal(t, UnknownTitle, listing.Title)
	assert.Equal(t, "0.00", listing.Price.StringFixed(2))
	assert.Equal(t, "", listing.Category)
	assert.Nil(t, listing.Description)
	assert.Nil(t, listing.ImageURL)
	assert.Equal(t, UnknownAvailability, listing.Availability)
}

func TestExtractBlankElementsFallBack(t *testing.T) {
	e := NewExtractor(DefaultSelectors())
	card := parse(t, `<div class="product-card">
  <h4 class="title"></h4>
  <div class="price-wrapper"> </div>
  <p class="description">
  </p>
  <p class="in-stock"></p>
</div>`).Find(e.CardSelector())

	listing := e.Extract(card)

	assert.Equal(t, UnknownTitle, listing.Title)
	assert.Equal(t, "0.00", listing.Price.StringFixed(2))
	assert.Nil(t, listing.Description)
	assert.Equal(t, UnknownAvailability, listing.Availability)
}

func TestListingProduct(t *testing.T) {
	e := NewExtractor(DefaultSelectors())
	product := e.Extract(parse(t, listingPage).Find(e.CardSelector()).Eq(2)).Product()

	assert.Equal(t, UnknownTitle, product.Title)
	require.NotNil(t, product.Category)
	assert.Equal(t, "", *product.Category)
	require.NotNil(t, product.Availability)
	assert.Equal(t, UnknownAvailability, *product.Availability)
	assert.Nil(t, product.Description)
}

func TestCustomSelectors(t *testing.T) {
	selectors := DefaultSelectors()
	selectors.Card = "li.item"
	selectors.Title = "a.name"
	e := NewExtractor(selectors)

	doc := parse(t, `<ul><li class="item"><a class="name">Tetris</a></li></ul>`)
	cards := doc.Find(e.CardSelector())
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "Tetris", e.Extract(cards).Title)
}
