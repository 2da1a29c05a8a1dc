// internal/utils/normalize.go
package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonPriceChars  = regexp.MustCompile(`[^\d.]`)
	leadingDecimal = regexp.MustCompile(`^\d*\.?\d*`)
)

// NormalizePrice turns scraped or imported price text such as "€ 12,50" into
// a non-negative amount with two decimal places. Input that leaves no
// parseable number yields zero; it never fails.
func NormalizePrice(raw string) decimal.Decimal {
	// comma is the decimal separator; currency symbols and spaces fall out
	// with every other non-numeric character
	clean := nonPriceChars.ReplaceAllString(strings.ReplaceAll(raw, ",", "."), "")

	// "1.234.56" keeps its leading number, 1.234
	number := leadingDecimal.FindString(clean)
	if number == "" || number == "." {
		return decimal.Zero
	}

	price, err := decimal.NewFromString(strings.TrimSuffix(number, "."))
	if err != nil {
		return decimal.Zero
	}
	return price.Round(2)
}

// JoinCategories trims each category and joins the non-empty ones with ", ".
func JoinCategories(categories []string) string {
	parts := make([]string, 0, len(categories))
	for _, category := range categories {
		if category = strings.TrimSpace(category); category != "" {
			parts = append(parts, category)
		}
	}
	return strings.Join(parts, ", ")
}
