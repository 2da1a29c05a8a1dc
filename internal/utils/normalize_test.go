// internal/utils/normalize_test.go
package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"€ 12,50", "12.5"},
		{"", "0"},
		{"abc", "0"},
		{"91,99 €", "91.99"},
		{"€1 299,00", "1299"},
		{"12.345", "12.35"},
		{"-5,00", "5"},
		{"1.234,56", "1.23"},
		{".", "0"},
		{"7.", "7"},
		{" 39,90 €", "39.9"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizePrice(tt.raw)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestNormalizePriceFormatsTwoPlaces(t *testing.T) {
	assert.Equal(t, "12.50", NormalizePrice("€ 12,50").StringFixed(2))
	assert.Equal(t, "0.00", NormalizePrice("").StringFixed(2))
}

func TestJoinCategories(t *testing.T) {
	assert.Equal(t, "RPG, Action", JoinCategories([]string{"RPG", " Action "}))
	assert.Equal(t, "", JoinCategories([]string{}))
	assert.Equal(t, "", JoinCategories(nil))
	assert.Equal(t, "Puzzle", JoinCategories([]string{"  ", "Puzzle"}))
}
