// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

// Product is keyed by Title for scraper upserts; the bulk loader appends
// rows without looking titles up, so the title index is not unique.
type Product struct {
	BaseModel
	Title        string          `json:"title" gorm:"size:255;not null;index"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	Category     *string         `json:"category" gorm:"size:255"`
	Description  *string         `json:"description" gorm:"type:text"`
	ImageURL     *string         `json:"image_url" gorm:"size:2048"`
	Availability *string         `json:"availability" gorm:"size:100"`

	// Relationships
	Image *Image `json:"image,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
