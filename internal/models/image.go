// internal/models/image.go
package models

import "github.com/google/uuid"

type Image struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex"`
	URL       string    `json:"url" gorm:"size:2048;not null"`
}
