// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the primary key client-side so rows can be created
// without a database-side uuid generator.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type ImportKind string

const (
	ImportKindHTML ImportKind = "html"
	ImportKindBulk ImportKind = "bulk"
)

type ImportTrigger string

const (
	ImportTriggerSchedule ImportTrigger = "schedule"
	ImportTriggerAPI      ImportTrigger = "api"
	ImportTriggerCLI      ImportTrigger = "cli"
)

type ImportStatus string

const (
	ImportStatusQueued    ImportStatus = "queued"
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusSucceeded ImportStatus = "succeeded"
	ImportStatusFailed    ImportStatus = "failed"
	ImportStatusSkipped   ImportStatus = "skipped"
)
