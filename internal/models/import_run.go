// internal/models/import_run.go
package models

import "time"

// ImportRun records one execution of an import pipeline. The on-demand
// trigger hands its ID back as the acknowledgement ticket.
type ImportRun struct {
	BaseModel
	Kind       ImportKind    `json:"kind" gorm:"type:varchar(20);not null"`
	Trigger    ImportTrigger `json:"trigger" gorm:"type:varchar(20);not null"`
	Status     ImportStatus  `json:"status" gorm:"type:varchar(20);not null;default:'queued'"`
	Processed  int           `json:"processed" gorm:"default:0"`
	Imported   int           `json:"imported" gorm:"default:0"`
	Failed     int           `json:"failed" gorm:"default:0"`
	Error      string        `json:"error,omitempty" gorm:"type:text"`
	StartedAt  *time.Time    `json:"started_at,omitempty"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
}

func (r *ImportRun) IsFinished() bool {
	switch r.Status {
	case ImportStatusSucceeded, ImportStatusFailed, ImportStatusSkipped:
		return true
	}
	return false
}
