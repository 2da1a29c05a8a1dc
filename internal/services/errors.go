// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	ErrImportInProgress  = errors.New("import already in progress")
	ErrImportRunNotFound = errors.New("import run not found")
)

// FetchError aborts an HTML import run before anything is written.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RecordImportError describes one bulk record that was skipped. Index is
// 1-based.
type RecordImportError struct {
	Index int
	Title string
	Err   error
}

func (e *RecordImportError) Error() string {
	return fmt.Sprintf("failed to import product #%d (%s): %v", e.Index, e.Title, e.Err)
}

func (e *RecordImportError) Unwrap() error {
	return e.Err
}

// ImportResult summarizes one pipeline run.
type ImportResult struct {
	Processed int `json:"processed"`
	Imported  int `json:"imported"`
	Failed    int `json:"failed"`
}
