// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyValidationInvalid = "validation.invalid"
	KeyInternalError     = "error.internal"
	KeyRateLimited       = "error.rate_limited"

	// Imports
	KeyImportStarted      = "import.started"
	KeyScrapeStarted      = "import.scrape_started"
	KeyImportUnavailable  = "import.unavailable"
	KeyImportRunNotFound  = "import_run.not_found"
	KeyImportRunInvalidID = "import_run.invalid_id"
)
