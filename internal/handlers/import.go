// internal/handlers/import.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-importer/internal/i18n"
	"github.com/javajoker/catalog-importer/internal/jobs"
	"github.com/javajoker/catalog-importer/internal/models"
	"github.com/javajoker/catalog-importer/internal/services"
	"github.com/javajoker/catalog-importer/internal/utils"
)

type ImportEnqueuer interface {
	Enqueue(ctx context.Context, kind models.ImportKind, trigger models.ImportTrigger) (*jobs.Ticket, error)
}

type ImportRunFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*models.ImportRun, error)
}

type ImportHandler struct {
	enqueuer ImportEnqueuer
	runs     ImportRunFinder
	logger   logrus.FieldLogger
}

func NewImportHandler(enqueuer ImportEnqueuer, runs ImportRunFinder, logger logrus.FieldLogger) *ImportHandler {
	return &ImportHandler{
		enqueuer: enqueuer,
		runs:     runs,
		logger:   logger,
	}
}

// POST /import
func (h *ImportHandler) StartBulkImport(c *gin.Context) {
	h.enqueue(c, models.ImportKindBulk, i18n.KeyImportStarted)
}

// POST /import/scrape
func (h *ImportHandler) StartScrape(c *gin.Context) {
	h.enqueue(c, models.ImportKindHTML, i18n.KeyScrapeStarted)
}

// The reply only acknowledges the queued run; its outcome is read from
// GET /import/runs/:id.
func (h *ImportHandler) enqueue(c *gin.Context, kind models.ImportKind, messageKey string) {
	lang := utils.GetLangFromContext(c)

	ticket, err := h.enqueuer.Enqueue(c.Request.Context(), kind, models.ImportTriggerAPI)
	if err != nil {
		h.logger.WithError(err).WithField("kind", kind).Error("Failed to enqueue import")
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "IMPORT_UNAVAILABLE", i18n.T(lang, i18n.KeyImportUnavailable), nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": i18n.T(lang, messageKey),
		"run_id": ticket.RunID,
	})
}

// GET /import/runs/:id
func (h *ImportHandler) GetRun(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyImportRunInvalidID), nil)
		return
	}

	run, err := h.runs.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrImportRunNotFound) {
			utils.NotFoundResponse(c, "import_run")
			return
		}
		h.logger.WithError(err).WithField("run_id", id).Error("Failed to load import run")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, run)
}
