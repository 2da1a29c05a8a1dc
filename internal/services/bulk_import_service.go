// internal/services/bulk_import_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-importer/internal/models"
	"github.com/javajoker/catalog-importer/internal/utils"
)

// BulkRecord is one entry of the products JSON document.
type BulkRecord struct {
	Title       string       `json:"title" validate:"required"`
	Price       PriceText    `json:"price"`
	Description *string      `json:"description"`
	Category    CategoryText `json:"category"`
	ImageURL    string       `json:"image_url" validate:"required"`
}

// PriceText accepts "€ 12,50" as well as a bare JSON number.
type PriceText string

func (p *PriceText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceText(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return errors.New("price must be a string or a number")
	default:
		// exponent forms like 1e3 would not survive the text normalizer
		if d, err := decimal.NewFromString(string(data)); err == nil {
			*p = PriceText(d.String())
			return nil
		}
		*p = PriceText(data)
	}
	return nil
}

// CategoryText accepts a single category string or a list of categories.
type CategoryText struct {
	Value *string
}

func (c *CategoryText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		c.Value = nil
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("category: %w", err)
		}
		joined := utils.JoinCategories(list)
		c.Value = &joined
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	c.Value = &s
	return nil
}

// BulkImportService loads the products JSON document and creates one product
// plus image per entry. Entries are never matched against existing products.
type BulkImportService struct {
	store    ProductStore
	source   SourceOpener
	location string
	logger   logrus.FieldLogger
}

func NewBulkImportService(store ProductStore, source SourceOpener, location string, logger logrus.FieldLogger) *BulkImportService {
	return &BulkImportService{
		store:    store,
		source:   source,
		location: location,
		logger:   logger.WithField("pipeline", "bulk"),
	}
}

func (s *BulkImportService) Run(ctx context.Context) (*ImportResult, error) {
	log := s.logger.WithField("source", s.location)
	log.Info("Bulk import started")

	records, err := s.load(ctx)
	if err != nil {
		log.WithError(err).Error("Bulk import failed")
		return nil, err
	}

	result := &ImportResult{Processed: len(records)}
	for i, raw := range records {
		index := i + 1
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("bulk import interrupted before record #%d: %w", index, err)
		}

		title, err := s.importRecord(ctx, raw)
		if err != nil {
			result.Failed++
			recordErr := &RecordImportError{Index: index, Title: title, Err: err}
			log.WithError(err).WithFields(logrus.Fields{
				"index": index,
				"title": title,
			}).Error(recordErr.Error())
			continue
		}

		result.Imported++
		log.WithFields(logrus.Fields{"index": index, "title": title}).Info("Product imported")
	}

	log.WithFields(logrus.Fields{
		"processed": result.Processed,
		"imported":  result.Imported,
		"failed":    result.Failed,
	}).Info("Bulk import completed")
	return result, nil
}

func (s *BulkImportService) load(ctx context.Context) ([]json.RawMessage, error) {
	body, err := s.source.Open(ctx, s.location)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.location, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s is not a JSON array of products: %w", s.location, err)
	}
	return records, nil
}

// importRecord returns whatever title it could decode, for logging.
func (s *BulkImportService) importRecord(ctx context.Context, raw json.RawMessage) (string, error) {
	var record BulkRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return record.Title, fmt.Errorf("invalid record: %w", err)
	}

	if err := utils.ValidateStruct(&record); err != nil {
		return record.Title, errors.New(utils.ValidationMessage(err))
	}

	product := &models.Product{
		Title:       record.Title,
		Price:       utils.NormalizePrice(string(record.Price)),
		Description: record.Description,
		Category:    record.Category.Value,
	}
	if err := s.store.CreateWithImage(ctx, product, record.ImageURL); err != nil {
		return record.Title, err
	}
	return record.Title, nil
}
