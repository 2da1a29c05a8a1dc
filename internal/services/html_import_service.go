// internal/services/html_import_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/javajoker/catalog-importer/internal/config"
	"github.com/javajoker/catalog-importer/internal/scraper"
)

type HTMLImportOptions struct {
	SourceURL string
	UserAgent string
	Timeout   time.Duration
	// Transport overrides the collector's HTTP transport.
	Transport       http.RoundTripper
	Selectors       scraper.Selectors
	BreakerFailures int
	BreakerTimeout  time.Duration
}

func HTMLImportOptionsFromConfig(cfg config.ScraperConfig) HTMLImportOptions {
	return HTMLImportOptions{
		SourceURL:       cfg.SourceURL,
		UserAgent:       cfg.UserAgent,
		Timeout:         cfg.Timeout,
		Selectors:       scraper.DefaultSelectors(),
		BreakerFailures: cfg.BreakerFailures,
		BreakerTimeout:  cfg.BreakerTimeout,
	}
}

// HTMLImportService scrapes the product listing page and upserts every card
// by title. At most one run is in flight per service.
type HTMLImportService struct {
	store     ProductStore
	opts      HTMLImportOptions
	extractor *scraper.Extractor
	breaker   *gobreaker.CircuitBreaker[*ImportResult]
	logger    logrus.FieldLogger
	running   sync.Mutex
}

func NewHTMLImportService(store ProductStore, opts HTMLImportOptions, logger logrus.FieldLogger) *HTMLImportService {
	if opts.Selectors.Card == "" {
		opts.Selectors = scraper.DefaultSelectors()
	}

	return &HTMLImportService{
		store:     store,
		opts:      opts,
		extractor: scraper.NewExtractor(opts.Selectors),
		breaker:   newFetchBreaker(opts),
		logger:    logger.WithField("pipeline", "html"),
	}
}

func newFetchBreaker(opts HTMLImportOptions) *gobreaker.CircuitBreaker[*ImportResult] {
	var st gobreaker.Settings
	st.Name = "product-page"
	st.Timeout = opts.BreakerTimeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return opts.BreakerFailures > 0 && counts.ConsecutiveFailures >= uint32(opts.BreakerFailures)
	}
	// a cancelled run says nothing about the source
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled)
	}

	return gobreaker.NewCircuitBreaker[*ImportResult](st)
}

func (s *HTMLImportService) Run(ctx context.Context) (*ImportResult, error) {
	if !s.running.TryLock() {
		return nil, ErrImportInProgress
	}
	defer s.running.Unlock()

	log := s.logger.WithField("source", s.opts.SourceURL)
	log.Info("Product page import started")

	result, err := s.breaker.Execute(func() (*ImportResult, error) {
		return s.scrape(ctx, log)
	})
	if err != nil {
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			// breaker open or half-open quota exhausted
			err = &FetchError{URL: s.opts.SourceURL, Err: err}
		}
		log.WithError(err).Error("Product page import failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"processed": result.Processed,
		"imported":  result.Imported,
		"failed":    result.Failed,
	}).Info("Product page import completed")
	return result, nil
}

func (s *HTMLImportService) scrape(ctx context.Context, log logrus.FieldLogger) (*ImportResult, error) {
	options := []colly.CollectorOption{colly.AllowURLRevisit(), colly.ParseHTTPErrorResponse()}
	if s.opts.UserAgent != "" {
		options = append(options, colly.UserAgent(s.opts.UserAgent))
	}

	c := colly.NewCollector(options...)
	c.SetRequestTimeout(s.opts.Timeout)
	c.WithTransport(&contextTransport{ctx: ctx, base: s.opts.Transport})

	var statusCode int
	c.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
	})
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			statusCode = r.StatusCode
		}
	})

	result := &ImportResult{}
	c.OnHTML(s.extractor.CardSelector(), func(e *colly.HTMLElement) {
		if !isSuccessStatus(e.Response.StatusCode) {
			return
		}

		result.Processed++
		if ctx.Err() != nil {
			result.Failed++
			return
		}

		listing := s.extractor.Extract(e.DOM)
		if err := s.store.UpsertByTitle(ctx, listing.Product()); err != nil {
			result.Failed++
			log.WithError(err).WithFields(logrus.Fields{
				"card":  result.Processed,
				"title": listing.Title,
			}).Error("Failed to store scraped product")
			return
		}
		result.Imported++
	})

	if err := c.Visit(s.opts.SourceURL); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return nil, &FetchError{URL: s.opts.SourceURL, StatusCode: statusCode, Err: err}
	}
	if !isSuccessStatus(statusCode) {
		return nil, &FetchError{URL: s.opts.SourceURL, StatusCode: statusCode, Err: errors.New(http.StatusText(statusCode))}
	}

	return result, nil
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}
