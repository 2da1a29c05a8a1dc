// internal/router/router_test.go
package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/catalog-importer/internal/config"
	"github.com/javajoker/catalog-importer/internal/i18n"
	"github.com/javajoker/catalog-importer/internal/jobs"
	"github.com/javajoker/catalog-importer/internal/models"
	"github.com/javajoker/catalog-importer/internal/services"
)

type stubEnqueuer struct{}

func (stubEnqueuer) Enqueue(_ context.Context, kind models.ImportKind, _ models.ImportTrigger) (*jobs.Ticket, error) {
	return &jobs.Ticket{RunID: uuid.New(), Kind: kind, Status: models.ImportStatusQueued}, nil
}

type stubRuns struct{}

func (stubRuns) Get(context.Context, uuid.UUID) (*models.ImportRun, error) {
	return nil, services.ErrImportRunNotFound
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize("it"))

	logger, _ := test.NewNullLogger()
	cfg := &config.Config{Server: config.ServerConfig{CORSOrigins: []string{"*"}}}
	return Initialize(cfg, stubEnqueuer{}, stubRuns{}, logger)
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/import", http.StatusOK},
		{http.MethodPost, "/import/scrape", http.StatusOK},
		{http.MethodGet, "/import/runs/" + uuid.NewString(), http.StatusNotFound},
		{http.MethodGet, "/products", http.StatusNotFound},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/import", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
