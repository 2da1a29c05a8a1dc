// internal/middleware/middleware_test.go
package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/javajoker/catalog-importer/internal/i18n"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize("it"); err != nil {
		panic(err)
	}
}

func TestResolveLanguage(t *testing.T) {
	cases := map[string]string{
		"":                        "it",
		"en":                      "en",
		"en-US,en;q=0.9":          "en",
		"EN_gb":                   "en",
		"it-IT,it;q=0.9,en;q=0.8": "it",
		"de-DE,en;q=0.5":          "it",
	}
	for header, want := range cases {
		assert.Equal(t, want, resolveLanguage(header), header)
	}
}

func TestI18nMiddlewareSetsLang(t *testing.T) {
	router := gin.New()
	router.Use(I18nMiddleware())
	router.GET("/lang", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("lang"))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/lang", nil)
	req.Header.Set("Accept-Language", "en-GB")
	router.ServeHTTP(rec, req)

	assert.Equal(t, "en", rec.Body.String())
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Hour), 1)

	router := gin.New()
	router.Use(I18nMiddleware())
	router.POST("/import", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/import", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import", nil)
	req.Header.Set("Accept-Language", "en")
	router.ServeHTTP(second, req)
	require.Equal(t, http.StatusTooManyRequests, second.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "RATE_LIMITED", body.Error.Code)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", body.Error.Message)
}

func TestRequestLoggerLogsRequests(t *testing.T) {
	logger, hook := test.NewNullLogger()

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/import", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, hook.AllEntries())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/import", nil))
	require.Len(t, hook.AllEntries(), 1)

	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "POST", entry.Data["method"])
	assert.Equal(t, "/import", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}
