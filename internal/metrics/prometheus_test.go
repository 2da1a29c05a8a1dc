// internal/metrics/prometheus_test.go
package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	cases := map[int]string{
		200: "2xx",
		204: "2xx",
		302: "3xx",
		404: "4xx",
		429: "4xx",
		503: "5xx",
		0:   "unknown",
		700: "unknown",
	}
	for code, want := range cases {
		assert.Equal(t, want, classifyStatus(code), code)
	}
}

func TestRecordImportRun(t *testing.T) {
	runs := importRunsTotal.WithLabelValues("bulk", "succeeded")
	imported := importRecordsTotal.WithLabelValues("bulk", "imported")
	failed := importRecordsTotal.WithLabelValues("bulk", "failed")
	runsBefore := testutil.ToFloat64(runs)
	importedBefore := testutil.ToFloat64(imported)
	failedBefore := testutil.ToFloat64(failed)

	RecordImportRun("bulk", "succeeded", 2, 1, 3*time.Second)

	assert.Equal(t, runsBefore+1, testutil.ToFloat64(runs))
	assert.Equal(t, importedBefore+2, testutil.ToFloat64(imported))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestHandlerExposesImportMetrics(t *testing.T) {
	RecordImportRun("html", "failed", 0, 0, time.Second)
	RecordRequest(http.MethodPost, "/import", http.StatusOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `catalog_import_runs_total{kind="html",status="failed"}`)
	assert.Contains(t, body, `http_requests_total{endpoint="/import",method="POST",status="2xx"}`)
}
