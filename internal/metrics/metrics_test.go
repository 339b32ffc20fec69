package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"books-explorer/internal/metrics"
)

func TestObserve(t *testing.T) {
	m := metrics.New()
	m.Observe("find_by_genre", metrics.OutcomeOK, time.Now())
	m.Observe("find_by_genre", metrics.OutcomeOK, time.Now())
	m.Observe("update_price", metrics.OutcomeNotFound, time.Now())

	expected := `
# HELP books_operations_total Operations run against the books collection.
# TYPE books_operations_total counter
books_operations_total{operation="find_by_genre",outcome="ok"} 2
books_operations_total{operation="update_price",outcome="not_found"} 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "books_operations_total")
	require.NoError(t, err)
}

func TestObserve_NilReceiver(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.Observe("anything", metrics.OutcomeError, time.Now())
	})
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.Observe("aggregate_decades", metrics.OutcomeOK, time.Now())

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `books_operation_duration_seconds_count{operation="aggregate_decades"} 1`)
}
