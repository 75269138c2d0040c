package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.ObserveSeries("time_series")
	m.ObserveSeries("time_series")
	m.ObserveHTTP("GET", "/api/v1/health", 200, 5*time.Millisecond)
	m.ObserveJob("done")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SeriesGenerated.WithLabelValues("time_series")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsProcessed.WithLabelValues("done")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSeries("geo_points")
		m.ObserveHTTP("GET", "/", 200, time.Second)
		m.ObserveNarrative("ok", time.Second)
		m.ObserveJob("failed")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveNarrative("cached", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "indicator_dashboard_narrative_call_duration_seconds")
}
