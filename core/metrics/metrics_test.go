package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Observe(t *testing.T) {
	r := NewRegistry()
	builtAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	r.ObserveBuild(5, builtAt, 20*time.Millisecond)
	r.ObserveBuild(7, builtAt.Add(time.Minute), 10*time.Millisecond)
	r.ObserveDropped("prices", 2)
	r.ObserveDropped("service_dates", 0)
	r.ObserveReport("FullInventory.txt", 7)
	r.ObserveQuery("match")
	r.ObserveQuery("match")
	r.ObserveQuery("unknown")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Builds))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.RecordsMerged))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.StoreRecords))
	assert.Equal(t, float64(builtAt.Add(time.Minute).Unix()), testutil.ToFloat64(r.LastBuildTime))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.RowsDropped.WithLabelValues("prices")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.RowsDropped))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.ReportLines.WithLabelValues("FullInventory.txt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ReportsWritten))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Queries.WithLabelValues("match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Queries.WithLabelValues("unknown")))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.ObserveQuery("ambiguous")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `inventory_queries_total{outcome="ambiguous"} 1`)
	assert.Contains(t, string(body), "inventory_build_duration_seconds_bucket")
}
