package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordView(t *testing.T) {
	before := testutil.ToFloat64(viewRenders.WithLabelValues("test-view"))
	RecordView("test-view")
	assert.Equal(t, before+1, testutil.ToFloat64(viewRenders.WithLabelValues("test-view")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveLoad("csv", 5*time.Millisecond, nil)
	ObserveLoad("csv", time.Millisecond, errors.New("boom"))
	RecordView("summary")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cidash_view_renders_total")
	assert.Contains(t, rec.Body.String(), `cidash_dataset_load_seconds_count{outcome="error",source="csv"}`)
}
