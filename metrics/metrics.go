package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	viewRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cidash",
		Name:      "view_renders_total",
		Help:      "Dashboard views rendered, by view.",
	}, []string{"view"})

	loadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cidash",
		Name:      "dataset_load_seconds",
		Help:      "Time spent loading the asset dataset, by source and outcome.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "outcome"})
)

// RecordView counts one render of a view
func RecordView(view string) {
	viewRenders.WithLabelValues(view).Inc()
}

// ObserveLoad records one dataset load
func ObserveLoad(source string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	loadDuration.WithLabelValues(source, outcome).Observe(d.Seconds())
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
