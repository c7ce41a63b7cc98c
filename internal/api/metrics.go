package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values of the result label.
const (
	resultOK          = "ok"
	resultInvalid     = "invalid"
	resultEngineError = "engine_error"
	resultTimeout     = "timeout"
	resultRejected    = "rate_limited"
	resultError       = "error"
)

type metrics struct {
	generateTotal    *prometheus.CounterVec
	generateDuration prometheus.Histogram
	storedAirfoils   prometheus.GaugeFunc
}

func newMetrics(reg prometheus.Registerer, store *AirfoilStore) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		generateTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "naca_generate_total",
			Help: "Airfoil generation requests by result.",
		}, []string{"result"}),
		generateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "naca_generate_duration_seconds",
			Help:    "Wall time of naca456 runs, including parsing and export.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		storedAirfoils: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "naca_stored_airfoils",
			Help: "Airfoils currently held by the server.",
		}, func() float64 { return float64(store.Len()) }),
	}
}

func (m *metrics) observe(result string, elapsed time.Duration) {
	m.generateTotal.WithLabelValues(result).Inc()
	if result != resultRejected {
		m.generateDuration.Observe(elapsed.Seconds())
	}
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
