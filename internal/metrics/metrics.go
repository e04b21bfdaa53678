package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seoulmarket/server/internal/dataset"
)

const namespace = "seoulmarket"

// Metrics holds the collectors exposed on /metrics. Each instance owns its
// registry so tests can create as many as they need.
type Metrics struct {
	registry     *prometheus.Registry
	loads        *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	rows         *prometheus.GaugeVec
	dropped      *prometheus.GaugeVec
	requests     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset loads by kind and result.",
		}, []string{"kind", "result"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time spent parsing a dataset file.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the most recently loaded dataset.",
		}, []string{"kind"}),
		dropped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_dropped_rows",
			Help:      "Rows dropped from the most recently loaded dataset.",
		}, []string{"kind"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		m.loads, m.loadDuration, m.rows, m.dropped, m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveLoad implements dataset.LoadObserver.
func (m *Metrics) ObserveLoad(event dataset.LoadEvent) {
	result := "success"
	if event.Err != nil {
		result = "error"
	}
	m.loads.WithLabelValues(event.Kind, result).Inc()
	m.loadDuration.WithLabelValues(event.Kind).Observe(event.Duration.Seconds())

	if event.Err == nil {
		m.rows.WithLabelValues(event.Kind).Set(float64(event.Rows))
		m.dropped.WithLabelValues(event.Kind).Set(float64(event.Dropped))
	}
}

// ObserveRequest counts a served request. Unmatched routes should be passed
// as an empty string.
func (m *Metrics) ObserveRequest(route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
