package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_api_requests_total",
			Help: "Total number of marketplace API requests.",
		},
		[]string{"marketplace", "endpoint", "status"},
	)
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_api_request_duration_seconds",
			Help:    "Histogram of marketplace API request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"marketplace", "endpoint", "status"},
	)
	itemsUpdated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_items_updated_total",
			Help: "Items accepted by the marketplace per run.",
		},
		[]string{"marketplace", "kind"},
	)
	itemsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_items_failed_total",
			Help: "Items rejected by the marketplace or skipped with a batch.",
		},
		[]string{"marketplace", "kind"},
	)
)

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(itemsUpdated)
	prometheus.MustRegister(itemsFailed)
}

// RecordRequest записывает метрики для запроса к партнёрскому API.
// statusCode 0 означает сетевую ошибку без ответа.
func RecordRequest(marketplace, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	apiRequestsTotal.WithLabelValues(marketplace, endpoint, status).Inc()
	apiRequestDuration.WithLabelValues(marketplace, endpoint, status).Observe(duration.Seconds())
}

// RecordItems записывает результат батча по позициям.
func RecordItems(marketplace, kind string, updated, failed int) {
	itemsUpdated.WithLabelValues(marketplace, kind).Add(float64(updated))
	itemsFailed.WithLabelValues(marketplace, kind).Add(float64(failed))
}

// classifyStatus классифицирует HTTP-статус код в строку.
func classifyStatus(statusCode int) string {
	if statusCode == 0 {
		return "network_error"
	} else if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// Serve поднимает /metrics на addr, если адрес задан в конфиге.
func Serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(addr, mux)
}
