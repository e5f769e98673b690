// Package metrics Prometheus метрики сервиса.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "exchange"

type Metrics struct {
	registry *prometheus.Registry

	priceFetches    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDurationSec *prometheus.HistogramVec
}

// New создает метрики в собственном реестре, чтобы тесты и несколько экземпляров не конфликтовали
// с глобальным prometheus.DefaultRegisterer.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		priceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "fetch_total",
			Help:      "Number of price fetches by pair and outcome.",
		}, []string{"pair", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of handled HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		m.priceFetches,
		m.httpRequests,
		m.httpDurationSec,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFetch учитывает результат запроса курса.
func (m *Metrics) ObserveFetch(pair domain.Pair, outcome string) {
	m.priceFetches.WithLabelValues(string(pair.Crypto)+"/"+string(pair.Fiat), outcome).Inc()
}

// ObserveRequest учитывает обработанный HTTP запрос.
func (m *Metrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDurationSec.WithLabelValues(method, route).Observe(latency.Seconds())
}

// Handler отдает метрики в текстовом формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
