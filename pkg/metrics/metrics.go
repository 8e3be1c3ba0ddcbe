package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках вызовы ничего не делают.
type Metrics struct {
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	upstreamDuration    *prometheus.HistogramVec
	tokenRefreshes      *prometheus.CounterVec
	resolutionOutcomes  *prometheus.CounterVec
	reportCacheRequests *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "pms_request_duration_seconds",
			Help:        "Latency of upstream PMS requests",
			ConstLabels: constLabels,
			Buckets:     []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"endpoint", "outcome"}),
		tokenRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "pms_token_refreshes_total",
			Help:        "Number of upstream token acquisitions",
			ConstLabels: constLabels,
		}, []string{"result"}),
		resolutionOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_room_types_total",
			Help:        "Room types evaluated by the availability pipeline",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		reportCacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_report_cache_requests_total",
			Help:        "Lookups in the availability report cache",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.upstreamDuration,
		m.tokenRefreshes,
		m.resolutionOutcomes,
		m.reportCacheRequests,
	)

	return m
}

// ObserveHTTPRequest фиксирует входящий HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveUpstreamRequest фиксирует запрос к PMS
func (m *Metrics) ObserveUpstreamRequest(endpoint, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(endpoint, outcome).Observe(duration.Seconds())
}

// IncTokenRefresh считает попытки получения токена (result: success|error)
func (m *Metrics) IncTokenRefresh(result string) {
	if m == nil {
		return
	}
	m.tokenRefreshes.WithLabelValues(result).Inc()
}

// ObserveResolution считает подходящие и неподходящие типы номеров
func (m *Metrics) ObserveResolution(adequate, inadequate int) {
	if m == nil {
		return
	}
	m.resolutionOutcomes.WithLabelValues("adequate").Add(float64(adequate))
	m.resolutionOutcomes.WithLabelValues("inadequate").Add(float64(inadequate))
}

// IncReportCache считает обращения к кэшу отчетов (result: hit|miss|error)
func (m *Metrics) IncReportCache(result string) {
	if m == nil {
		return
	}
	m.reportCacheRequests.WithLabelValues(result).Inc()
}
