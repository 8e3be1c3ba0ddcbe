package pms

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics метрики запросов к PMS
type Metrics interface {
	ObserveUpstreamRequest(endpoint, outcome string, duration time.Duration)
}
