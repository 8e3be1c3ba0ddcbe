package resolve_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	"github.com/m04kA/SMC-RoomAvailability/internal/integrations/pms"
)

// TokenProvider выдает действующий токен PMS
type TokenProvider interface {
	GetToken(ctx context.Context) (domain.AccessToken, error)
}

// AvailabilityClient получает отчет о доступности из PMS (напрямую или через кэш)
type AvailabilityClient interface {
	FetchAvailability(ctx context.Context, token string, checkIn, checkOut time.Time) (*pms.AvailabilityReport, error)
}

// CapacityClassifier эвристика вместимости по коду и названию
type CapacityClassifier interface {
	Classify(code, name string) int
}

// CapacityOverrides ручная вместимость типов номеров (опционально)
type CapacityOverrides interface {
	Snapshot(ctx context.Context) (domain.CapacityOverrides, error)
}

// Metrics метрики результата подбора
type Metrics interface {
	ObserveResolution(adequate, inadequate int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
