package capacity

import (
	"context"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

// OverrideRepository интерфейс репозитория ручной вместимости
type OverrideRepository interface {
	GetAll(ctx context.Context) ([]*domain.CapacityOverride, error)
	Upsert(ctx context.Context, override *domain.CapacityOverride) (*domain.CapacityOverride, error)
	Delete(ctx context.Context, roomCode string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
