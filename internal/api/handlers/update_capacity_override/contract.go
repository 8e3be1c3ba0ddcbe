package update_capacity_override

import (
	"context"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

type OverrideService interface {
	Upsert(ctx context.Context, roomCode string, capacity int) (*domain.CapacityOverride, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
