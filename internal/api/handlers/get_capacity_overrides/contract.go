package get_capacity_overrides

import (
	"context"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

type OverrideService interface {
	List(ctx context.Context) ([]*domain.CapacityOverride, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
