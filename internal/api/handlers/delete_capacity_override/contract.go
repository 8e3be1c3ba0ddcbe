package delete_capacity_override

import "context"

type OverrideService interface {
	Delete(ctx context.Context, roomCode string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
