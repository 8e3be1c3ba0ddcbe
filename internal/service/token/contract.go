package token

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomAvailability/internal/integrations/pms"
)

// TokenIssuer выдает новый токен PMS
type TokenIssuer interface {
	IssueToken(ctx context.Context) (*pms.TokenResponse, error)
}

// Clock источник текущего времени (подменяется в тестах)
type Clock interface {
	Now() time.Time
}

// Metrics метрики обновления токена
type Metrics interface {
	IncTokenRefresh(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealClock реальное время для production
type RealClock struct{}

// Now возвращает текущее время
func (RealClock) Now() time.Time {
	return time.Now()
}
