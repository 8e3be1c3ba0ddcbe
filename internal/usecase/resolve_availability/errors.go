package resolve_availability

import "github.com/m04kA/SMC-RoomAvailability/internal/domain"

var (
	// ErrUpstreamAuth PMS не выдала токен, пробрасывается без изменений
	ErrUpstreamAuth = domain.ErrUpstreamAuth

	// ErrUpstreamQuery PMS не вернула отчет о доступности, пробрасывается без изменений
	ErrUpstreamQuery = domain.ErrUpstreamQuery
)
