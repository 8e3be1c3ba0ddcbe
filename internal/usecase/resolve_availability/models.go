package resolve_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

// Request модель запроса на подбор номеров.
// Валидность дат и количества гостей проверяет вызывающая сторона
type Request struct {
	Stay   domain.DateRange
	Guests domain.GuestCount
}

// Response результат подбора: подходящие и неподходящие типы номеров
type Response struct {
	Stay        domain.DateRange
	Guests      domain.GuestCount
	BedsNeeded  int
	Adequate    []AdequateRoom
	Inadequate  []InadequateRoom
	Diagnostics []domain.RecordIssue // пропущенные дневные записи PMS
}

// TotalRoomTypes количество типов номеров в отчете PMS
func (r *Response) TotalRoomTypes() int {
	return len(r.Adequate) + len(r.Inadequate)
}

// AdequateRoom свободный на весь период тип номера с достаточной вместимостью
type AdequateRoom struct {
	Name           string
	Code           string
	Capacity       int
	CapacitySource string // heuristic | override
}

// InadequateRoom тип номера, который не подходит
type InadequateRoom struct {
	Name         string
	Code         string
	Reason       string
	BlockingDate *time.Time // первая дата без свободных номеров, если есть
}
