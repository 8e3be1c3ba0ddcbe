package resolve_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

// evaluatePeriod проверяет, свободен ли тип номера на каждую ночь периода.
//
// Правила:
//   - нет ни одной дневной записи -> недоступен без даты блокировки (данных недостаточно)
//   - учитываются только записи с CheckIn <= date < CheckOut: день выезда не проверяется
//   - день блокирует, если свободных номеров за вычетом обслуживания <= 0;
//     в ответ попадает самая ранняя такая дата
//   - дни периода, для которых PMS не прислала запись, пропускаются и не блокируют
func evaluatePeriod(roomType domain.RoomType, stay domain.DateRange) domain.AvailabilityVerdict {
	if !roomType.HasOccupancyData() {
		return domain.AvailabilityVerdict{FullyAvailable: false}
	}

	var earliest *time.Time

	for _, day := range roomType.Occupancies {
		if !stay.Contains(day.Date) || !day.IsBlocking() {
			continue
		}

		date := domain.DateOnly(day.Date)
		if earliest == nil || date.Before(*earliest) {
			earliest = &date
		}
	}

	if earliest != nil {
		return domain.AvailabilityVerdict{FullyAvailable: false, BlockingDate: earliest}
	}

	return domain.AvailabilityVerdict{FullyAvailable: true}
}
