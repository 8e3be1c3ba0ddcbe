package resolve_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	"github.com/m04kA/SMC-RoomAvailability/internal/integrations/pms"
)

// recordOutcome результат разбора одной дневной записи: либо данные, либо причина пропуска
type recordOutcome struct {
	occupancy domain.DailyOccupancy
	skipped   bool
	reason    string
}

func parseDayRecord(day pms.DayAvailability) recordOutcome {
	date, err := time.Parse(domain.DateFormat, day.Date)
	if err != nil {
		return recordOutcome{
			skipped: true,
			reason:  fmt.Sprintf("unparseable date %q", day.Date),
		}
	}

	return recordOutcome{
		occupancy: domain.DailyOccupancy{
			Date:                  date,
			VacantUnits:           day.Available,
			UnitsUnderMaintenance: day.Maintenance,
		},
	}
}

// toRoomTypes переводит отчет PMS в доменные типы номеров.
// Некорректные дневные записи пропускаются и возвращаются списком диагностик
func toRoomTypes(report *pms.AvailabilityReport) ([]domain.RoomType, []domain.RecordIssue) {
	if report == nil {
		return nil, nil
	}

	roomTypes := make([]domain.RoomType, 0, len(report.RoomTypes))
	var issues []domain.RecordIssue

	for _, rt := range report.RoomTypes {
		roomType := domain.RoomType{
			Code:        rt.Code.String(),
			Name:        rt.Name.String(),
			Occupancies: make([]domain.DailyOccupancy, 0, len(rt.Days)),
		}

		for i, day := range rt.Days {
			outcome := parseDayRecord(day)
			if outcome.skipped {
				issues = append(issues, domain.RecordIssue{
					RoomCode: roomType.Code,
					Index:    i,
					RawDate:  day.Date,
					Reason:   outcome.reason,
				})
				continue
			}
			roomType.Occupancies = append(roomType.Occupancies, outcome.occupancy)
		}

		roomTypes = append(roomTypes, roomType)
	}

	return roomTypes, issues
}
