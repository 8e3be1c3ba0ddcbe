package domain

import (
	"strings"
	"time"
)

// DailyOccupancy доступность типа номера на один календарный день
type DailyOccupancy struct {
	Date                  time.Time
	VacantUnits           int
	UnitsUnderMaintenance int
}

// EffectiveVacancy свободные номера за вычетом номеров на обслуживании (может быть отрицательной)
func (o DailyOccupancy) EffectiveVacancy() int {
	return o.VacantUnits - o.UnitsUnderMaintenance
}

// IsBlocking returns true if no unit can be sold on this day
func (o DailyOccupancy) IsBlocking() bool {
	return o.EffectiveVacancy() <= 0
}

// RoomType категория номеров отеля
type RoomType struct {
	Code        string
	Name        string
	Occupancies []DailyOccupancy
}

// HasOccupancyData returns true if the upstream report carried at least one daily record
func (r *RoomType) HasOccupancyData() bool {
	return len(r.Occupancies) > 0
}

// AvailabilityVerdict результат проверки типа номера на весь период
type AvailabilityVerdict struct {
	FullyAvailable bool
	BlockingDate   *time.Time // nil, если номер доступен или нет данных
}

// Reason причина недоступности для ответа клиенту
func (v AvailabilityVerdict) Reason() string {
	if v.FullyAvailable {
		return ""
	}
	if v.BlockingDate == nil {
		return ReasonNoOccupancyData
	}
	return UnavailableOnReason(*v.BlockingDate)
}

// RecordIssue пропущенная дневная запись из отчета PMS
type RecordIssue struct {
	RoomCode string
	Index    int
	RawDate  string
	Reason   string
}

// CapacityOverride ручная вместимость типа номера
type CapacityOverride struct {
	RoomCode  string
	Capacity  int
	UpdatedAt time.Time
}

// CapacityOverrides ручная вместимость по нормализованному коду типа номера
type CapacityOverrides map[string]int

// Capacity возвращает ручную вместимость для кода, если она задана
func (o CapacityOverrides) Capacity(roomCode string) (int, bool) {
	capacity, ok := o[NormalizeRoomCode(roomCode)]
	return capacity, ok
}

// NormalizeRoomCode приводит код типа номера к каноничному виду
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
