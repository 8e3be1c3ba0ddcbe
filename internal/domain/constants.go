package domain

import "time"

// Форматы дат
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Параметры токена PMS
const (
	// TokenExpirySkew токен считается истекшим на 5 секунд раньше номинального срока
	TokenExpirySkew = 5 * time.Second

	// DefaultTokenTTL используется, если PMS не вернула expires_in
	DefaultTokenTTL = 30 * time.Second
)

// Вместимость типов номеров
const (
	MinCapacity     = 1
	MaxCapacity     = 5
	DefaultCapacity = 2

	// MaxCapacityOverride верхняя граница ручной вместимости из таблицы переопределений
	MaxCapacityOverride = 20
)

// Причины, по которым тип номера не подходит
const (
	ReasonNoOccupancyData = "no occupancy data"
	ReasonCapacityTooLow  = "capacity too low"
	reasonUnavailableOn   = "unavailable on "
)

// UnavailableOnReason формирует причину "unavailable on <date>"
func UnavailableOnReason(date time.Time) string {
	return reasonUnavailableOn + date.Format(DateFormat)
}

// Источник вместимости
const (
	CapacitySourceHeuristic = "heuristic"
	CapacitySourceOverride  = "override"
)
