package domain

import (
	"fmt"
	"time"
)

// DateRange запрошенный период проживания. CheckOut не включается в период.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewDateRange создает период из дат, отбрасывая время суток
func NewDateRange(checkIn, checkOut time.Time) DateRange {
	return DateRange{
		CheckIn:  DateOnly(checkIn),
		CheckOut: DateOnly(checkOut),
	}
}

// ParseDateRange разбирает даты в формате YYYY-MM-DD
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(DateFormat, checkIn)
	if err != nil {
		return DateRange{}, fmt.Errorf("parse check-in date: %w", err)
	}

	out, err := time.Parse(DateFormat, checkOut)
	if err != nil {
		return DateRange{}, fmt.Errorf("parse check-out date: %w", err)
	}

	return NewDateRange(in, out), nil
}

// IsValid returns true if check-in is strictly before check-out
func (r DateRange) IsValid() bool {
	return r.CheckIn.Before(r.CheckOut)
}

// Contains returns true if the day falls into [CheckIn, CheckOut)
func (r DateRange) Contains(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

// Nights количество ночей в периоде
func (r DateRange) Nights() int {
	if !r.IsValid() {
		return 0
	}
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// GuestCount состав группы гостей
type GuestCount struct {
	Adults          int
	ChildrenUnder6  int // дети до 5 лет включительно, отдельная кровать не нужна
	Children6OrOver int
}

// BedsNeeded количество спальных мест для группы
func (g GuestCount) BedsNeeded() int {
	return g.Adults + g.Children6OrOver
}

// IsValid returns true if no count is negative
func (g GuestCount) IsValid() bool {
	return g.Adults >= 0 && g.ChildrenUnder6 >= 0 && g.Children6OrOver >= 0
}

// DateOnly приводит время к полуночи UTC того же календарного дня
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
