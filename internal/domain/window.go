package domain

import (
	"time"

	"github.com/shoemant/strata-web/pkg/types"
)

// AvailabilityWindow одно повторяющееся недельное правило открытых часов
// ресурса; несколько окон на один день недели допустимы
type AvailabilityWindow struct {
	ID              int64
	ResourceID      int64
	Weekday         time.Weekday // 0 = Sunday ... 6 = Saturday
	StartTime       types.TimeString
	EndTime         types.TimeString
	IntervalMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SpanMinutes returns the length of the window in minutes
func (w *AvailabilityWindow) SpanMinutes() (int, error) {
	start, err := w.StartTime.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := w.EndTime.Minutes()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// TilesEvenly returns true if the interval tiles [start,end) without remainder
// Окна с остатком допустимы: хвостовой неполный слот отбрасывается
func (w *AvailabilityWindow) TilesEvenly() bool {
	span, err := w.SpanMinutes()
	if err != nil {
		return false
	}
	return w.IntervalMinutes > 0 && span%w.IntervalMinutes == 0
}

// Covers returns true if [start,end) lies inside the window's time-of-day range
func (w *AvailabilityWindow) Covers(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}

// Overlaps returns true if the two windows are for the same weekday and their
// time-of-day ranges actually intersect (boundary touch is not an overlap)
func (w *AvailabilityWindow) Overlaps(other *AvailabilityWindow) bool {
	if w.Weekday != other.Weekday {
		return false
	}
	return w.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(w.EndTime)
}
