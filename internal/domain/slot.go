package domain

import (
	"time"

	"github.com/shoemant/strata-web/pkg/types"
)

// TimeSlot материализованная бронируемая единица, производная от
// AvailabilityWindow. Естественный ключ: (ResourceID, Weekday, StartTime) -
// он стабилен при перегенерации, в отличие от суррогатного ID
type TimeSlot struct {
	ID         int64
	ResourceID int64
	Weekday    time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	Capacity   int
	TimeLabel  string // стабильная метка для отображения, например "09:30"
}

// Key returns the natural key of the slot within its resource
func (s *TimeSlot) Key() SlotKey {
	return SlotKey{Weekday: s.Weekday, StartTime: s.StartTime}
}

// SlotKey identifies a materialized slot within a resource
type SlotKey struct {
	Weekday   time.Weekday
	StartTime types.TimeString
}

// OpenSlot read-side projection of a slot for a concrete date:
// the slot itself plus how many confirmed bookings already hold it
type OpenSlot struct {
	Slot        TimeSlot
	BookedCount int
}

// IsFull returns true if the slot has no free capacity left
func (s *OpenSlot) IsFull() bool {
	return s.BookedCount >= s.Slot.Capacity
}

// FreeSpots returns the remaining capacity, never negative
func (s *OpenSlot) FreeSpots() int {
	free := s.Slot.Capacity - s.BookedCount
	if free < 0 {
		return 0
	}
	return free
}
