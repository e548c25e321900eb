package get_open_slots

import (
	"sort"
	"time"

	"github.com/shoemant/strata-web/internal/domain"
	"github.com/shoemant/strata-web/pkg/types"
)

// projectSlots строит сетку слотов slot-ресурса на дату:
// материализованные слоты дня недели плюс подсчёт подтверждённых
// бронирований по времени начала
func projectSlots(slots []*domain.TimeSlot, counts map[types.TimeString]int) []Slot {
	result := make([]Slot, 0, len(slots))

	for _, s := range slots {
		duration, err := slotSpanMinutes(s.StartTime, s.EndTime)
		if err != nil {
			continue
		}

		open := domain.OpenSlot{Slot: *s, BookedCount: counts[s.StartTime]}
		result = append(result, Slot{
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: duration,
			AvailableSpots:  open.FreeSpots(),
			TotalSpots:      s.Capacity,
			TimeLabel:       s.TimeLabel,
		})
	}

	return result
}

// projectIntervalGrid строит отображаемую сетку free-form ресурса на дату:
// окна дня недели нарезаются шагом DefaultDisplayStepMinutes, клетка занята,
// если её пересекает подтверждённое бронирование. Хвост окна, не кратный
// шагу, отбрасывается
func projectIntervalGrid(
	windows []*domain.AvailabilityWindow,
	bookings []*domain.Booking,
	date time.Time,
) []Slot {
	weekday := date.Weekday()
	result := make([]Slot, 0)

	for _, w := range windows {
		if w.Weekday != weekday {
			continue
		}

		current := w.StartTime
		for current.IsBefore(w.EndTime) {
			cellEnd, err := current.AddMinutes(domain.DefaultDisplayStepMinutes)
			if err != nil {
				break
			}
			if cellEnd.IsAfter(w.EndTime) {
				break
			}

			available := 1
			if cellOccupied(bookings, date, current, cellEnd) {
				available = 0
			}

			result = append(result, Slot{
				StartTime:       current,
				EndTime:         cellEnd,
				DurationMinutes: domain.DefaultDisplayStepMinutes,
				AvailableSpots:  available,
				TotalSpots:      1,
				TimeLabel:       current.String(),
			})

			current = cellEnd
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})

	return result
}

// cellOccupied проверяет, пересекает ли клетку [start,end) хотя бы одно
// подтверждённое бронирование. Касание границ пересечением не считается
func cellOccupied(bookings []*domain.Booking, date time.Time, start, end types.TimeString) bool {
	cellStart, err := absTime(date, start)
	if err != nil {
		return false
	}
	cellEnd, err := absTime(date, end)
	if err != nil {
		return false
	}

	for _, b := range bookings {
		if b.OverlapsInterval(cellStart, cellEnd) {
			return true
		}
	}
	return false
}

// absTime комбинирует дату и время суток в абсолютный таймстемп
func absTime(date time.Time, ts types.TimeString) (time.Time, error) {
	minutes, err := ts.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// slotSpanMinutes вычисляет длительность слота по его границам
func slotSpanMinutes(start, end types.TimeString) (int, error) {
	s, err := start.Minutes()
	if err != nil {
		return 0, err
	}
	e, err := end.Minutes()
	if err != nil {
		return 0, err
	}
	return e - s, nil
}
