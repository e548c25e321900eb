package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoemant/strata-web/pkg/types"
)

func intervalBooking(start, end time.Time) *Booking {
	return &Booking{
		Mode:    ModeInterval,
		StartAt: &start,
		EndAt:   &end,
		Status:  StatusConfirmed,
	}
}

func TestBooking_OverlapsInterval(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	at := func(hour, min int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}

	held := intervalBooking(at(14, 0), at(15, 0))

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "identical interval", start: at(14, 0), end: at(15, 0), want: true},
		{name: "partial overlap from left", start: at(13, 30), end: at(14, 30), want: true},
		{name: "partial overlap from right", start: at(14, 30), end: at(15, 30), want: true},
		{name: "contained", start: at(14, 15), end: at(14, 45), want: true},
		{name: "containing", start: at(13, 0), end: at(16, 0), want: true},
		// Полуоткрытые интервалы: касание границ не конфликт
		{name: "touching at end", start: at(15, 0), end: at(16, 0), want: false},
		{name: "touching at start", start: at(13, 0), end: at(14, 0), want: false},
		{name: "disjoint", start: at(16, 0), end: at(17, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, held.OverlapsInterval(tt.start, tt.end))
		})
	}

	// Slot-бронирование без таймстемпов не пересекается ни с чем
	slotBooking := &Booking{Mode: ModeSlot, SlotStartTime: "14:00"}
	assert.False(t, slotBooking.OverlapsInterval(at(14, 0), at(15, 0)))
}

func TestBooking_SlotEndTime(t *testing.T) {
	b := &Booking{SlotStartTime: types.TimeString("09:30"), DurationMinutes: 45}
	end, err := b.SlotEndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:15"), end)
}

func TestBooking_StatusTransitions(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}
	assert.True(t, b.IsConfirmed())
	assert.True(t, b.CanBeCancelled())
	assert.False(t, b.IsCancelled())

	b.Status = StatusCancelledByUser
	assert.False(t, b.IsConfirmed())
	assert.False(t, b.CanBeCancelled())
	assert.True(t, b.IsCancelled())

	b.Status = StatusCancelledByManager
	assert.False(t, b.CanBeCancelled())
	assert.True(t, b.IsCancelled())
}

func TestResource_SlotCapacity(t *testing.T) {
	capacity := 5
	r := &Resource{TotalCapacity: &capacity}
	assert.Equal(t, 5, r.SlotCapacity())
	assert.False(t, r.IsFreeForm())

	freeForm := &Resource{TotalCapacity: nil}
	assert.Equal(t, DefaultSlotCapacity, freeForm.SlotCapacity())
	assert.True(t, freeForm.IsFreeForm())
}
