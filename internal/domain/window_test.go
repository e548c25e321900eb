package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shoemant/strata-web/pkg/types"
)

func window(weekday time.Weekday, start, end string, interval int) *AvailabilityWindow {
	return &AvailabilityWindow{
		Weekday:         weekday,
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		IntervalMinutes: interval,
	}
}

func TestAvailabilityWindow_Covers(t *testing.T) {
	w := window(time.Monday, "09:00", "18:00", 60)

	assert.True(t, w.Covers("09:00", "18:00"))
	assert.True(t, w.Covers("10:00", "11:00"))
	assert.True(t, w.Covers("09:00", "09:05"))
	assert.False(t, w.Covers("08:59", "10:00"))
	assert.False(t, w.Covers("17:30", "18:01"))
}

func TestAvailabilityWindow_Overlaps(t *testing.T) {
	base := window(time.Monday, "09:00", "12:00", 60)

	// Касание границ пересечением не считается
	assert.False(t, base.Overlaps(window(time.Monday, "12:00", "15:00", 60)))
	assert.False(t, base.Overlaps(window(time.Monday, "06:00", "09:00", 60)))

	assert.True(t, base.Overlaps(window(time.Monday, "11:59", "13:00", 60)))
	assert.True(t, base.Overlaps(window(time.Monday, "10:00", "11:00", 60)))

	// Разные дни недели никогда не пересекаются
	assert.False(t, base.Overlaps(window(time.Tuesday, "09:00", "12:00", 60)))
}

func TestAvailabilityWindow_TilesEvenly(t *testing.T) {
	assert.True(t, window(time.Monday, "09:00", "12:00", 60).TilesEvenly())
	assert.True(t, window(time.Monday, "09:00", "10:00", 30).TilesEvenly())
	assert.False(t, window(time.Monday, "09:00", "10:15", 30).TilesEvenly())
	assert.False(t, window(time.Monday, "09:00", "10:00", 0).TilesEvenly())
}
