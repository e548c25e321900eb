package get_open_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoemant/strata-web/internal/domain"
	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
	"github.com/shoemant/strata-web/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeResourceRepo struct {
	resource *domain.Resource
}

func (f *fakeResourceRepo) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	if f.resource == nil || f.resource.ID != id {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return f.resource, nil
}

type fakeAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
	slots   []*domain.TimeSlot
}

func (f *fakeAvailabilityRepo) GetWindowsByResource(ctx context.Context, resourceID int64) ([]*domain.AvailabilityWindow, error) {
	return f.windows, nil
}

func (f *fakeAvailabilityRepo) GetSlotsByResourceAndWeekday(ctx context.Context, resourceID int64, weekday time.Weekday) ([]*domain.TimeSlot, error) {
	result := make([]*domain.TimeSlot, 0)
	for _, s := range f.slots {
		if s.ResourceID == resourceID && s.Weekday == weekday {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeBookingRepo struct {
	counts   map[types.TimeString]int
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) CountConfirmedBySlotsAndDate(ctx context.Context, resourceID int64, date time.Time) (map[types.TimeString]int, error) {
	if f.counts == nil {
		return map[types.TimeString]int{}, nil
	}
	return f.counts, nil
}

func (f *fakeBookingRepo) GetConfirmedByResourceAndRange(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

// monday фиксированный понедельник, чтобы проекция была воспроизводимой
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func slotResource() *domain.Resource {
	return &domain.Resource{ID: 10, BuildingID: 1, TotalCapacity: intPtr(2), IsActive: true}
}

func freeFormResource() *domain.Resource {
	return &domain.Resource{ID: 10, BuildingID: 1, TotalCapacity: nil, IsActive: true}
}

func TestExecute_SlotGridWithOccupancy(t *testing.T) {
	uc := NewUseCase(
		&fakeResourceRepo{resource: slotResource()},
		&fakeAvailabilityRepo{slots: []*domain.TimeSlot{
			{ResourceID: 10, Weekday: time.Monday, StartTime: "09:00", EndTime: "09:30", Capacity: 2, TimeLabel: "09:00"},
			{ResourceID: 10, Weekday: time.Monday, StartTime: "09:30", EndTime: "10:00", Capacity: 2, TimeLabel: "09:30"},
		}},
		&fakeBookingRepo{counts: map[types.TimeString]int{"09:00": 2}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 10, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModeSlot), resp.Mode)
	require.Len(t, resp.Slots, 2)

	full := resp.Slots[0]
	assert.Equal(t, types.TimeString("09:00"), full.StartTime)
	assert.Equal(t, 0, full.AvailableSpots)
	assert.Equal(t, 2, full.TotalSpots)
	assert.Equal(t, 30, full.DurationMinutes)

	free := resp.Slots[1]
	assert.Equal(t, types.TimeString("09:30"), free.StartTime)
	assert.Equal(t, 2, free.AvailableSpots)
}

func TestExecute_SlotGridIgnoresOtherWeekdays(t *testing.T) {
	uc := NewUseCase(
		&fakeResourceRepo{resource: slotResource()},
		&fakeAvailabilityRepo{slots: []*domain.TimeSlot{
			{ResourceID: 10, Weekday: time.Tuesday, StartTime: "09:00", EndTime: "09:30", Capacity: 2},
		}},
		&fakeBookingRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 10, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OvercountNeverGoesNegative(t *testing.T) {
	uc := NewUseCase(
		&fakeResourceRepo{resource: slotResource()},
		&fakeAvailabilityRepo{slots: []*domain.TimeSlot{
			{ResourceID: 10, Weekday: time.Monday, StartTime: "09:00", EndTime: "09:30", Capacity: 2},
		}},
		// Занятость больше вместимости возможна после уменьшения capacity
		&fakeBookingRepo{counts: map[types.TimeString]int{"09:00": 5}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 10, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 0, resp.Slots[0].AvailableSpots)
}

func TestExecute_IntervalGrid(t *testing.T) {
	held := monday.Add(10 * time.Hour)
	heldEnd := monday.Add(11 * time.Hour)

	uc := NewUseCase(
		&fakeResourceRepo{resource: freeFormResource()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{
			{ResourceID: 10, Weekday: time.Monday, StartTime: "09:00", EndTime: "12:00", IntervalMinutes: 60},
		}},
		&fakeBookingRepo{bookings: []*domain.Booking{
			{
				ResourceID: 10,
				Mode:       domain.ModeInterval,
				Status:     domain.StatusConfirmed,
				StartAt:    &held,
				EndAt:      &heldEnd,
			},
		}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 10, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModeInterval), resp.Mode)
	require.Len(t, resp.Slots, 3)

	// Клетка 09:00 свободна, 10:00 занята бронированием, 11:00 свободна:
	// интервал [10:00, 11:00) касается клетки 11:00 только границей
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 1, resp.Slots[0].AvailableSpots)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)
	assert.Equal(t, 0, resp.Slots[1].AvailableSpots)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[2].StartTime)
	assert.Equal(t, 1, resp.Slots[2].AvailableSpots)

	for _, s := range resp.Slots {
		assert.Equal(t, domain.DefaultDisplayStepMinutes, s.DurationMinutes)
		assert.Equal(t, 1, s.TotalSpots)
	}
}

func TestExecute_IntervalGridDropsPartialTail(t *testing.T) {
	uc := NewUseCase(
		&fakeResourceRepo{resource: freeFormResource()},
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{
			{ResourceID: 10, Weekday: time.Monday, StartTime: "09:00", EndTime: "10:30", IntervalMinutes: 60},
		}},
		&fakeBookingRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 10, Date: monday})
	require.NoError(t, err)

	// Хвост 10:00-10:30 короче шага отображения и отбрасывается
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
}

func TestExecute_InactiveResourceHasNoSlots(t *testing.T) {
	resource := slotResource()
	resource.IsActive = false

	uc := NewUseCase(
		&fakeResourceRepo{resource: resource},
		&fakeAvailabilityRepo{slots: []*domain.TimeSlot{
			{ResourceID: 10, Weekday: time.Monday, StartTime: "09:00", EndTime: "09:30", Capacity: 2},
		}},
		&fakeBookingRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 10, Date: monday})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeResourceRepo{},
		&fakeAvailabilityRepo{},
		&fakeBookingRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 999, Date: monday})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}
