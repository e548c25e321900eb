package update_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoemant/strata-web/internal/domain"
	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
	"github.com/shoemant/strata-web/internal/integrations/identityservice"
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

type fakeIdentityClient struct {
	user *identityservice.User
}

func (f *fakeIdentityClient) GetUser(ctx context.Context, userID int64) (*identityservice.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, identityservice.ErrUserNotFound
	}
	return f.user, nil
}

type fakeAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
	slots   []*domain.TimeSlot
	calls   int
}

func (f *fakeAvailabilityRepo) ReplaceForResource(
	ctx context.Context,
	resourceID int64,
	windows []*domain.AvailabilityWindow,
	slots []*domain.TimeSlot,
) error {
	f.windows = windows
	f.slots = slots
	f.calls++
	return nil
}

type fakeBookingRepo struct {
	orphaned int64
}

func (f *fakeBookingRepo) RecomputeOrphans(ctx context.Context, resourceID int64) (int64, error) {
	return f.orphaned, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func intPtr(v int) *int { return &v }

func newTestUseCase(capacity *int, orphaned int64) (*UseCase, *fakeAvailabilityRepo) {
	availRepo := &fakeAvailabilityRepo{}
	uc := NewUseCase(
		&fakeResourceRepo{resource: &domain.Resource{
			ID:            10,
			BuildingID:    1,
			TotalCapacity: capacity,
			IsActive:      true,
		}},
		availRepo,
		&fakeBookingRepo{orphaned: orphaned},
		&fakeIdentityClient{user: &identityservice.User{
			ID:         100,
			Role:       identityservice.RoleManager,
			BuildingID: 1,
		}},
		fakeTxManager{},
		nopLogger{},
	)
	return uc, availRepo
}

func win(weekday time.Weekday, start, end string, interval int) WindowInput {
	return WindowInput{
		Weekday:         weekday,
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		IntervalMinutes: interval,
	}
}

func TestExecute_MaterializesSlots(t *testing.T) {
	uc, availRepo := newTestUseCase(intPtr(2), 0)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		ResourceID: 10,
		Windows:    []WindowInput{win(time.Monday, "09:00", "10:00", 30)},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.WindowCount)
	assert.Equal(t, 2, resp.SlotCount)
	assert.Empty(t, resp.Warnings)

	require.Len(t, availRepo.slots, 2)
	first, second := availRepo.slots[0], availRepo.slots[1]

	assert.Equal(t, types.TimeString("09:00"), first.StartTime)
	assert.Equal(t, types.TimeString("09:30"), first.EndTime)
	assert.Equal(t, types.TimeString("09:30"), second.StartTime)
	assert.Equal(t, types.TimeString("10:00"), second.EndTime)

	for _, s := range availRepo.slots {
		assert.Equal(t, int64(10), s.ResourceID)
		assert.Equal(t, time.Monday, s.Weekday)
		assert.Equal(t, 2, s.Capacity)
		assert.Equal(t, s.StartTime.String(), s.TimeLabel)
	}
}

func TestExecute_DropsTrailingPartialSlot(t *testing.T) {
	uc, availRepo := newTestUseCase(intPtr(1), 0)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		ResourceID: 10,
		Windows:    []WindowInput{win(time.Monday, "09:00", "10:15", 30)},
	})

	require.NoError(t, err)
	// 09:00-09:30, 09:30-10:00; хвост 10:00-10:15 отброшен
	assert.Equal(t, 2, resp.SlotCount)
	require.Len(t, availRepo.slots, 2)
	assert.Equal(t, types.TimeString("10:00"), availRepo.slots[1].EndTime)

	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "not evenly tiled")
}

func TestExecute_WarnsOnOverlappingWindows(t *testing.T) {
	uc, _ := newTestUseCase(intPtr(1), 0)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		ResourceID: 10,
		Windows: []WindowInput{
			win(time.Monday, "09:00", "12:00", 60),
			win(time.Monday, "11:00", "14:00", 60),
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "overlap")
}

func TestExecute_OverlappingWindowsPublishEachStartOnce(t *testing.T) {
	uc, availRepo := newTestUseCase(intPtr(2), 0)

	// Окна пересекаются и шагают по одним и тем же границам:
	// 10:00 и 11:00 порождаются обоими окнами
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		ResourceID: 10,
		Windows: []WindowInput{
			win(time.Monday, "09:00", "12:00", 60),
			win(time.Monday, "10:00", "12:00", 60),
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "overlap")

	starts := make(map[types.TimeString]int)
	for _, s := range availRepo.slots {
		starts[s.StartTime]++
	}
	assert.Equal(t, map[types.TimeString]int{"09:00": 1, "10:00": 1, "11:00": 1}, starts)
}

func TestExecute_NoWarningOnTouchingWindows(t *testing.T) {
	uc, _ := newTestUseCase(intPtr(1), 0)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		ResourceID: 10,
		Windows: []WindowInput{
			win(time.Monday, "09:00", "12:00", 60),
			win(time.Monday, "12:00", "15:00", 60),
		},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Warnings)
}

func TestExecute_SlotsOrderedAndDeterministic(t *testing.T) {
	uc, availRepo := newTestUseCase(intPtr(1), 0)

	// Окна нарочно перечислены не по порядку дней
	req := &Request{
		UserID:     100,
		ResourceID: 10,
		Windows: []WindowInput{
			win(time.Friday, "10:00", "12:00", 60),
			win(time.Monday, "14:00", "16:00", 60),
			win(time.Monday, "09:00", "11:00", 60),
		},
	}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	firstRun := availRepo.slots

	for i := 1; i < len(firstRun); i++ {
		prev, cur := firstRun[i-1], firstRun[i]
		ordered := prev.Weekday < cur.Weekday ||
			(prev.Weekday == cur.Weekday && prev.StartTime.IsBefore(cur.StartTime))
		assert.True(t, ordered, "slots must be ordered by (weekday, start_time)")
	}

	// Повторная публикация того же набора даёт идентичные слоты
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, firstRun, availRepo.slots)
	assert.Equal(t, 2, availRepo.calls)
}

func TestExecute_EmptyWindowsClearsSlots(t *testing.T) {
	uc, availRepo := newTestUseCase(intPtr(1), 3)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		ResourceID: 10,
		Windows:    []WindowInput{},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.SlotCount)
	assert.Empty(t, availRepo.slots)
	assert.Equal(t, int64(3), resp.OrphanedCount)
}

func TestExecute_InvalidWindows(t *testing.T) {
	uc, _ := newTestUseCase(intPtr(1), 0)

	tests := []struct {
		name   string
		window WindowInput
	}{
		{name: "start equals end", window: win(time.Monday, "09:00", "09:00", 30)},
		{name: "start after end", window: win(time.Monday, "12:00", "09:00", 30)},
		{name: "interval too small", window: win(time.Monday, "09:00", "10:00", 3)},
		{name: "interval too large", window: win(time.Monday, "09:00", "10:00", 500)},
		{name: "weekday out of range", window: win(time.Weekday(7), "09:00", "10:00", 30)},
		{name: "bad start time", window: win(time.Monday, "9am", "10:00", 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				UserID:     100,
				ResourceID: 10,
				Windows:    []WindowInput{tt.window},
			})
			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestExecute_AccessDeniedForNonManager(t *testing.T) {
	availRepo := &fakeAvailabilityRepo{}
	uc := NewUseCase(
		&fakeResourceRepo{resource: &domain.Resource{ID: 10, BuildingID: 1, IsActive: true}},
		availRepo,
		&fakeBookingRepo{},
		&fakeIdentityClient{user: &identityservice.User{
			ID:         100,
			Role:       identityservice.RoleManager,
			BuildingID: 2, // менеджер другого здания
		}},
		fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		ResourceID: 10,
		Windows:    []WindowInput{win(time.Monday, "09:00", "10:00", 30)},
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, availRepo.calls)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	uc, _ := newTestUseCase(intPtr(1), 0)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		ResourceID: 999,
		Windows:    []WindowInput{win(time.Monday, "09:00", "10:00", 30)},
	})

	assert.ErrorIs(t, err, ErrResourceNotFound)
}
