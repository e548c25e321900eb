package book_slot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoemant/strata-web/internal/domain"
	availabilityRepo "github.com/shoemant/strata-web/internal/infra/storage/availability"
	bookingRepo "github.com/shoemant/strata-web/internal/infra/storage/booking"
	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
	"github.com/shoemant/strata-web/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeResourceRepo struct {
	resource     *domain.Resource
	resourceType *domain.ResourceType
}

func (f *fakeResourceRepo) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	if f.resource == nil || f.resource.ID != id {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return f.resource, nil
}

func (f *fakeResourceRepo) GetTypeByID(ctx context.Context, id int64) (*domain.ResourceType, error) {
	if f.resourceType == nil {
		return nil, resourceRepo.ErrTypeNotFound
	}
	return f.resourceType, nil
}

type fakeAvailabilityRepo struct {
	slot *domain.TimeSlot
}

func (f *fakeAvailabilityRepo) GetSlotByKey(ctx context.Context, resourceID int64, weekday time.Weekday, startTime types.TimeString) (*domain.TimeSlot, error) {
	if f.slot == nil || f.slot.ResourceID != resourceID ||
		f.slot.Weekday != weekday || f.slot.StartTime != startTime {
		return nil, availabilityRepo.ErrSlotNotFound
	}
	return f.slot, nil
}

// fakeBookingStore хранит бронирования в памяти; обращения к нему
// линеаризуются фейковым транзакционным менеджером
type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
	failRead error
}

func (f *fakeBookingStore) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt

	stored := *b
	f.bookings = append(f.bookings, &stored)
	return b, nil
}

func (f *fakeBookingStore) GetConfirmedBySlotDate(ctx context.Context, resourceID int64, date time.Time, slotStart types.TimeString) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failRead != nil {
		return nil, f.failRead
	}

	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ResourceID == resourceID && b.Status == domain.StatusConfirmed &&
			b.Mode == domain.ModeSlot && b.SlotStartTime == slotStart &&
			b.BookingDate != nil && b.BookingDate.Equal(date) {
			result = append(result, b)
		}
	}
	return result, nil
}

// serialTxManager исполняет транзакции строго по одной, имитируя
// сериализуемую изоляцию для конкурентных тестов
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// nextDate возвращает ближайшую будущую дату с нужным днём недели
func nextDate(weekday time.Weekday) time.Time {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(capacity int) (*UseCase, *fakeBookingStore) {
	store := &fakeBookingStore{}
	location := "3rd floor"
	uc := NewUseCase(
		&fakeResourceRepo{
			resource: &domain.Resource{
				ID:                  10,
				BuildingID:          1,
				TypeID:              5,
				Name:                "Gym",
				LocationDescription: &location,
				TotalCapacity:       &capacity,
				IsActive:            true,
			},
			resourceType: &domain.ResourceType{ID: 5, BuildingID: 1, Name: "Fitness"},
		},
		&fakeAvailabilityRepo{slot: &domain.TimeSlot{
			ID:         1,
			ResourceID: 10,
			Weekday:    time.Monday,
			StartTime:  "09:00",
			EndTime:    "10:00",
			Capacity:   capacity,
			TimeLabel:  "09:00",
		}},
		store,
		&serialTxManager{},
		nopLogger{},
	)
	return uc, store
}

func TestExecute_CreatesBooking(t *testing.T) {
	uc, store := newTestUseCase(2)
	date := nextDate(time.Monday)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		ResourceID: 10,
		Date:       date,
		StartTime:  "09:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.False(t, resp.AlreadyExisted)

	// Денормализация данных ресурса в бронировании
	assert.Equal(t, "Gym", resp.ResourceName)
	require.NotNil(t, resp.ResourceTypeName)
	assert.Equal(t, "Fitness", *resp.ResourceTypeName)

	require.Len(t, store.bookings, 1)
	assert.Equal(t, domain.ModeSlot, store.bookings[0].Mode)
}

func TestExecute_StorageOutageIsRetryable(t *testing.T) {
	uc, store := newTestUseCase(2)
	store.failRead = fmt.Errorf("%w: GetConfirmedBySlotDate - execute query: connection refused",
		bookingRepo.ErrExecQuery)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		ResourceID: 10,
		Date:       nextDate(time.Monday),
		StartTime:  "09:00",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestExecute_RepeatRequestReturnsExistingBooking(t *testing.T) {
	uc, store := newTestUseCase(2)
	date := nextDate(time.Monday)

	req := &Request{UserID: 100, ResourceID: 10, Date: date, StartTime: "09:00"}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, second.AlreadyExisted)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.bookings, 1)
}

func TestExecute_SlotFull(t *testing.T) {
	uc, store := newTestUseCase(1)
	date := nextDate(time.Monday)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 100, ResourceID: 10, Date: date, StartTime: "09:00",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		UserID: 200, ResourceID: 10, Date: date, StartTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Len(t, store.bookings, 1)
}

func TestExecute_CapacityNeverExceededUnderConcurrency(t *testing.T) {
	const capacity = 3
	const attempts = 5

	uc, store := newTestUseCase(capacity)
	date := nextDate(time.Monday)

	errs := make(chan error, attempts)
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				UserID:     userID,
				ResourceID: 10,
				Date:       date,
				StartTime:  "09:00",
			})
			errs <- err
		}(int64(100 + i))
	}

	wg.Wait()
	close(errs)

	var accepted, rejected int
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		require.ErrorIs(t, err, ErrSlotFull)
		rejected++
	}

	assert.Equal(t, capacity, accepted)
	assert.Equal(t, attempts-capacity, rejected)
	assert.Len(t, store.bookings, capacity)
}

func TestExecute_DifferentDatesDoNotShareCapacity(t *testing.T) {
	uc, store := newTestUseCase(1)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 100, ResourceID: 10, Date: nextDate(time.Monday), StartTime: "09:00",
	})
	require.NoError(t, err)

	// Тот же слот неделей позже: вместимость считается поверх даты
	_, err = uc.Execute(context.Background(), &Request{
		UserID: 200, ResourceID: 10, Date: nextDate(time.Monday).AddDate(0, 0, 7), StartTime: "09:00",
	})
	require.NoError(t, err)
	assert.Len(t, store.bookings, 2)
}

func TestExecute_Failures(t *testing.T) {
	date := nextDate(time.Monday)

	t.Run("past date", func(t *testing.T) {
		uc, _ := newTestUseCase(1)
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 100, ResourceID: 10,
			Date:      time.Now().AddDate(0, 0, -1),
			StartTime: "09:00",
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("resource not found", func(t *testing.T) {
		uc, _ := newTestUseCase(1)
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 100, ResourceID: 999, Date: date, StartTime: "09:00",
		})
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("slot not found", func(t *testing.T) {
		uc, _ := newTestUseCase(1)
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 100, ResourceID: 10, Date: date, StartTime: "13:00",
		})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("wrong weekday", func(t *testing.T) {
		uc, _ := newTestUseCase(1)
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 100, ResourceID: 10, Date: nextDate(time.Tuesday), StartTime: "09:00",
		})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("free-form resource rejects slot booking", func(t *testing.T) {
		uc, _ := newTestUseCase(1)
		uc.resourceRepo.(*fakeResourceRepo).resource.TotalCapacity = nil
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 100, ResourceID: 10, Date: date, StartTime: "09:00",
		})
		assert.ErrorIs(t, err, ErrWrongMode)
	})

	t.Run("inactive resource", func(t *testing.T) {
		uc, _ := newTestUseCase(1)
		uc.resourceRepo.(*fakeResourceRepo).resource.IsActive = false
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 100, ResourceID: 10, Date: date, StartTime: "09:00",
		})
		assert.ErrorIs(t, err, ErrResourceInactive)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc, _ := newTestUseCase(1)
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 0, ResourceID: 10, Date: date, StartTime: "09:00",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_MissingTypeIsNotFatal(t *testing.T) {
	uc, _ := newTestUseCase(1)
	uc.resourceRepo.(*fakeResourceRepo).resourceType = nil

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 100, ResourceID: 10, Date: nextDate(time.Monday), StartTime: "09:00",
	})

	require.NoError(t, err)
	assert.Nil(t, resp.ResourceTypeName)
}
