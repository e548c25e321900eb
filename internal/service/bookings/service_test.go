package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoemant/strata-web/internal/domain"
	bookingRepo "github.com/shoemant/strata-web/internal/infra/storage/booking"
	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
	"github.com/shoemant/strata-web/internal/integrations/identityservice"
	"github.com/shoemant/strata-web/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelledReason string

	// Статус, который конкурирующая отмена выставляет сразу после чтения
	cancelAfterRead domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	read := *b
	if f.cancelAfterRead != "" {
		b.Status = f.cancelAfterRead
	}
	return &read, nil
}

func (f *fakeBookingRepo) GetByUserWithFilter(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByBuildingWithFilter(ctx context.Context, filter domain.BuildingBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.ResourceID != nil && b.ResourceID != *filter.ResourceID {
			continue
		}
		if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	b, ok := f.bookings[id]
	if !ok || b.Status != domain.StatusConfirmed {
		return bookingRepo.ErrCannotCancel
	}
	b.Status = status
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	return nil
}

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
	users map[int64]*identityservice.User
}

func (f *fakeIdentityClient) GetUser(ctx context.Context, userID int64) (*identityservice.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, identityservice.ErrUserNotFound
	}
	return u, nil
}

const (
	ownerID   = int64(100)
	managerID = int64(500)
	otherID   = int64(200)
)

func confirmedBooking(id int64) *domain.Booking {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:              id,
		UserID:          ownerID,
		ResourceID:      10,
		Mode:            domain.ModeSlot,
		BookingDate:     &date,
		SlotStartTime:   "09:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
		ResourceName:    "Gym",
	}
}

func newTestService(bookings ...*domain.Booking) (*Service, *fakeBookingRepo) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}

	svc := NewService(
		repo,
		&fakeResourceRepo{resource: &domain.Resource{ID: 10, BuildingID: 1, IsActive: true}},
		&fakeIdentityClient{users: map[int64]*identityservice.User{
			ownerID:   {ID: ownerID, Role: identityservice.RoleTenant, BuildingID: 1},
			otherID:   {ID: otherID, Role: identityservice.RoleTenant, BuildingID: 1},
			managerID: {ID: managerID, Role: identityservice.RoleManager, BuildingID: 1},
		}},
		nopLogger{},
	)
	return svc, repo
}

func TestCancel_ByOwner(t *testing.T) {
	svc, repo := newTestService(confirmedBooking(1))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             ownerID,
		CancellationReason: "plans changed",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByUser, repo.cancelledStatus)
	assert.Equal(t, "plans changed", repo.cancelledReason)
}

func TestCancel_ByManager(t *testing.T) {
	svc, repo := newTestService(confirmedBooking(1))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID: managerID,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByManager, repo.cancelledStatus)
}

func TestCancel_AccessDeniedForStranger(t *testing.T) {
	svc, repo := newTestService(confirmedBooking(1))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID: otherID,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	b := confirmedBooking(1)
	b.Status = domain.StatusCancelledByUser
	svc, _ := newTestService(b)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_LostRaceSurfacesCannotCancel(t *testing.T) {
	svc, repo := newTestService(confirmedBooking(1))

	// Конкурирующая отмена успевает между чтением и обновлением: хранилище
	// обновляет только confirmed строки, так что вторая отмена проигрывает
	repo.cancelAfterRead = domain.StatusCancelledByUser

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Zero(t, repo.cancelledID)
}

func TestCancel_NotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Cancel(context.Background(), 404, &models.CancelBookingRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc, _ := newTestService(confirmedBooking(1))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             ownerID,
		CancellationReason: strings.Repeat("x", domain.MaxCancellationReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_AccessControl(t *testing.T) {
	svc, _ := newTestService(confirmedBooking(1))

	resp, err := svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "slot", resp.Mode)
	require.NotNil(t, resp.BookingDate)
	assert.Equal(t, "2026-09-07", *resp.BookingDate)
	require.NotNil(t, resp.EndTime)
	assert.Equal(t, "09:30", *resp.EndTime)

	_, err = svc.GetByID(context.Background(), 1, managerID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, otherID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	cancelled := confirmedBooking(2)
	cancelled.Status = domain.StatusCancelledByUser
	svc, _ := newTestService(confirmedBooking(1), cancelled)

	all, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: ownerID})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)

	status := "confirmed"
	confirmed, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: ownerID,
		Status: &status,
	})
	require.NoError(t, err)
	require.Len(t, confirmed.Bookings, 1)
	assert.Equal(t, int64(1), confirmed.Bookings[0].ID)

	bad := "unknown"
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: ownerID,
		Status: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBuildingBookings_ManagerOnly(t *testing.T) {
	svc, _ := newTestService(confirmedBooking(1))

	resp, err := svc.GetBuildingBookings(context.Background(), &models.GetBuildingBookingsRequest{
		UserID:     managerID,
		BuildingID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetBuildingBookings(context.Background(), &models.GetBuildingBookingsRequest{
		UserID:     ownerID,
		BuildingID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBuildingBookings_ExcludesCancelledByDefault(t *testing.T) {
	cancelled := confirmedBooking(2)
	cancelled.Status = domain.StatusCancelledByManager
	svc, _ := newTestService(confirmedBooking(1), cancelled)

	resp, err := svc.GetBuildingBookings(context.Background(), &models.GetBuildingBookingsRequest{
		UserID:     managerID,
		BuildingID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = svc.GetBuildingBookings(context.Background(), &models.GetBuildingBookingsRequest{
		UserID:           managerID,
		BuildingID:       1,
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}
