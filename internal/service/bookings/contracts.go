package bookings

import (
	"context"

	"github.com/shoemant/strata-web/internal/domain"
	"github.com/shoemant/strata-web/internal/integrations/identityservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserWithFilter(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	GetByBuildingWithFilter(ctx context.Context, filter domain.BuildingBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*identityservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
