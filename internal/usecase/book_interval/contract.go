package book_interval

import (
	"context"
	"time"

	"github.com/shoemant/strata-web/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	GetTypeByID(ctx context.Context, id int64) (*domain.ResourceType, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetWindowsByResource(ctx context.Context, resourceID int64) ([]*domain.AvailabilityWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetConfirmedByResourceAndRange(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
