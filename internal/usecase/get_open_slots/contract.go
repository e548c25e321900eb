package get_open_slots

import (
	"context"
	"time"

	"github.com/shoemant/strata-web/internal/domain"
	"github.com/shoemant/strata-web/pkg/types"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// AvailabilityRepository интерфейс репозитория окон и слотов доступности
type AvailabilityRepository interface {
	GetWindowsByResource(ctx context.Context, resourceID int64) ([]*domain.AvailabilityWindow, error)
	GetSlotsByResourceAndWeekday(ctx context.Context, resourceID int64, weekday time.Weekday) ([]*domain.TimeSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountConfirmedBySlotsAndDate(ctx context.Context, resourceID int64, date time.Time) (map[types.TimeString]int, error)
	GetConfirmedByResourceAndRange(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Booking, error)
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
