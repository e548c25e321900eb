package update_availability

import (
	"context"
	"time"

	"github.com/shoemant/strata-web/internal/domain"
	"github.com/shoemant/strata-web/internal/integrations/identityservice"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// AvailabilityRepository интерфейс репозитория окон и слотов
type AvailabilityRepository interface {
	ReplaceForResource(ctx context.Context, resourceID int64, windows []*domain.AvailabilityWindow, slots []*domain.TimeSlot) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	RecomputeOrphans(ctx context.Context, resourceID int64) (int64, error)
}

// IdentityClient интерфейс клиента для IdentityService
type IdentityClient interface {
	GetUser(ctx context.Context, userID int64) (*identityservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
// Публикация нового набора слотов должна быть атомарной
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
