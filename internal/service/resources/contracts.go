package resources

import (
	"context"

	"github.com/shoemant/strata-web/internal/domain"
	"github.com/shoemant/strata-web/internal/integrations/identityservice"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	GetByBuilding(ctx context.Context, buildingID int64, activeOnly bool) ([]*domain.Resource, error)
	SetActive(ctx context.Context, id int64, active bool) error
	CreateType(ctx context.Context, resourceType *domain.ResourceType) (*domain.ResourceType, error)
	GetTypeByID(ctx context.Context, id int64) (*domain.ResourceType, error)
	GetTypesByBuilding(ctx context.Context, buildingID int64) ([]*domain.ResourceType, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetWindowsByResource(ctx context.Context, resourceID int64) ([]*domain.AvailabilityWindow, error)
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
