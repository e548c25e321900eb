package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
	identityClient "github.com/shoemant/strata-web/internal/integrations/identityservice"
	"github.com/shoemant/strata-web/internal/service/resources/models"
)

// Service сервис для работы с ресурсами и их типами
type Service struct {
	resourceRepo     ResourceRepository
	availabilityRepo AvailabilityRepository
	identityClient   IdentityServiceClient
	logger           Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(
	resourceRepo ResourceRepository,
	availabilityRepo AvailabilityRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		resourceRepo:     resourceRepo,
		availabilityRepo: availabilityRepo,
		identityClient:   identityClient,
		logger:           logger,
	}
}

// Create создает новый ресурс
// Доступно только менеджерам здания
func (s *Service) Create(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("Create: creating resource %q for building=%d by user=%d",
		req.Name, req.BuildingID, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа (только менеджер здания)
	if err := s.checkManagerAccess(ctx, req.BuildingID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Тип ресурса должен существовать и принадлежать зданию
	resourceType, err := s.resourceRepo.GetTypeByID(ctx, req.TypeID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrTypeNotFound) {
			s.logger.Warn("Create: resource type id=%d not found", req.TypeID)
			return nil, ErrTypeNotFound
		}
		s.logger.Error("Create: failed to get resource type id=%d: %v", req.TypeID, err)
		return nil, wrapStorage("failed to get resource type", err)
	}
	if resourceType.BuildingID != req.BuildingID {
		s.logger.Warn("Create: type id=%d belongs to building=%d, not building=%d",
			req.TypeID, resourceType.BuildingID, req.BuildingID)
		return nil, fmt.Errorf("%w: resource type belongs to another building", ErrInvalidInput)
	}

	// 4. Создаем ресурс
	created, err := s.resourceRepo.Create(ctx, req.ToDomainResource())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, wrapStorage("Create - repository error", err)
	}

	s.logger.Info("Create: successfully created resource id=%d", created.ID)
	return models.FromDomainResource(created), nil
}

// GetByID получает ресурс по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ResourceResponse, error) {
	s.logger.Info("GetByID: fetching resource id=%d", id)

	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("GetByID: resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetByID: repository error for resource id=%d: %v", id, err)
		return nil, wrapStorage("GetByID - repository error", err)
	}

	return models.FromDomainResource(resource), nil
}

// GetByBuilding получает ресурсы здания
// Публичный метод - доступен всем; activeOnly скрывает деактивированные ресурсы
func (s *Service) GetByBuilding(ctx context.Context, buildingID int64, activeOnly bool) (*models.ResourceListResponse, error) {
	s.logger.Info("GetByBuilding: fetching resources for building=%d, activeOnly=%v", buildingID, activeOnly)

	resources, err := s.resourceRepo.GetByBuilding(ctx, buildingID, activeOnly)
	if err != nil {
		s.logger.Error("GetByBuilding: repository error for building=%d: %v", buildingID, err)
		return nil, wrapStorage("GetByBuilding - repository error", err)
	}

	s.logger.Info("GetByBuilding: successfully fetched %d resources for building=%d", len(resources), buildingID)
	return models.FromDomainResourceList(resources), nil
}

// GetAvailability получает окна доступности ресурса
// Публичный метод - доступен всем
func (s *Service) GetAvailability(ctx context.Context, resourceID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: fetching windows for resource=%d", resourceID)

	// Проверяем существование ресурса
	if _, err := s.resourceRepo.GetByID(ctx, resourceID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("GetAvailability: resource id=%d not found", resourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetAvailability: repository error for resource id=%d: %v", resourceID, err)
		return nil, wrapStorage("GetAvailability - repository error", err)
	}

	windows, err := s.availabilityRepo.GetWindowsByResource(ctx, resourceID)
	if err != nil {
		s.logger.Error("GetAvailability: repository error for resource id=%d: %v", resourceID, err)
		return nil, wrapStorage("GetAvailability - repository error", err)
	}

	return models.FromDomainWindows(resourceID, windows), nil
}

// SetActive активирует или деактивирует ресурс
// Доступно только менеджерам здания
// Деактивация не трогает существующие бронирования, но скрывает слоты
// и блокирует новые бронирования
func (s *Service) SetActive(ctx context.Context, resourceID int64, req *models.SetActiveRequest) error {
	s.logger.Info("SetActive: setting resource id=%d active=%v by user=%d",
		resourceID, req.IsActive, req.UserID)

	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("SetActive: resource id=%d not found", resourceID)
			return ErrResourceNotFound
		}
		s.logger.Error("SetActive: repository error for resource id=%d: %v", resourceID, err)
		return wrapStorage("SetActive - repository error", err)
	}

	if err := s.checkManagerAccess(ctx, resource.BuildingID, req.UserID); err != nil {
		return err
	}

	if err := s.resourceRepo.SetActive(ctx, resourceID, req.IsActive); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		s.logger.Error("SetActive: repository error for resource id=%d: %v", resourceID, err)
		return wrapStorage("SetActive - repository error", err)
	}

	s.logger.Info("SetActive: successfully set resource id=%d active=%v", resourceID, req.IsActive)
	return nil
}

// CreateType создает новый тип ресурса
// Доступно только менеджерам здания
func (s *Service) CreateType(ctx context.Context, req *models.CreateTypeRequest) (*models.ResourceTypeResponse, error) {
	s.logger.Info("CreateType: creating type %q for building=%d by user=%d",
		req.Name, req.BuildingID, req.UserID)

	if strings.TrimSpace(req.Name) == "" {
		s.logger.Warn("CreateType: empty type name for building=%d", req.BuildingID)
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if err := s.checkManagerAccess(ctx, req.BuildingID, req.UserID); err != nil {
		return nil, err
	}

	created, err := s.resourceRepo.CreateType(ctx, models.ToDomainResourceType(req))
	if err != nil {
		s.logger.Error("CreateType: repository error: %v", err)
		return nil, wrapStorage("CreateType - repository error", err)
	}

	s.logger.Info("CreateType: successfully created type id=%d", created.ID)
	return models.FromDomainResourceType(created), nil
}

// GetTypesByBuilding получает типы ресурсов здания
// Публичный метод - доступен всем
func (s *Service) GetTypesByBuilding(ctx context.Context, buildingID int64) (*models.ResourceTypeListResponse, error) {
	s.logger.Info("GetTypesByBuilding: fetching types for building=%d", buildingID)

	types, err := s.resourceRepo.GetTypesByBuilding(ctx, buildingID)
	if err != nil {
		s.logger.Error("GetTypesByBuilding: repository error for building=%d: %v", buildingID, err)
		return nil, wrapStorage("GetTypesByBuilding - repository error", err)
	}

	return models.FromDomainResourceTypeList(types), nil
}

// Вспомогательные методы

// validateCreateRequest валидирует запрос на создание ресурса
func (s *Service) validateCreateRequest(req *models.CreateResourceRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.BuildingID <= 0 {
		return fmt.Errorf("%w: buildingId must be positive", ErrInvalidInput)
	}
	if req.TypeID <= 0 {
		return fmt.Errorf("%w: typeId must be positive", ErrInvalidInput)
	}
	if req.TotalCapacity != nil && *req.TotalCapacity < 1 {
		return fmt.Errorf("%w: totalCapacity must be positive when set", ErrInvalidInput)
	}
	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером здания
func (s *Service) checkManagerAccess(ctx context.Context, buildingID int64, userID int64) error {
	user, err := s.identityClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			s.logger.Warn("checkManagerAccess: user id=%d not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsManagerOf(buildingID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of building=%d", userID, buildingID)
		return ErrAccessDenied
	}

	return nil
}
