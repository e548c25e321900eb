package update_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoemant/strata-web/internal/domain"
	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
	identityClient "github.com/shoemant/strata-web/internal/integrations/identityservice"
)

// UseCase use case замены окон доступности ресурса с перегенерацией слотов
type UseCase struct {
	resourceRepo     ResourceRepository
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	identityClient   IdentityClient
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	identityClient IdentityClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo:     resourceRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		identityClient:   identityClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет замену окон доступности
// Слоты перегенерируются целиком (regeneration, не incremental patch) и
// публикуются атомарно в одной транзакции; бронирования исчезнувших слотов
// помечаются как осиротевшие, но не удаляются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAvailability: user=%d, resource=%d, windows=%d",
		req.UserID, req.ResourceID, len(req.Windows))

	// 1. Валидация входных данных (некорректные окна не доходят до БД)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресурс
	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("UpdateAvailability: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("UpdateAvailability: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, wrapStorage("failed to get resource", err)
	}

	// 3. Проверяем, что пользователь - менеджер здания ресурса
	user, err := uc.identityClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			uc.logger.Warn("UpdateAvailability: user id=%d not found", req.UserID)
			return nil, ErrAccessDenied
		}
		uc.logger.Error("UpdateAvailability: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if !user.IsManagerOf(resource.BuildingID) {
		uc.logger.Warn("UpdateAvailability: user=%d is not a manager of building=%d",
			req.UserID, resource.BuildingID)
		return nil, ErrAccessDenied
	}

	// 4. Материализуем слоты (чистая функция, побочных эффектов нет)
	slots, err := materializeSlots(resource, req.Windows)
	if err != nil {
		uc.logger.Error("UpdateAvailability: materialization failed: %v", err)
		return nil, fmt.Errorf("%w: materialization failed: %v", ErrInternal, err)
	}

	warnings := configWarnings(req.Windows)
	for _, w := range warnings {
		uc.logger.Warn("UpdateAvailability: resource=%d: %s", req.ResourceID, w)
	}

	windows := make([]*domain.AvailabilityWindow, len(req.Windows))
	for i, w := range req.Windows {
		windows[i] = &domain.AvailabilityWindow{
			ResourceID:      req.ResourceID,
			Weekday:         w.Weekday,
			StartTime:       w.StartTime,
			EndTime:         w.EndTime,
			IntervalMinutes: w.IntervalMinutes,
		}
	}

	// 5. Публикуем новый набор атомарно и переcчитываем осиротевшие
	// бронирования в той же транзакции
	var orphaned int64
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.availabilityRepo.ReplaceForResource(txCtx, req.ResourceID, windows, slots); err != nil {
			return wrapStorage("failed to replace availability", err)
		}

		orphaned, err = uc.bookingRepo.RecomputeOrphans(txCtx, req.ResourceID)
		if err != nil {
			return wrapStorage("failed to recompute orphans", err)
		}

		return nil
	})

	if err != nil {
		uc.logger.Error("UpdateAvailability: transaction failed for resource=%d: %v", req.ResourceID, err)
		return nil, err
	}

	if orphaned > 0 {
		uc.logger.Warn("UpdateAvailability: resource=%d has %d orphaned bookings after regeneration",
			req.ResourceID, orphaned)
	}

	uc.logger.Info("UpdateAvailability: resource=%d published %d windows, %d slots",
		req.ResourceID, len(windows), len(slots))

	return &Response{
		ResourceID:    req.ResourceID,
		WindowCount:   len(windows),
		SlotCount:     len(slots),
		OrphanedCount: orphaned,
		Warnings:      warnings,
	}, nil
}
