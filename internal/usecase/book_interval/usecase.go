package book_interval

import (
	"context"
	"errors"

	"github.com/shoemant/strata-web/internal/domain"
	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
	"github.com/shoemant/strata-web/pkg/txmanager"
)

// UseCase use case для бронирования произвольного интервала
type UseCase struct {
	resourceRepo     ResourceRepository
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo:     resourceRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case бронирования интервала
// Free-form ресурс эксклюзивен: два подтверждённых интервала не могут
// пересекаться. Полуоткрытые интервалы [start,end): касание границ
// конфликтом не считается. Проверка и вставка идут в сериализуемой
// транзакции; при конфликте сериализации один повтор
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookInterval: user=%d, resource=%d, start=%s, end=%s",
		req.UserID, req.ResourceID, req.StartAt.Format(timeLayout), req.EndAt.Format(timeLayout))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("BookInterval: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресурс
	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("BookInterval: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("BookInterval: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, wrapStorage("failed to get resource", err)
	}

	// 3. Ресурс должен быть активен и работать по интервалам
	if !resource.IsActive {
		uc.logger.Warn("BookInterval: resource id=%d is inactive", req.ResourceID)
		return nil, ErrResourceInactive
	}
	if !resource.IsFreeForm() {
		uc.logger.Warn("BookInterval: resource id=%d is slot-based", req.ResourceID)
		return nil, ErrWrongMode
	}

	// 4. Интервал должен лежать внутри окна доступности
	windows, err := uc.availabilityRepo.GetWindowsByResource(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("BookInterval: failed to get windows for resource id=%d: %v", req.ResourceID, err)
		return nil, wrapStorage("failed to get availability windows", err)
	}
	if !coveredByWindows(windows, req.StartAt, req.EndAt) {
		uc.logger.Warn("BookInterval: interval is outside availability of resource id=%d", req.ResourceID)
		return nil, ErrOutsideAvailability
	}

	// 5. Получаем тип ресурса для денормализации (не критично при ошибке)
	var typeName *string
	if resourceType, err := uc.resourceRepo.GetTypeByID(ctx, resource.TypeID); err != nil {
		uc.logger.Warn("BookInterval: failed to get resource type id=%d: %v", resource.TypeID, err)
	} else {
		typeName = &resourceType.Name
	}

	// 6. Проверка пересечений и вставка; один повтор при конфликте сериализации
	result, existed, err := uc.admit(ctx, req, resource, typeName)
	if err != nil && txmanager.IsSerializationFailure(err) {
		uc.logger.Warn("BookInterval: serialization failure, retrying once")
		result, existed, err = uc.admit(ctx, req, resource, typeName)
	}
	if err != nil {
		// Повторный проигрыш сериализации трактуем как конфликт интервала
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("BookInterval: serialization failure after retry, rejecting")
			return nil, ErrIntervalConflict
		}
		return nil, err
	}

	if existed {
		uc.logger.Info("BookInterval: user=%d already holds booking id=%d for this interval",
			req.UserID, result.ID)
	} else {
		uc.logger.Info("BookInterval: successfully created booking id=%d", result.ID)
	}

	return &Response{
		ID:               result.ID,
		UserID:           result.UserID,
		ResourceID:       result.ResourceID,
		StartAt:          *result.StartAt,
		EndAt:            *result.EndAt,
		DurationMinutes:  result.DurationMinutes,
		Status:           string(result.Status),
		ResourceName:     result.ResourceName,
		ResourceLocation: result.ResourceLocation,
		ResourceTypeName: result.ResourceTypeName,
		AlreadyExisted:   existed,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

const timeLayout = "2006-01-02 15:04"

// admit выполняет проверку пересечений и вставку в одной сериализуемой
// транзакции. Возвращает existed=true, когда у пользователя уже есть
// подтверждённое бронирование ровно этого интервала
func (uc *UseCase) admit(
	ctx context.Context,
	req *Request,
	resource *domain.Resource,
	typeName *string,
) (*domain.Booking, bool, error) {
	var result *domain.Booking
	var existed bool

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Подтверждённые бронирования, касающиеся интервала, с блокировкой (FOR UPDATE)
		holders, err := uc.bookingRepo.GetConfirmedByResourceAndRange(txCtx, req.ResourceID, req.StartAt, req.EndAt)
		if err != nil {
			uc.logger.Error("BookInterval: failed to get overlapping bookings: %v", err)
			return wrapStorage("failed to get overlapping bookings", err)
		}

		for _, holder := range holders {
			// Повторный запрос того же пользователя с теми же границами
			// не создаёт дубликат
			if holder.UserID == req.UserID &&
				holder.StartAt != nil && holder.StartAt.Equal(req.StartAt) &&
				holder.EndAt != nil && holder.EndAt.Equal(req.EndAt) {
				result = holder
				existed = true
				return nil
			}

			if holder.OverlapsInterval(req.StartAt, req.EndAt) {
				uc.logger.Warn("BookInterval: conflict with booking id=%d", holder.ID)
				return ErrIntervalConflict
			}
		}

		booking := &domain.Booking{
			UserID:          req.UserID,
			ResourceID:      req.ResourceID,
			Mode:            domain.ModeInterval,
			StartAt:         &req.StartAt,
			EndAt:           &req.EndAt,
			DurationMinutes: int(req.EndAt.Sub(req.StartAt).Minutes()),
			Status:          domain.StatusConfirmed,
			// Денормализация данных ресурса
			ResourceName:     resource.Name,
			ResourceLocation: resource.LocationDescription,
			ResourceTypeName: typeName,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("BookInterval: failed to create booking: %v", err)
			return wrapStorage("failed to create booking", err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return result, existed, nil
}
