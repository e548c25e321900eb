package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoemant/strata-web/internal/domain"
	availabilityRepo "github.com/shoemant/strata-web/internal/infra/storage/availability"
	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
	"github.com/shoemant/strata-web/pkg/txmanager"
)

// UseCase use case для бронирования фиксированного слота
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

// Execute выполняет use case бронирования слота
// Проверка вместимости и вставка выполняются в сериализуемой транзакции
// с блокировкой конкурирующих бронирований (FOR UPDATE); при конфликте
// сериализации транзакция повторяется один раз
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: user=%d, resource=%d, date=%s, time=%s",
		req.UserID, req.ResourceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("BookSlot: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем ресурс
	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("BookSlot: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("BookSlot: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, wrapStorage("failed to get resource", err)
	}

	// 4. Ресурс должен быть активен и работать по слотам
	if !resource.IsActive {
		uc.logger.Warn("BookSlot: resource id=%d is inactive", req.ResourceID)
		return nil, ErrResourceInactive
	}
	if resource.IsFreeForm() {
		uc.logger.Warn("BookSlot: resource id=%d is free-form", req.ResourceID)
		return nil, ErrWrongMode
	}

	// 5. Ищем слот по естественному ключу (ресурс, день недели, время начала)
	weekday := req.Date.Weekday()
	slot, err := uc.availabilityRepo.GetSlotByKey(ctx, req.ResourceID, weekday, req.StartTime)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
			uc.logger.Warn("BookSlot: slot resource=%d weekday=%d time=%s not found",
				req.ResourceID, weekday, req.StartTime)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("BookSlot: failed to get slot: %v", err)
		return nil, wrapStorage("failed to get slot", err)
	}

	// 6. Получаем тип ресурса для денормализации (не критично при ошибке)
	var typeName *string
	if resourceType, err := uc.resourceRepo.GetTypeByID(ctx, resource.TypeID); err != nil {
		uc.logger.Warn("BookSlot: failed to get resource type id=%d: %v", resource.TypeID, err)
	} else {
		typeName = &resourceType.Name
	}

	// 7. Проверка вместимости и вставка; один повтор при конфликте сериализации
	result, existed, err := uc.admit(ctx, req, resource, slot, typeName)
	if err != nil && txmanager.IsSerializationFailure(err) {
		uc.logger.Warn("BookSlot: serialization failure, retrying once")
		result, existed, err = uc.admit(ctx, req, resource, slot, typeName)
	}
	if err != nil {
		// Повторный проигрыш сериализации трактуем как занятый слот
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("BookSlot: serialization failure after retry, rejecting")
			return nil, ErrSlotFull
		}
		return nil, err
	}

	if existed {
		uc.logger.Info("BookSlot: user=%d already holds booking id=%d for this slot",
			req.UserID, result.ID)
	} else {
		uc.logger.Info("BookSlot: successfully created booking id=%d", result.ID)
	}

	endTime, err := result.SlotEndTime()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute slot end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:               result.ID,
		UserID:           result.UserID,
		ResourceID:       result.ResourceID,
		BookingDate:      *result.BookingDate,
		StartTime:        result.SlotStartTime,
		EndTime:          endTime,
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

// admit выполняет проверку вместимости и вставку в одной сериализуемой
// транзакции. Возвращает existed=true, когда у пользователя уже есть
// подтверждённое бронирование этого слота на эту дату
func (uc *UseCase) admit(
	ctx context.Context,
	req *Request,
	resource *domain.Resource,
	slot *domain.TimeSlot,
	typeName *string,
) (*domain.Booking, bool, error) {
	var result *domain.Booking
	var existed bool

	bookingDate := dateOnly(req.Date)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Подтверждённые бронирования слота на эту дату с блокировкой (FOR UPDATE)
		holders, err := uc.bookingRepo.GetConfirmedBySlotDate(txCtx, req.ResourceID, bookingDate, slot.StartTime)
		if err != nil {
			uc.logger.Error("BookSlot: failed to get slot holders: %v", err)
			return wrapStorage("failed to get slot holders", err)
		}

		// Повторный запрос того же пользователя не создаёт дубликат
		for _, holder := range holders {
			if holder.UserID == req.UserID {
				result = holder
				existed = true
				return nil
			}
		}

		occupancy := domain.OpenSlot{Slot: *slot, BookedCount: len(holders)}
		if occupancy.IsFull() {
			uc.logger.Warn("BookSlot: slot is full, %d/%d spots taken", len(holders), slot.Capacity)
			return ErrSlotFull
		}

		uc.logger.Info("BookSlot: slot available, %d/%d spots taken", len(holders), slot.Capacity)

		duration, err := slotDurationMinutes(slot)
		if err != nil {
			return fmt.Errorf("%w: failed to compute slot duration: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			UserID:          req.UserID,
			ResourceID:      req.ResourceID,
			Mode:            domain.ModeSlot,
			BookingDate:     &bookingDate,
			SlotStartTime:   slot.StartTime,
			DurationMinutes: duration,
			Status:          domain.StatusConfirmed,
			// Денормализация данных ресурса
			ResourceName:     resource.Name,
			ResourceLocation: resource.LocationDescription,
			ResourceTypeName: typeName,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("BookSlot: failed to create booking: %v", err)
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

// slotDurationMinutes вычисляет длительность слота по его границам
func slotDurationMinutes(slot *domain.TimeSlot) (int, error) {
	start, err := slot.StartTime.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := slot.EndTime.Minutes()
	if err != nil {
		return 0, err
	}
	if end <= start {
		return 0, fmt.Errorf("slot end %s is not after start %s", slot.EndTime, slot.StartTime)
	}
	return end - start, nil
}
