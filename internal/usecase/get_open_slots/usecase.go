package get_open_slots

import (
	"context"
	"errors"
	"time"

	"github.com/shoemant/strata-web/internal/domain"
	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
)

// UseCase use case для получения слотов ресурса с занятостью на дату
type UseCase struct {
	resourceRepo     ResourceRepository
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo:     resourceRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов
// Read-only проекция: точность на момент чтения, допуск всё равно
// перепроверяет вместимость в транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetOpenSlots: resource=%d, date=%s",
		req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetOpenSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресурс
	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("GetOpenSlots: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetOpenSlots: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, wrapStorage("failed to get resource", err)
	}

	mode := domain.ModeSlot
	if resource.IsFreeForm() {
		mode = domain.ModeInterval
	}

	// 3. Неактивный ресурс не предлагает слотов
	if !resource.IsActive {
		uc.logger.Info("GetOpenSlots: resource id=%d is inactive", req.ResourceID)
		return &Response{
			ResourceID: req.ResourceID,
			Date:       req.Date,
			Mode:       string(mode),
			Slots:      []Slot{},
		}, nil
	}

	var slots []Slot
	if resource.IsFreeForm() {
		slots, err = uc.intervalGrid(ctx, req)
	} else {
		slots, err = uc.slotGrid(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetOpenSlots: %d slots for resource=%d, date=%s",
		len(slots), req.ResourceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ResourceID: req.ResourceID,
		Date:       req.Date,
		Mode:       string(mode),
		Slots:      slots,
	}, nil
}

// slotGrid собирает материализованные слоты дня недели и занятость каждого
func (uc *UseCase) slotGrid(ctx context.Context, req *Request) ([]Slot, error) {
	weekday := req.Date.Weekday()

	timeSlots, err := uc.availabilityRepo.GetSlotsByResourceAndWeekday(ctx, req.ResourceID, weekday)
	if err != nil {
		uc.logger.Error("GetOpenSlots: failed to get slots: %v", err)
		return nil, wrapStorage("failed to get slots", err)
	}

	counts, err := uc.bookingRepo.CountConfirmedBySlotsAndDate(ctx, req.ResourceID, dateOnly(req.Date))
	if err != nil {
		uc.logger.Error("GetOpenSlots: failed to count bookings: %v", err)
		return nil, wrapStorage("failed to count bookings", err)
	}

	return projectSlots(timeSlots, counts), nil
}

// intervalGrid собирает отображаемую сетку free-form ресурса:
// окна дня недели плюс подтверждённые бронирования за сутки
func (uc *UseCase) intervalGrid(ctx context.Context, req *Request) ([]Slot, error) {
	windows, err := uc.availabilityRepo.GetWindowsByResource(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("GetOpenSlots: failed to get windows: %v", err)
		return nil, wrapStorage("failed to get windows", err)
	}

	dayStart := dateOnly(req.Date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := uc.bookingRepo.GetConfirmedByResourceAndRange(ctx, req.ResourceID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetOpenSlots: failed to get bookings: %v", err)
		return nil, wrapStorage("failed to get bookings", err)
	}

	return projectIntervalGrid(windows, bookings, req.Date), nil
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
