package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoemant/strata-web/internal/domain"
	bookingRepo "github.com/shoemant/strata-web/internal/infra/storage/booking"
	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
	identityClient "github.com/shoemant/strata-web/internal/integrations/identityservice"
	"github.com/shoemant/strata-web/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo    BookingRepository
	resourceRepo   ResourceRepository
	identityClient IdentityServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		resourceRepo:   resourceRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является менеджером здания, в котором находится ресурс
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, wrapStorage("GetByID - repository error", err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	filter := domain.UserBookingsFilter{
		UserID: req.UserID,
		Status: domainStatus,
	}

	bookings, err := s.bookingRepo.GetByUserWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, wrapStorage("GetUserBookings - repository error", err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBuildingBookings получает бронирования здания с гибкой фильтрацией
// Поддерживает фильтрацию по ресурсу, периоду и включению отменённых бронирований
// Доступно только менеджерам здания
//
// Примеры использования:
// - Все подтверждённые бронирования: GetBuildingBookings(ctx, &GetBuildingBookingsRequest{BuildingID: 123, UserID: 456})
// - Бронирования одного ресурса: указать ResourceID
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Включая отменённые: IncludeCancelled = true
func (s *Service) GetBuildingBookings(ctx context.Context, req *models.GetBuildingBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetBuildingBookings: fetching bookings for building=%d, user=%d", req.BuildingID, req.UserID)
	if req.ResourceID != nil {
		logMsg += fmt.Sprintf(", resource=%d", *req.ResourceID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.BuildingID, req.UserID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByBuildingWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetBuildingBookings: repository error for building=%d: %v", req.BuildingID, err)
		return nil, wrapStorage("GetBuildingBookings - repository error", err)
	}

	s.logger.Info("GetBuildingBookings: successfully fetched %d bookings for building=%d", len(bookings), req.BuildingID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование (cancelled_by_user)
// Менеджер здания может отменить любое бронирование его ресурсов (cancelled_by_manager)
// Отмена освобождает вместимость: отменённые бронирования не учитываются при допуске
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return wrapStorage("Cancel - repository error", err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.BookingStatus

	// Проверяем, является ли пользователь владельцем бронирования
	if booking.UserID == req.UserID {
		cancelStatus = domain.StatusCancelledByUser
	} else {
		// Проверяем, является ли пользователь менеджером здания ресурса
		buildingID, err := s.resourceBuildingID(ctx, booking.ResourceID)
		if err != nil {
			return err
		}
		if err := s.checkManagerAccess(ctx, buildingID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByManager
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		// Гонящаяся отмена успела первой, строка уже не confirmed
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			s.logger.Warn("Cancel: booking id=%d already left confirmed status", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return wrapStorage("Cancel - repository error", err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он менеджер здания
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if booking.UserID == userID {
		return nil
	}

	buildingID, err := s.resourceBuildingID(ctx, booking.ResourceID)
	if err != nil {
		return err
	}

	// Проверяем, является ли пользователь менеджером здания
	if err := s.checkManagerAccess(ctx, buildingID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
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

	s.logger.Info("checkManagerAccess: user=%d is manager of building=%d", userID, buildingID)
	return nil
}

// resourceBuildingID возвращает ID здания, в котором находится ресурс
func (s *Service) resourceBuildingID(ctx context.Context, resourceID int64) (int64, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("resourceBuildingID: resource id=%d not found", resourceID)
			return 0, ErrResourceNotFound
		}
		s.logger.Error("resourceBuildingID: repository error for resource id=%d: %v", resourceID, err)
		return 0, wrapStorage("failed to get resource", err)
	}
	return resource.BuildingID, nil
}
