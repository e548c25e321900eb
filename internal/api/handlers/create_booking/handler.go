package create_booking

import (
	"errors"
	"net/http"

	"github.com/shoemant/strata-web/internal/api/handlers"
	"github.com/shoemant/strata-web/internal/api/middleware"
	"github.com/shoemant/strata-web/internal/domain"
	bookSlot "github.com/shoemant/strata-web/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgResourceNotFound   = "ресурс не найден"
	msgResourceInactive   = "ресурс недоступен для бронирования"
	msgWrongMode          = "ресурс бронируется произвольными интервалами"
	msgSlotNotFound       = "слот не найден"
	msgSlotFull           = "все места в слоте заняты"
	msgInvalidBookingDate = "некорректная дата бронирования"
)

type Handler struct {
	useCase BookSlotUseCase
	metrics AdmissionMetrics
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, metrics AdmissionMetrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.observe(outcomeFor(err))

		// Обработка ошибок use case
		switch {
		case errors.Is(err, bookSlot.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, bookSlot.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, bookSlot.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookSlot.ErrResourceInactive):
			h.logger.Warn("POST /bookings - Resource inactive: resource_id=%d", req.ResourceID)
			handlers.RespondConflict(w, msgResourceInactive)

		case errors.Is(err, bookSlot.ErrWrongMode):
			h.logger.Warn("POST /bookings - Wrong booking mode: resource_id=%d", req.ResourceID)
			handlers.RespondBadRequest(w, msgWrongMode)

		case errors.Is(err, bookSlot.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bookSlot.ErrStorageUnavailable):
			h.logger.Error("POST /bookings - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, resource_id=%d, error=%v",
				userID, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.observe("accepted")

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	// Повторный запрос того же слота отдаёт существующее бронирование
	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, resource_id=%d",
		result.ID, userID, req.ResourceID)
	handlers.RespondJSON(w, status, response)
}

func (h *Handler) observe(outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveAdmission(string(domain.ModeSlot), outcome)
	}
}

// outcomeFor классифицирует ошибку допуска для метрик
func outcomeFor(err error) string {
	switch {
	case errors.Is(err, bookSlot.ErrSlotFull):
		return "slot_full"
	case errors.Is(err, bookSlot.ErrSlotNotFound),
		errors.Is(err, bookSlot.ErrResourceNotFound):
		return "not_found"
	case errors.Is(err, bookSlot.ErrResourceInactive),
		errors.Is(err, bookSlot.ErrWrongMode),
		errors.Is(err, bookSlot.ErrInvalidDate),
		errors.Is(err, bookSlot.ErrInvalidInput):
		return "rejected"
	case errors.Is(err, bookSlot.ErrStorageUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
