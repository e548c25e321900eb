package create_interval_booking

import (
	"errors"
	"net/http"

	"github.com/shoemant/strata-web/internal/api/handlers"
	"github.com/shoemant/strata-web/internal/api/middleware"
	"github.com/shoemant/strata-web/internal/domain"
	bookInterval "github.com/shoemant/strata-web/internal/usecase/book_interval"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgResourceNotFound    = "ресурс не найден"
	msgResourceInactive    = "ресурс недоступен для бронирования"
	msgWrongMode           = "ресурс бронируется фиксированными слотами"
	msgOutsideAvailability = "интервал вне окон доступности ресурса"
	msgIntervalConflict    = "интервал пересекается с существующим бронированием"
	msgInvalidInterval     = "некорректные границы интервала"
)

type Handler struct {
	useCase BookIntervalUseCase
	metrics AdmissionMetrics
	logger  Logger
}

func NewHandler(useCase BookIntervalUseCase, metrics AdmissionMetrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/interval-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /interval-bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateIntervalBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /interval-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		h.observe(outcomeFor(err))

		// Обработка ошибок use case
		switch {
		case errors.Is(err, bookInterval.ErrIntervalConflict):
			h.logger.Warn("POST /interval-bookings - Interval conflict: user_id=%d, resource_id=%d",
				userID, req.ResourceID)
			handlers.RespondConflict(w, msgIntervalConflict)

		case errors.Is(err, bookInterval.ErrResourceNotFound):
			h.logger.Warn("POST /interval-bookings - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, bookInterval.ErrResourceInactive):
			h.logger.Warn("POST /interval-bookings - Resource inactive: resource_id=%d", req.ResourceID)
			handlers.RespondConflict(w, msgResourceInactive)

		case errors.Is(err, bookInterval.ErrWrongMode):
			h.logger.Warn("POST /interval-bookings - Wrong booking mode: resource_id=%d", req.ResourceID)
			handlers.RespondBadRequest(w, msgWrongMode)

		case errors.Is(err, bookInterval.ErrOutsideAvailability):
			h.logger.Warn("POST /interval-bookings - Outside availability: user_id=%d, resource_id=%d",
				userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, bookInterval.ErrInvalidInterval):
			h.logger.Warn("POST /interval-bookings - Invalid interval: user_id=%d, resource_id=%d",
				userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, bookInterval.ErrInvalidInput):
			h.logger.Warn("POST /interval-bookings - Invalid input: user_id=%d, resource_id=%d",
				userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bookInterval.ErrStorageUnavailable):
			h.logger.Error("POST /interval-bookings - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /interval-bookings - Failed to create booking: user_id=%d, resource_id=%d, error=%v",
				userID, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.observe("accepted")

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	// Повторный запрос того же интервала отдаёт существующее бронирование
	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}

	h.logger.Info("POST /interval-bookings - Booking created successfully: booking_id=%d, user_id=%d, resource_id=%d",
		result.ID, userID, req.ResourceID)
	handlers.RespondJSON(w, status, response)
}

func (h *Handler) observe(outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveAdmission(string(domain.ModeInterval), outcome)
	}
}

// outcomeFor классифицирует ошибку допуска для метрик
func outcomeFor(err error) string {
	switch {
	case errors.Is(err, bookInterval.ErrIntervalConflict):
		return "slot_conflict"
	case errors.Is(err, bookInterval.ErrResourceNotFound):
		return "not_found"
	case errors.Is(err, bookInterval.ErrResourceInactive),
		errors.Is(err, bookInterval.ErrWrongMode),
		errors.Is(err, bookInterval.ErrOutsideAvailability),
		errors.Is(err, bookInterval.ErrInvalidInterval),
		errors.Is(err, bookInterval.ErrInvalidInput):
		return "rejected"
	case errors.Is(err, bookInterval.ErrStorageUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
