package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shoemant/strata-web/internal/api/handlers"
	"github.com/shoemant/strata-web/internal/api/middleware"
	updateAvailability "github.com/shoemant/strata-web/internal/usecase/update_availability"
)

const (
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgResourceNotFound   = "ресурс не найден"
	msgInvalidWindow      = "некорректное окно доступности"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase UpdateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/resources/{resourceId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем resourceId из URL
	vars := mux.Vars(r)
	resourceIDStr := vars["resourceId"]

	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /resources/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /resources/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID, resourceID)
	if err != nil {
		h.logger.Warn("PUT /resources/{id}/availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAvailability.ErrResourceNotFound):
			h.logger.Warn("PUT /resources/{id}/availability - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, updateAvailability.ErrAccessDenied):
			h.logger.Warn("PUT /resources/{id}/availability - Access denied: resource_id=%d, user_id=%d",
				resourceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateAvailability.ErrInvalidWindow):
			h.logger.Warn("PUT /resources/{id}/availability - Invalid window: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, updateAvailability.ErrInvalidInput):
			h.logger.Warn("PUT /resources/{id}/availability - Invalid input: resource_id=%d", resourceID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, updateAvailability.ErrStorageUnavailable):
			h.logger.Error("PUT /resources/{id}/availability - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /resources/{id}/availability - Failed to update availability: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /resources/{id}/availability - Availability updated: resource_id=%d, windows=%d, slots=%d, orphaned=%d",
		resourceID, result.WindowCount, result.SlotCount, result.OrphanedCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
