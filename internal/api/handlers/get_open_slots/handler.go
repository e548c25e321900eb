package get_open_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/shoemant/strata-web/internal/api/handlers"
	"github.com/shoemant/strata-web/internal/domain"
	getOpenSlots "github.com/shoemant/strata-web/internal/usecase/get_open_slots"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate       = "отсутствует параметр date"
	msgResourceNotFound  = "ресурс не найден"
)

type Handler struct {
	useCase GetOpenSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetOpenSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем resourceId из URL
	vars := mux.Vars(r)
	resourceIDStr := vars["resourceId"]

	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	// Парсим дату из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /resources/{id}/slots - Missing date parameter: resource_id=%d", resourceID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getOpenSlots.Request{
		ResourceID: resourceID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getOpenSlots.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/slots - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getOpenSlots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/slots - Invalid input: resource_id=%d", resourceID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getOpenSlots.ErrStorageUnavailable):
			h.logger.Error("GET /resources/{id}/slots - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /resources/{id}/slots - Failed to get slots: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/slots - Slots retrieved successfully: resource_id=%d, date=%s, count=%d",
		resourceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
