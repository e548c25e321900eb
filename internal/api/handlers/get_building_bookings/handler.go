package get_building_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shoemant/strata-web/internal/api/handlers"
	"github.com/shoemant/strata-web/internal/api/middleware"
	"github.com/shoemant/strata-web/internal/service/bookings"
)

const (
	msgInvalidBuildingID = "некорректный ID здания"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidParams     = "некорректные параметры запроса"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/buildings/{buildingId}/bookings
// Query params: resourceId, from, to, includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем buildingId из URL
	vars := mux.Vars(r)
	buildingIDStr := vars["buildingId"]

	buildingID, err := strconv.ParseInt(buildingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/bookings - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /buildings/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		buildingID,
		userID,
		query.Get("resourceId"),
		query.Get("from"),
		query.Get("to"),
		query.Get("includeCancelled"),
	)
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования здания (сервис сам проверит права менеджера)
	result, err := h.service.GetBuildingBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied), errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /buildings/{id}/bookings - Access denied: building_id=%d, user_id=%d",
				buildingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrStorageUnavailable):
			h.logger.Error("GET /buildings/{id}/bookings - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /buildings/{id}/bookings - Failed to get bookings: building_id=%d, error=%v",
				buildingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /buildings/{id}/bookings - Bookings retrieved successfully: building_id=%d, count=%d",
		buildingID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
