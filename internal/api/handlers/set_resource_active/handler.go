package set_resource_active

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shoemant/strata-web/internal/api/handlers"
	"github.com/shoemant/strata-web/internal/api/middleware"
	"github.com/shoemant/strata-web/internal/service/resources"
	"github.com/shoemant/strata-web/internal/service/resources/models"
)

const (
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgResourceNotFound   = "ресурс не найден"
	msgForbidden          = "доступ запрещен"
)

// SetActiveRequest HTTP request model
type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/resources/{resourceId}/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем resourceId из URL
	vars := mux.Vars(r)
	resourceIDStr := vars["resourceId"]

	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /resources/{id}/active - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /resources/{id}/active - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /resources/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.SetActiveRequest{
		UserID:   userID,
		IsActive: req.IsActive,
	}

	// Меняем активность ресурса (сервис сам проверит права менеджера)
	err = h.service.SetActive(r.Context(), resourceID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrResourceNotFound):
			h.logger.Warn("PATCH /resources/{id}/active - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, resources.ErrAccessDenied), errors.Is(err, resources.ErrUserNotFound):
			h.logger.Warn("PATCH /resources/{id}/active - Access denied: resource_id=%d, user_id=%d",
				resourceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, resources.ErrStorageUnavailable):
			h.logger.Error("PATCH /resources/{id}/active - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /resources/{id}/active - Failed to set active: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /resources/{id}/active - Resource active state updated: resource_id=%d, active=%v",
		resourceID, req.IsActive)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
