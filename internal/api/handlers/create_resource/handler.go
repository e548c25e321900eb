package create_resource

import (
	"errors"
	"net/http"

	"github.com/shoemant/strata-web/internal/api/handlers"
	"github.com/shoemant/strata-web/internal/api/middleware"
	"github.com/shoemant/strata-web/internal/service/resources"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTypeNotFound       = "тип ресурса не найден"
	msgForbidden          = "доступ запрещен"
)

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

// Handle POST /api/v1/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /resources - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем ресурс (сервис сам проверит права менеджера)
	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrAccessDenied), errors.Is(err, resources.ErrUserNotFound):
			h.logger.Warn("POST /resources - Access denied: building_id=%d, user_id=%d",
				req.BuildingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, resources.ErrTypeNotFound):
			h.logger.Warn("POST /resources - Type not found: type_id=%d", req.TypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("POST /resources - Invalid input: building_id=%d, error=%v", req.BuildingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, resources.ErrStorageUnavailable):
			h.logger.Error("POST /resources - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /resources - Failed to create resource: building_id=%d, error=%v",
				req.BuildingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /resources - Resource created successfully: resource_id=%d, building_id=%d",
		result.ID, req.BuildingID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
