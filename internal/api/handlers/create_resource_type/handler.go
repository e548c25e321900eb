package create_resource_type

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
	msgInvalidBuildingID  = "некорректный ID здания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

// CreateTypeRequest HTTP request model
type CreateTypeRequest struct {
	Name string `json:"name"`
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

// Handle POST /api/v1/buildings/{buildingId}/resource-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем buildingId из URL
	vars := mux.Vars(r)
	buildingIDStr := vars["buildingId"]

	buildingID, err := strconv.ParseInt(buildingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /buildings/{id}/resource-types - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /buildings/{id}/resource-types - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /buildings/{id}/resource-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.CreateTypeRequest{
		UserID:     userID,
		BuildingID: buildingID,
		Name:       req.Name,
	}

	// Создаем тип ресурса (сервис сам проверит права менеджера)
	result, err := h.service.CreateType(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrAccessDenied), errors.Is(err, resources.ErrUserNotFound):
			h.logger.Warn("POST /buildings/{id}/resource-types - Access denied: building_id=%d, user_id=%d",
				buildingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("POST /buildings/{id}/resource-types - Invalid input: building_id=%d", buildingID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, resources.ErrStorageUnavailable):
			h.logger.Error("POST /buildings/{id}/resource-types - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /buildings/{id}/resource-types - Failed to create type: building_id=%d, error=%v",
				buildingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /buildings/{id}/resource-types - Type created successfully: type_id=%d, building_id=%d",
		result.ID, buildingID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
