package get_building_resource_types

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shoemant/strata-web/internal/api/handlers"
	"github.com/shoemant/strata-web/internal/service/resources"
)

const (
	msgInvalidBuildingID = "некорректный ID здания"
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

// Handle GET /api/v1/buildings/{buildingId}/resource-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем buildingId из URL
	vars := mux.Vars(r)
	buildingIDStr := vars["buildingId"]

	buildingID, err := strconv.ParseInt(buildingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/resource-types - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	result, err := h.service.GetTypesByBuilding(r.Context(), buildingID)
	if err != nil {
		if errors.Is(err, resources.ErrStorageUnavailable) {
			h.logger.Error("GET /buildings/{id}/resource-types - Storage unavailable: building_id=%d, error=%v",
				buildingID, err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /buildings/{id}/resource-types - Failed to get types: building_id=%d, error=%v",
			buildingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /buildings/{id}/resource-types - Types retrieved successfully: building_id=%d, count=%d",
		buildingID, len(result.Types))
	handlers.RespondJSON(w, http.StatusOK, result.Types)
}
