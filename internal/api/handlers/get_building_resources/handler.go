package get_building_resources

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
	msgInvalidParams     = "некорректные параметры запроса"
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

// Handle GET /api/v1/buildings/{buildingId}/resources?activeOnly=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем buildingId из URL
	vars := mux.Vars(r)
	buildingIDStr := vars["buildingId"]

	buildingID, err := strconv.ParseInt(buildingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/resources - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	// Жильцам по умолчанию показываются только активные ресурсы
	activeOnly := true
	if activeOnlyStr := r.URL.Query().Get("activeOnly"); activeOnlyStr != "" {
		activeOnly, err = strconv.ParseBool(activeOnlyStr)
		if err != nil {
			h.logger.Warn("GET /buildings/{id}/resources - Invalid activeOnly parameter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	result, err := h.service.GetByBuilding(r.Context(), buildingID, activeOnly)
	if err != nil {
		if errors.Is(err, resources.ErrStorageUnavailable) {
			h.logger.Error("GET /buildings/{id}/resources - Storage unavailable: building_id=%d, error=%v",
				buildingID, err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /buildings/{id}/resources - Failed to get resources: building_id=%d, error=%v",
			buildingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /buildings/{id}/resources - Resources retrieved successfully: building_id=%d, count=%d",
		buildingID, len(result.Resources))
	handlers.RespondJSON(w, http.StatusOK, result.Resources)
}
