package get_resource

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shoemant/strata-web/internal/api/handlers"
	"github.com/shoemant/strata-web/internal/service/resources"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgResourceNotFound  = "ресурс не найден"
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

// Handle GET /api/v1/resources/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	resource, err := h.service.GetByID(r.Context(), resourceID)
	if err != nil {
		h.respondError(w, "GET /resources/{id}", resourceID, err)
		return
	}

	h.logger.Info("GET /resources/{id} - Resource retrieved successfully: resource_id=%d", resourceID)
	handlers.RespondJSON(w, http.StatusOK, resource)
}

// HandleAvailability GET /api/v1/resources/{resourceId}/availability
func (h *Handler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	resourceID, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), resourceID)
	if err != nil {
		h.respondError(w, "GET /resources/{id}/availability", resourceID, err)
		return
	}

	h.logger.Info("GET /resources/{id}/availability - Windows retrieved successfully: resource_id=%d, count=%d",
		resourceID, len(availability.Windows))
	handlers.RespondJSON(w, http.StatusOK, availability)
}

func (h *Handler) resourceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id} - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return 0, false
	}
	return resourceID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, resourceID int64, err error) {
	switch {
	case errors.Is(err, resources.ErrResourceNotFound):
		h.logger.Warn("%s - Resource not found: resource_id=%d", route, resourceID)
		handlers.RespondNotFound(w, msgResourceNotFound)

	case errors.Is(err, resources.ErrStorageUnavailable):
		h.logger.Error("%s - Storage unavailable: resource_id=%d, error=%v", route, resourceID, err)
		handlers.RespondServiceUnavailable(w)

	default:
		h.logger.Error("%s - Failed to get resource: resource_id=%d, error=%v", route, resourceID, err)
		handlers.RespondInternalError(w)
	}
}
