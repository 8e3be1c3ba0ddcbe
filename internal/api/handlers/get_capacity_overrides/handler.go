package get_capacity_overrides

import (
	"net/http"

	"github.com/m04kA/SMC-RoomAvailability/internal/api/handlers"
)

type Handler struct {
	service OverrideService
	logger  Logger
}

func NewHandler(service OverrideService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/capacity-overrides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /capacity-overrides - Failed to list overrides: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /capacity-overrides - Overrides retrieved: count=%d", len(overrides))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(overrides))
}
