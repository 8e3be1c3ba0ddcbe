package delete_capacity_override

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAvailability/internal/service/capacity"
)

const (
	msgNotFound    = "переопределение вместимости не найдено"
	msgInvalidCode = "некорректный код типа номера"
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

// Handle DELETE /api/v1/capacity-overrides/{roomCode}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomCode := mux.Vars(r)["roomCode"]

	if err := h.service.Delete(r.Context(), roomCode); err != nil {
		switch {
		case errors.Is(err, capacity.ErrOverrideNotFound):
			h.logger.Warn("DELETE /capacity-overrides/{code} - Override not found: room_code=%s", roomCode)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, capacity.ErrInvalidInput):
			h.logger.Warn("DELETE /capacity-overrides/{code} - Invalid room code: %q", roomCode)
			handlers.RespondBadRequest(w, msgInvalidCode)

		default:
			h.logger.Error("DELETE /capacity-overrides/{code} - Failed to delete override: room_code=%s, error=%v", roomCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /capacity-overrides/{code} - Override deleted: room_code=%s", roomCode)
	w.WriteHeader(http.StatusNoContent)
}
