package update_capacity_override

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAvailability/internal/service/capacity"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCapacity    = "поле capacidade обязательно"
	msgInvalidData        = "некорректный код типа номера или вместимость"
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

// Handle PUT /api/v1/capacity-overrides/{roomCode}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomCode := mux.Vars(r)["roomCode"]

	var req UpdateOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /capacity-overrides/{code} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Capacity == nil {
		h.logger.Warn("PUT /capacity-overrides/{code} - Missing capacity: room_code=%s", roomCode)
		handlers.RespondBadRequest(w, msgMissingCapacity)
		return
	}

	override, err := h.service.Upsert(r.Context(), roomCode, *req.Capacity)
	if err != nil {
		if errors.Is(err, capacity.ErrInvalidInput) {
			h.logger.Warn("PUT /capacity-overrides/{code} - Invalid data: room_code=%s, capacity=%d, error=%v",
				roomCode, *req.Capacity, err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}

		h.logger.Error("PUT /capacity-overrides/{code} - Failed to upsert override: room_code=%s, error=%v", roomCode, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /capacity-overrides/{code} - Override saved: room_code=%s, capacity=%d",
		override.RoomCode, override.Capacity)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(override))
}
