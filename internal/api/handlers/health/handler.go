package health

import (
	"net/http"

	"github.com/m04kA/SMC-RoomAvailability/internal/api/handlers"
)

type Response struct {
	Status string `json:"status"`
}

// Handle GET /health
func Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok"})
}
