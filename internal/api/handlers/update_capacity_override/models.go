package update_capacity_override

import (
	"time"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

// UpdateOverrideRequest тело PUT /api/v1/capacity-overrides/{roomCode}
type UpdateOverrideRequest struct {
	Capacity *int `json:"capacidade"`
}

// OverrideResponse HTTP модель переопределения вместимости
type OverrideResponse struct {
	RoomCode  string `json:"codigo"`
	Capacity  int    `json:"capacidade"`
	UpdatedAt string `json:"atualizado_em"`
}

func FromDomain(o *domain.CapacityOverride) *OverrideResponse {
	return &OverrideResponse{
		RoomCode:  o.RoomCode,
		Capacity:  o.Capacity,
		UpdatedAt: o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
