package get_capacity_overrides

import (
	"time"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

// OverrideResponse HTTP модель переопределения вместимости
type OverrideResponse struct {
	RoomCode  string `json:"codigo"`
	Capacity  int    `json:"capacidade"`
	UpdatedAt string `json:"atualizado_em"`
}

// FromDomain конвертирует список переопределений в HTTP response
func FromDomain(overrides []*domain.CapacityOverride) []OverrideResponse {
	result := make([]OverrideResponse, len(overrides))
	for i, o := range overrides {
		result[i] = OverrideResponse{
			RoomCode:  o.RoomCode,
			Capacity:  o.Capacity,
			UpdatedAt: o.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}
	return result
}
