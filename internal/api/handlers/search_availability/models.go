package search_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	resolveAvailability "github.com/m04kA/SMC-RoomAvailability/internal/usecase/resolve_availability"
)

var (
	errMissingField   = errors.New("missing required field")
	errInvalidDate    = errors.New("invalid date")
	errInvalidPeriod  = errors.New("check-in must be before check-out")
	errNegativeGuests = errors.New("guest counts must not be negative")
	errStayTooLong    = errors.New("stay is too long")
)

// SearchRequest тело POST /api/v1/consulta.
// Количества гостей указателями, чтобы отличить отсутствие поля от нуля
type SearchRequest struct {
	CheckIn         string `json:"data_checkin"`
	CheckOut        string `json:"data_checkout"`
	Adults          *int   `json:"adultos"`
	ChildrenUnder6  *int   `json:"criancas_ate_5"`
	Children6OrOver *int   `json:"criancas_6_mais"`
}

// ToUseCaseRequest проверяет запрос и создает запрос use case
func (r *SearchRequest) ToUseCaseRequest(maxStayNights int) (*resolveAvailability.Request, error) {
	switch {
	case r.CheckIn == "":
		return nil, fmt.Errorf("%w: data_checkin", errMissingField)
	case r.CheckOut == "":
		return nil, fmt.Errorf("%w: data_checkout", errMissingField)
	case r.Adults == nil:
		return nil, fmt.Errorf("%w: adultos", errMissingField)
	case r.ChildrenUnder6 == nil:
		return nil, fmt.Errorf("%w: criancas_ate_5", errMissingField)
	case r.Children6OrOver == nil:
		return nil, fmt.Errorf("%w: criancas_6_mais", errMissingField)
	}

	stay, err := domain.ParseDateRange(r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}
	if !stay.IsValid() {
		return nil, errInvalidPeriod
	}
	if maxStayNights > 0 && stay.Nights() > maxStayNights {
		return nil, fmt.Errorf("%w: %d nights, max %d", errStayTooLong, stay.Nights(), maxStayNights)
	}

	guests := domain.GuestCount{
		Adults:          *r.Adults,
		ChildrenUnder6:  *r.ChildrenUnder6,
		Children6OrOver: *r.Children6OrOver,
	}
	if !guests.IsValid() {
		return nil, errNegativeGuests
	}

	return &resolveAvailability.Request{Stay: stay, Guests: guests}, nil
}

// SearchResponse HTTP response model
type SearchResponse struct {
	Parameters  Parameters        `json:"parametros"`
	Available   []AvailableRoom   `json:"disponiveis"`
	Unavailable []UnavailableRoom `json:"indisponiveis"`
	Summary     Summary           `json:"resumo"`
}

// Parameters эхо запроса с вычисленными значениями
type Parameters struct {
	CheckIn         string `json:"data_checkin"`
	CheckOut        string `json:"data_checkout"`
	Adults          int    `json:"adultos"`
	ChildrenUnder6  int    `json:"criancas_ate_5"`
	Children6OrOver int    `json:"criancas_6_mais"`
	BedsNeeded      int    `json:"pessoas_que_precisam_cama"`
	Nights          int    `json:"noites"`
}

type AvailableRoom struct {
	Name           string `json:"nome"`
	Code           string `json:"codigo"`
	Capacity       int    `json:"capacidade"`
	CapacitySource string `json:"origem_capacidade"`
}

type UnavailableRoom struct {
	Name         string  `json:"nome"`
	Code         string  `json:"codigo"`
	Reason       string  `json:"motivo"`
	BlockingDate *string `json:"data_bloqueio,omitempty"`
}

type Summary struct {
	TotalRoomTypes   int `json:"total_tipos"`
	TotalAvailable   int `json:"total_disponiveis"`
	TotalUnavailable int `json:"total_indisponiveis"`
	SkippedRecords   int `json:"registros_ignorados"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveAvailability.Response) *SearchResponse {
	available := make([]AvailableRoom, len(resp.Adequate))
	for i, room := range resp.Adequate {
		available[i] = AvailableRoom{
			Name:           room.Name,
			Code:           room.Code,
			Capacity:       room.Capacity,
			CapacitySource: room.CapacitySource,
		}
	}

	unavailable := make([]UnavailableRoom, len(resp.Inadequate))
	for i, room := range resp.Inadequate {
		unavailable[i] = UnavailableRoom{
			Name:   room.Name,
			Code:   room.Code,
			Reason: room.Reason,
		}
		if room.BlockingDate != nil {
			date := room.BlockingDate.Format(domain.DateFormat)
			unavailable[i].BlockingDate = &date
		}
	}

	return &SearchResponse{
		Parameters: Parameters{
			CheckIn:         resp.Stay.CheckIn.Format(domain.DateFormat),
			CheckOut:        resp.Stay.CheckOut.Format(domain.DateFormat),
			Adults:          resp.Guests.Adults,
			ChildrenUnder6:  resp.Guests.ChildrenUnder6,
			Children6OrOver: resp.Guests.Children6OrOver,
			BedsNeeded:      resp.BedsNeeded,
			Nights:          resp.Stay.Nights(),
		},
		Available:   available,
		Unavailable: unavailable,
		Summary: Summary{
			TotalRoomTypes:   resp.TotalRoomTypes(),
			TotalAvailable:   len(available),
			TotalUnavailable: len(unavailable),
			SkippedRecords:   len(resp.Diagnostics),
		},
	}
}
