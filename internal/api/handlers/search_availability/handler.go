package search_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	resolveAvailability "github.com/m04kA/SMC-RoomAvailability/internal/usecase/resolve_availability"
	"github.com/m04kA/SMC-RoomAvailability/pkg/requestid"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingField       = "не заполнены обязательные поля: data_checkin, data_checkout, adultos, criancas_ate_5, criancas_6_mais"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod      = "дата заезда должна быть раньше даты выезда"
	msgNegativeGuests     = "количество гостей не может быть отрицательным"
	msgStayTooLong        = "слишком длинный период проживания"
)

type Handler struct {
	useCase       ResolveAvailabilityUseCase
	maxStayNights int
	logger        Logger
}

// NewHandler создает обработчик. maxStayNights <= 0 снимает ограничение на длину периода
func NewHandler(useCase ResolveAvailabilityUseCase, maxStayNights int, logger Logger) *Handler {
	return &Handler{
		useCase:       useCase,
		maxStayNights: maxStayNights,
		logger:        logger,
	}
}

// Handle POST /api/v1/consulta
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reqID := requestid.FromContext(r.Context())

	var req SearchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /consulta - Invalid request body: request_id=%s, error=%v", reqID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.maxStayNights)
	if err != nil {
		h.logger.Warn("POST /consulta - Invalid request: request_id=%s, error=%v", reqID, err)
		handlers.RespondBadRequest(w, validationMessage(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, resolveAvailability.ErrUpstreamAuth), errors.Is(err, resolveAvailability.ErrUpstreamQuery):
			h.logger.Error("POST /consulta - PMS failure: request_id=%s, check_in=%s, check_out=%s, error=%v",
				reqID, req.CheckIn, req.CheckOut, err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("POST /consulta - Failed to resolve availability: request_id=%s, check_in=%s, check_out=%s, error=%v",
				reqID, req.CheckIn, req.CheckOut, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /consulta - Availability resolved: request_id=%s, check_in=%s, check_out=%s, available=%d, unavailable=%d",
		reqID, useCaseReq.Stay.CheckIn.Format(domain.DateFormat), useCaseReq.Stay.CheckOut.Format(domain.DateFormat),
		len(response.Available), len(response.Unavailable))
	handlers.RespondJSON(w, http.StatusOK, response)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, errMissingField):
		return msgMissingField
	case errors.Is(err, errInvalidDate):
		return msgInvalidDate
	case errors.Is(err, errInvalidPeriod):
		return msgInvalidPeriod
	case errors.Is(err, errNegativeGuests):
		return msgNegativeGuests
	case errors.Is(err, errStayTooLong):
		return msgStayTooLong
	default:
		return msgInvalidRequestBody
	}
}
