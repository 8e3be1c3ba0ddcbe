package resolve_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	"github.com/m04kA/SMC-RoomAvailability/pkg/requestid"
)

// defaultOverridesTimeout ограничение на загрузку таблицы ручной вместимости
const defaultOverridesTimeout = 2 * time.Second

// UseCase подбор типов номеров, свободных на весь период и вмещающих группу
type UseCase struct {
	tokens     TokenProvider
	client     AvailabilityClient
	classifier CapacityClassifier
	overrides  CapacityOverrides
	metrics    Metrics
	logger     Logger

	overridesTimeout time.Duration
}

// NewUseCase создает новый экземпляр use case. overrides может быть nil
func NewUseCase(
	tokens TokenProvider,
	client AvailabilityClient,
	classifier CapacityClassifier,
	overrides CapacityOverrides,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		tokens:     tokens,
		client:     client,
		classifier: classifier,
		overrides:  overrides,
		metrics:    metrics,
		logger:     logger,

		overridesTimeout: defaultOverridesTimeout,
	}
}

// Execute выполняет подбор. Ошибки PMS возвращаются без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	bedsNeeded := req.Guests.BedsNeeded()
	reqID := requestid.FromContext(ctx)

	uc.logger.Info("ResolveAvailability: request_id=%s, check_in=%s, check_out=%s, beds_needed=%d",
		reqID, req.Stay.CheckIn.Format(domain.DateFormat), req.Stay.CheckOut.Format(domain.DateFormat), bedsNeeded)

	// 1. Токен PMS
	token, err := uc.tokens.GetToken(ctx)
	if err != nil {
		uc.logger.Error("ResolveAvailability: request_id=%s, failed to get PMS token: %v", reqID, err)
		return nil, err
	}

	// 2. Отчет о доступности за период
	report, err := uc.client.FetchAvailability(ctx, token.Value, req.Stay.CheckIn, req.Stay.CheckOut)
	if err != nil {
		uc.logger.Error("ResolveAvailability: request_id=%s, failed to fetch availability: %v", reqID, err)
		return nil, err
	}

	// 3. Перевод в доменную модель, битые записи пропускаются
	roomTypes, issues := toRoomTypes(report)
	for _, issue := range issues {
		uc.logger.Warn("ResolveAvailability: request_id=%s, skipped daily record room_code=%s, index=%d: %s",
			reqID, issue.RoomCode, issue.Index, issue.Reason)
	}

	// 4. Ручная вместимость, один раз на запрос
	overrides := uc.loadOverrides(ctx, reqID)

	resp := &Response{
		Stay:        req.Stay,
		Guests:      req.Guests,
		BedsNeeded:  bedsNeeded,
		Adequate:    make([]AdequateRoom, 0),
		Inadequate:  make([]InadequateRoom, 0),
		Diagnostics: issues,
	}

	// 5. Доступность на период и вместимость
	for _, roomType := range roomTypes {
		verdict := evaluatePeriod(roomType, req.Stay)
		if !verdict.FullyAvailable {
			resp.Inadequate = append(resp.Inadequate, InadequateRoom{
				Name:         roomType.Name,
				Code:         roomType.Code,
				Reason:       verdict.Reason(),
				BlockingDate: verdict.BlockingDate,
			})
			continue
		}

		capacity, source := uc.capacityOf(overrides, roomType)
		if capacity < bedsNeeded {
			resp.Inadequate = append(resp.Inadequate, InadequateRoom{
				Name:   roomType.Name,
				Code:   roomType.Code,
				Reason: domain.ReasonCapacityTooLow,
			})
			continue
		}

		resp.Adequate = append(resp.Adequate, AdequateRoom{
			Name:           roomType.Name,
			Code:           roomType.Code,
			Capacity:       capacity,
			CapacitySource: source,
		})
	}

	if uc.metrics != nil {
		uc.metrics.ObserveResolution(len(resp.Adequate), len(resp.Inadequate))
	}

	uc.logger.Info("ResolveAvailability: request_id=%s, room_types=%d, adequate=%d, inadequate=%d, skipped_records=%d",
		reqID, len(roomTypes), len(resp.Adequate), len(resp.Inadequate), len(issues))

	return resp, nil
}

// loadOverrides загружает таблицу ручной вместимости с ограничением по времени.
// Недоступность таблицы не ломает подбор: возвращается nil и используется эвристика
func (uc *UseCase) loadOverrides(ctx context.Context, reqID string) domain.CapacityOverrides {
	if uc.overrides == nil {
		return nil
	}

	loadCtx, cancel := context.WithTimeout(ctx, uc.overridesTimeout)
	defer cancel()

	overrides, err := uc.overrides.Snapshot(loadCtx)
	if err != nil {
		uc.logger.Warn("ResolveAvailability: request_id=%s, capacity overrides unavailable, using heuristic: %v", reqID, err)
		return nil
	}

	return overrides
}

// capacityOf возвращает ручную вместимость, если она задана, иначе эвристику
func (uc *UseCase) capacityOf(overrides domain.CapacityOverrides, roomType domain.RoomType) (int, string) {
	if roomType.Code != "" {
		if capacity, ok := overrides.Capacity(roomType.Code); ok {
			return capacity, domain.CapacitySourceOverride
		}
	}

	return uc.classifier.Classify(roomType.Code, roomType.Name), domain.CapacitySourceHeuristic
}
