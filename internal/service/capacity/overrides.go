package capacity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	capacityRepo "github.com/m04kA/SMC-RoomAvailability/internal/infra/storage/capacity"
)

const (
	overridesCacheKey = "all"

	// failureBackoff сколько помнить ошибку загрузки таблицы
	failureBackoff = 5 * time.Second
)

// OverrideService управляет ручной вместимостью типов номеров.
// Таблица небольшая, поэтому целиком кэшируется в памяти на cacheTTL.
type OverrideService struct {
	repo     OverrideRepository
	cache    *ccache.Cache[domain.CapacityOverrides]
	cacheTTL time.Duration
	logger   Logger
	now      func() time.Time

	mu      sync.Mutex
	lastErr error
	retryAt time.Time
}

// NewOverrideService создает сервис переопределений
func NewOverrideService(repo OverrideRepository, cacheTTL time.Duration, logger Logger) *OverrideService {
	return &OverrideService{
		repo:     repo,
		cache:    ccache.New(ccache.Configure[domain.CapacityOverrides]().MaxSize(16)),
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Snapshot возвращает всю таблицу переопределений.
// После ошибки загрузки в течение failureBackoff сразу возвращается та же ошибка
func (s *OverrideService) Snapshot(ctx context.Context) (domain.CapacityOverrides, error) {
	if err := s.recentFailure(); err != nil {
		return nil, err
	}

	item, err := s.cache.Fetch(overridesCacheKey, s.cacheTTL, func() (domain.CapacityOverrides, error) {
		return s.loadAll(ctx)
	})
	if err != nil {
		s.rememberFailure(err)
		return nil, err
	}

	return item.Value(), nil
}

// List возвращает все переопределения, отсортированные по коду
func (s *OverrideService) List(ctx context.Context) ([]*domain.CapacityOverride, error) {
	overrides, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	sort.Slice(overrides, func(i, j int) bool {
		return overrides[i].RoomCode < overrides[j].RoomCode
	})

	return overrides, nil
}

// Upsert создает или обновляет переопределение
func (s *OverrideService) Upsert(ctx context.Context, roomCode string, capacity int) (*domain.CapacityOverride, error) {
	code := domain.NormalizeRoomCode(roomCode)
	if code == "" {
		return nil, fmt.Errorf("%w: room code is required", ErrInvalidInput)
	}
	if capacity < domain.MinCapacity || capacity > domain.MaxCapacityOverride {
		return nil, fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinCapacity, domain.MaxCapacityOverride)
	}

	saved, err := s.repo.Upsert(ctx, &domain.CapacityOverride{RoomCode: code, Capacity: capacity})
	if err != nil {
		s.logger.Error("Upsert: repository error for room_code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.invalidate()
	s.logger.Info("Upsert: capacity override saved: room_code=%s, capacity=%d", code, capacity)

	return saved, nil
}

// Delete удаляет переопределение
func (s *OverrideService) Delete(ctx context.Context, roomCode string) error {
	code := domain.NormalizeRoomCode(roomCode)
	if code == "" {
		return fmt.Errorf("%w: room code is required", ErrInvalidInput)
	}

	if err := s.repo.Delete(ctx, code); err != nil {
		if errors.Is(err, capacityRepo.ErrOverrideNotFound) {
			return ErrOverrideNotFound
		}
		s.logger.Error("Delete: repository error for room_code=%s: %v", code, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidate()
	s.logger.Info("Delete: capacity override removed: room_code=%s", code)

	return nil
}

// Close останавливает фоновые горутины кэша
func (s *OverrideService) Close() {
	s.cache.Stop()
}

func (s *OverrideService) loadAll(ctx context.Context) (domain.CapacityOverrides, error) {
	overrides, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load overrides: %v", ErrInternal, err)
	}

	byCode := make(domain.CapacityOverrides, len(overrides))
	for _, o := range overrides {
		byCode[domain.NormalizeRoomCode(o.RoomCode)] = o.Capacity
	}

	return byCode, nil
}

func (s *OverrideService) recentFailure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastErr != nil && s.now().Before(s.retryAt) {
		return s.lastErr
	}
	return nil
}

func (s *OverrideService) rememberFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = err
	s.retryAt = s.now().Add(failureBackoff)
}

// invalidate сбрасывает кэш и запомненную ошибку после записи
func (s *OverrideService) invalidate() {
	s.cache.Delete(overridesCacheKey)

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}
