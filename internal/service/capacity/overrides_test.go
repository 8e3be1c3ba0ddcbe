package capacity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	capacityRepo "github.com/m04kA/SMC-RoomAvailability/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-RoomAvailability/internal/testfixtures"
)

type memoryRepo struct {
	mu        sync.Mutex
	items     map[string]int
	getAllCnt int
	err       error
}

func newMemoryRepo(items map[string]int) *memoryRepo {
	return &memoryRepo{items: items}
}

func (r *memoryRepo) GetAll(ctx context.Context) ([]*domain.CapacityOverride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getAllCnt++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.CapacityOverride, 0, len(r.items))
	for code, c := range r.items {
		out = append(out, &domain.CapacityOverride{RoomCode: code, Capacity: c})
	}
	return out, nil
}

func (r *memoryRepo) Upsert(ctx context.Context, o *domain.CapacityOverride) (*domain.CapacityOverride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.items[o.RoomCode] = o.Capacity
	return o, nil
}

func (r *memoryRepo) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[code]; !ok {
		return capacityRepo.ErrOverrideNotFound
	}
	delete(r.items, code)
	return nil
}

func newService(t *testing.T, repo OverrideRepository) *OverrideService {
	t.Helper()
	s := NewOverrideService(repo, time.Minute, testfixtures.NewLogger())
	t.Cleanup(s.Close)
	return s
}

func TestOverrideService_SnapshotIsCached(t *testing.T) {
	repo := newMemoryRepo(map[string]int{"FAM": 4})
	s := newService(t, repo)

	overrides, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	capacity, ok := overrides.Capacity(" fam ")
	assert.True(t, ok)
	assert.Equal(t, 4, capacity)

	_, ok = overrides.Capacity("STD")
	assert.False(t, ok)

	_, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getAllCnt)
}

func TestOverrideService_UpsertInvalidatesCache(t *testing.T) {
	repo := newMemoryRepo(map[string]int{})
	s := newService(t, repo)

	overrides, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	_, ok := overrides.Capacity("T3")
	assert.False(t, ok)

	saved, err := s.Upsert(context.Background(), "t3", 6)
	require.NoError(t, err)
	assert.Equal(t, "T3", saved.RoomCode)

	overrides, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	capacity, ok := overrides.Capacity("T3")
	assert.True(t, ok)
	assert.Equal(t, 6, capacity)
	assert.Equal(t, 2, repo.getAllCnt)
}

func TestOverrideService_UpsertValidation(t *testing.T) {
	s := newService(t, newMemoryRepo(map[string]int{}))

	_, err := s.Upsert(context.Background(), "  ", 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Upsert(context.Background(), "T3", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Upsert(context.Background(), "T3", domain.MaxCapacityOverride+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOverrideService_Delete(t *testing.T) {
	repo := newMemoryRepo(map[string]int{"FAM": 4})
	s := newService(t, repo)

	overrides, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	_, ok := overrides.Capacity("FAM")
	require.True(t, ok)

	require.NoError(t, s.Delete(context.Background(), "fam"))
	assert.ErrorIs(t, s.Delete(context.Background(), "FAM"), ErrOverrideNotFound)

	overrides, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	_, ok = overrides.Capacity("FAM")
	assert.False(t, ok)
}

func TestOverrideService_RepositoryErrors(t *testing.T) {
	repo := newMemoryRepo(map[string]int{})
	repo.err = errors.New("db down")
	s := newService(t, repo)

	_, err := s.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrInternal)

	_, err = s.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)

	_, err = s.Upsert(context.Background(), "T3", 3)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestOverrideService_FailedLoadIsRemembered(t *testing.T) {
	repo := newMemoryRepo(map[string]int{"FAM": 4})
	repo.err = errors.New("db down")
	s := newService(t, repo)

	clock := testfixtures.NewClock(time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	s.now = clock.Now

	for i := 0; i < 5; i++ {
		_, err := s.Snapshot(context.Background())
		assert.ErrorIs(t, err, ErrInternal)
	}
	assert.Equal(t, 1, repo.getAllCnt)

	repo.mu.Lock()
	repo.err = nil
	repo.mu.Unlock()
	clock.Advance(failureBackoff + time.Second)

	overrides, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	capacity, ok := overrides.Capacity("FAM")
	assert.True(t, ok)
	assert.Equal(t, 4, capacity)
	assert.Equal(t, 2, repo.getAllCnt)
}

func TestOverrideService_ListSorted(t *testing.T) {
	s := newService(t, newMemoryRepo(map[string]int{"T3": 3, "FAM": 4, "Q4": 4}))

	overrides, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, overrides, 3)
	assert.Equal(t, "FAM", overrides[0].RoomCode)
	assert.Equal(t, "Q4", overrides[1].RoomCode)
	assert.Equal(t, "T3", overrides[2].RoomCode)
}
