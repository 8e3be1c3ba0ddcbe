package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	"github.com/m04kA/SMC-RoomAvailability/internal/integrations/pms"
	"github.com/m04kA/SMC-RoomAvailability/internal/testfixtures"
)

type countingFetcher struct {
	calls  int
	report *pms.AvailabilityReport
	err    error
}

func (f *countingFetcher) FetchAvailability(ctx context.Context, token string, checkIn, checkOut time.Time) (*pms.AvailabilityReport, error) {
	f.calls++
	return f.report, f.err
}

var (
	checkIn  = time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	checkOut = time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC)
)

func sampleReport() *pms.AvailabilityReport {
	return &pms.AvailabilityReport{
		RoomTypes: []pms.RoomTypeAvailability{
			{
				Code: "T3",
				Name: "Triplo",
				Days: []pms.DayAvailability{{Date: "2025-07-15", Available: 2}},
			},
		},
	}
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCachedClient_HitAfterMiss(t *testing.T) {
	mr, rdb := newRedis(t)
	next := &countingFetcher{report: sampleReport()}
	c := NewCachedClient(next, rdb, 30*time.Second, "pms:availability", nil, testfixtures.NewLogger())

	first, err := c.FetchAvailability(context.Background(), "tok", checkIn, checkOut)
	require.NoError(t, err)

	second, err := c.FetchAvailability(context.Background(), "other-tok", checkIn, checkOut)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("pms:availability:2025-07-15:2025-07-18"))
	assert.Equal(t, 30*time.Second, mr.TTL("pms:availability:2025-07-15:2025-07-18"))

	mr.FastForward(31 * time.Second)
	_, err = c.FetchAvailability(context.Background(), "tok", checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedClient_ErrorsAreNotCached(t *testing.T) {
	mr, rdb := newRedis(t)
	next := &countingFetcher{err: domain.ErrUpstreamQuery}
	c := NewCachedClient(next, rdb, time.Minute, "pms", nil, testfixtures.NewLogger())

	_, err := c.FetchAvailability(context.Background(), "tok", checkIn, checkOut)
	assert.ErrorIs(t, err, domain.ErrUpstreamQuery)
	assert.Empty(t, mr.Keys())
}

func TestCachedClient_RedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := testfixtures.NewLogger()
	next := &countingFetcher{report: sampleReport()}
	c := NewCachedClient(next, rdb, time.Minute, "pms", nil, logger)

	report, err := c.FetchAvailability(context.Background(), "tok", checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, sampleReport(), report)
	assert.True(t, logger.Contains("WARN", "AvailabilityCache"))
}

func TestCachedClient_CorruptedEntry(t *testing.T) {
	mr, rdb := newRedis(t)
	require.NoError(t, mr.Set("pms:2025-07-15:2025-07-18", "{not json"))

	next := &countingFetcher{report: sampleReport()}
	c := NewCachedClient(next, rdb, time.Minute, "pms", nil, testfixtures.NewLogger())

	_, err := c.FetchAvailability(context.Background(), "tok", checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)

	_, err = c.FetchAvailability(context.Background(), "tok", checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
}

func TestCachedClient_UpstreamErrorPassThrough(t *testing.T) {
	_, rdb := newRedis(t)
	upstreamErr := errors.New("boom")
	c := NewCachedClient(&countingFetcher{err: upstreamErr}, rdb, time.Minute, "pms", nil, testfixtures.NewLogger())

	_, err := c.FetchAvailability(context.Background(), "tok", checkIn, checkOut)
	assert.Equal(t, upstreamErr, err)
}
