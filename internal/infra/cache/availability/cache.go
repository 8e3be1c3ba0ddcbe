package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	"github.com/m04kA/SMC-RoomAvailability/internal/integrations/pms"
)

// Fetcher источник отчетов о доступности (pms.Client)
type Fetcher interface {
	FetchAvailability(ctx context.Context, token string, checkIn, checkOut time.Time) (*pms.AvailabilityReport, error)
}

// Metrics метрики обращений к кэшу
type Metrics interface {
	IncReportCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CachedClient кэширует отчеты PMS в Redis на короткое время.
// Ошибки Redis не влияют на запрос: отчет просто запрашивается у PMS.
type CachedClient struct {
	next    Fetcher
	rdb     redis.Cmdable
	ttl     time.Duration
	prefix  string
	metrics Metrics
	logger  Logger
}

// NewCachedClient создает декоратор над клиентом PMS
func NewCachedClient(next Fetcher, rdb redis.Cmdable, ttl time.Duration, prefix string, metrics Metrics, logger Logger) *CachedClient {
	return &CachedClient{
		next:    next,
		rdb:     rdb,
		ttl:     ttl,
		prefix:  prefix,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchAvailability возвращает отчет из кэша или запрашивает его у PMS.
// Токен не входит в ключ: отчет за период одинаков для любого действующего токена
func (c *CachedClient) FetchAvailability(ctx context.Context, token string, checkIn, checkOut time.Time) (*pms.AvailabilityReport, error) {
	key := c.key(checkIn, checkOut)

	if report, ok := c.get(ctx, key); ok {
		return report, nil
	}

	report, err := c.next.FetchAvailability(ctx, token, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	c.set(ctx, key, report)
	return report, nil
}

func (c *CachedClient) key(checkIn, checkOut time.Time) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, checkIn.Format(domain.DateFormat), checkOut.Format(domain.DateFormat))
}

func (c *CachedClient) get(ctx context.Context, key string) (*pms.AvailabilityReport, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.inc("miss")
			return nil, false
		}
		c.inc("error")
		c.logger.Warn("AvailabilityCache: get key=%s failed: %v", key, err)
		return nil, false
	}

	var report pms.AvailabilityReport
	if err := json.Unmarshal(data, &report); err != nil {
		c.inc("error")
		c.logger.Warn("AvailabilityCache: corrupted entry key=%s: %v", key, err)
		return nil, false
	}

	c.inc("hit")
	return &report, true
}

func (c *CachedClient) set(ctx context.Context, key string, report *pms.AvailabilityReport) {
	data, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("AvailabilityCache: marshal report key=%s failed: %v", key, err)
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("AvailabilityCache: set key=%s failed: %v", key, err)
	}
}

func (c *CachedClient) inc(result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.IncReportCache(result)
}
