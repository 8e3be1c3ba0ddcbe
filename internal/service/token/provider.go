package token

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

const refreshKey = "pms-token"

// Provider получает и кэширует токен PMS.
// Один экземпляр на процесс: кэш живет только в памяти и обновляется лишь после истечения.
type Provider struct {
	issuer  TokenIssuer
	clock   Clock
	metrics Metrics
	logger  Logger

	mu     sync.RWMutex
	cached *domain.AccessToken

	refresh singleflight.Group
}

// NewProvider создает провайдер токенов
func NewProvider(issuer TokenIssuer, clock Clock, metrics Metrics, logger Logger) *Provider {
	if clock == nil {
		clock = RealClock{}
	}

	return &Provider{
		issuer:  issuer,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// GetToken возвращает действующий токен, при необходимости запрашивая новый.
// Одновременные вызовы с истекшим кэшем ждут один общий запрос к PMS.
func (p *Provider) GetToken(ctx context.Context) (domain.AccessToken, error) {
	if token, ok := p.cachedToken(); ok {
		return token, nil
	}

	// Общий запрос не должен отменяться из-за отмены контекста первого вызывающего,
	// время ограничено таймаутом HTTP-клиента
	refreshCtx := context.WithoutCancel(ctx)

	result := p.refresh.DoChan(refreshKey, func() (interface{}, error) {
		if token, ok := p.cachedToken(); ok {
			return token, nil
		}
		return p.acquire(refreshCtx)
	})

	select {
	case <-ctx.Done():
		return domain.AccessToken{}, fmt.Errorf("%w: %v", domain.ErrUpstreamAuth, ctx.Err())
	case res := <-result:
		if res.Err != nil {
			return domain.AccessToken{}, res.Err
		}
		return res.Val.(domain.AccessToken), nil
	}
}

func (p *Provider) cachedToken() (domain.AccessToken, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.cached == nil || !p.cached.IsValid(p.clock.Now()) {
		return domain.AccessToken{}, false
	}
	return *p.cached, true
}

func (p *Provider) acquire(ctx context.Context) (domain.AccessToken, error) {
	resp, err := p.issuer.IssueToken(ctx)
	if err != nil {
		p.incRefresh("error")
		p.logger.Error("TokenProvider: failed to acquire PMS token: %v", err)
		if !errors.Is(err, domain.ErrUpstreamAuth) {
			return domain.AccessToken{}, fmt.Errorf("%w: %v", domain.ErrUpstreamAuth, err)
		}
		return domain.AccessToken{}, err
	}

	if resp == nil || resp.AccessToken == "" {
		p.incRefresh("error")
		p.logger.Error("TokenProvider: PMS returned an empty access token")
		return domain.AccessToken{}, fmt.Errorf("%w: empty access token", domain.ErrUpstreamAuth)
	}

	expiresIn := domain.DefaultTokenTTL
	if resp.ExpiresIn != nil {
		expiresIn = time.Duration(*resp.ExpiresIn) * time.Second
	}

	token := domain.NewAccessToken(resp.AccessToken, p.clock.Now(), expiresIn)

	p.mu.Lock()
	p.cached = &token
	p.mu.Unlock()

	p.incRefresh("success")
	p.logger.Info("TokenProvider: PMS token acquired, expires_in=%s, valid_until=%s",
		expiresIn, token.ExpiresAt.Format(time.RFC3339))

	return token, nil
}

func (p *Provider) incRefresh(result string) {
	if p.metrics == nil {
		return
	}
	p.metrics.IncTokenRefresh(result)
}
