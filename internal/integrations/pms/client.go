package pms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
	"github.com/m04kA/SMC-RoomAvailability/pkg/requestid"
)

const (
	tokenPath        = "/liberar"
	availabilityPath = "/Disponibilidade"

	endpointToken        = "token"
	endpointAvailability = "availability"

	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeTimeout = "timeout"

	maxErrorBodyBytes = 1024
)

// Client клиент для работы с API PMS
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	log          Logger
	metrics      Metrics
}

// NewClient создает новый экземпляр клиента PMS.
// timeout ограничивает оба запроса: выдачу токена и отчет о доступности
func NewClient(baseURL, clientID, clientSecret string, timeout time.Duration, log Logger, metrics Metrics) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: metrics,
	}
}

// IssueToken запрашивает новый токен доступа
// POST <base>/liberar?client_id=...&client_secret=...
func (c *Client) IssueToken(ctx context.Context) (*TokenResponse, error) {
	query := url.Values{}
	query.Set("client_id", c.clientID)
	query.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUpstreamAuth, err)
	}
	req.Header.Set("Accept", "application/json")
	setRequestID(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpointToken, transportOutcome(err), start)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUpstreamAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(endpointToken, outcomeError, start)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrUpstreamAuth, resp.StatusCode, string(body))
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		c.observe(endpointToken, outcomeError, start)
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUpstreamAuth, err)
	}

	if token.AccessToken == "" {
		c.observe(endpointToken, outcomeError, start)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAuth, ErrMissingAccessToken)
	}

	c.observe(endpointToken, outcomeOK, start)
	return &token, nil
}

// FetchAvailability получает посуточную доступность типов номеров за период
// GET <base>/Disponibilidade?dataInicial=YYYY-MM-DD&dataFinal=YYYY-MM-DD
func (c *Client) FetchAvailability(ctx context.Context, token string, checkIn, checkOut time.Time) (*AvailabilityReport, error) {
	query := url.Values{}
	query.Set("dataInicial", checkIn.Format(domain.DateFormat))
	query.Set("dataFinal", checkOut.Format(domain.DateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+availabilityPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUpstreamQuery, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	setRequestID(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpointAvailability, transportOutcome(err), start)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUpstreamQuery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(endpointAvailability, outcomeError, start)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrUpstreamQuery, resp.StatusCode, string(body))
	}

	var report AvailabilityReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		c.observe(endpointAvailability, outcomeError, start)
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUpstreamQuery, err)
	}

	c.observe(endpointAvailability, outcomeOK, start)
	c.log.Info("PMS availability fetched: request_id=%s, from=%s, to=%s, room_types=%d",
		requestid.FromContext(ctx), checkIn.Format(domain.DateFormat), checkOut.Format(domain.DateFormat), len(report.RoomTypes))

	return &report, nil
}

// setRequestID пробрасывает идентификатор входящего запроса в PMS
func setRequestID(req *http.Request) {
	if id := requestid.FromContext(req.Context()); id != "" {
		req.Header.Set(requestid.Header, id)
	}
}

func (c *Client) observe(endpoint, outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveUpstreamRequest(endpoint, outcome, time.Since(start))
}

func transportOutcome(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return outcomeTimeout
	}
	return outcomeError
}
