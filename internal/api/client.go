package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client — обёртка над REST API бэкенда покрытия. Потокобезопасен:
// после создания его поля не меняются, WithToken возвращает копию.
type Client struct {
	baseURL   string
	http      *http.Client
	retries   int
	retryWait time.Duration
	userAgent string
	token     string
	log       *zap.Logger
}

// New создаёт клиент. baseURL — адрес бэкенда без /api.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api: base URL is required")
	}
	c := &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 15 * time.Second},
		retries:   3,
		retryWait: 500 * time.Millisecond,
		userAgent: "attack-coverage-dashboard/1.0",
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// WithToken возвращает копию клиента с bearer токеном сессии.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// do выполняет запрос и возвращает поле data конверта. GET запросы
// повторяются с линейным backoff (как ретраи подключения к БД),
// мутирующие — никогда.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += c.retries
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * c.retryWait):
			}
			c.log.Debug("retrying request",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt))
		}

		data, retryable, err := c.once(ctx, method, path, query, payload)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

// once — одна попытка запроса. Второй результат — можно ли повторять.
func (c *Client) once(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, bool, error) {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, false, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("api: read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, resp.StatusCode >= 500, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, false, fmt.Errorf("%w: %v", ErrShape, err)
	}

	if !env.Success || resp.StatusCode >= 400 {
		status := resp.StatusCode
		if status < 400 && env.Code >= 400 {
			status = env.Code
		}
		return nil, status >= 500, &APIError{Status: status, Message: env.errorMessage()}
	}
	return env.Data, false, nil
}

// doRaw — запрос мимо конверта (экспорт аудита отдаёт CSV как есть).
func (c *Client) doRaw(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("api: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, "", &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("api: read response: %w", err)
	}
	return raw, resp.Header.Get("Content-Type"), nil
}
