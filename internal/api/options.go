package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option настраивает Client при создании.
type Option func(*Client)

// WithHTTPClient подменяет транспорт (в тестах — httptest).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout задаёт таймаут одного запроса.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRetries задаёт число повторов для GET запросов.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryWait задаёт базовый шаг линейного backoff между повторами.
func WithRetryWait(d time.Duration) Option {
	return func(c *Client) { c.retryWait = d }
}

// WithUserAgent подменяет User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger задаёт логгер клиента.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}
