// Package trigger calls the operator endpoints of a running server, as cron jobs and the CLI do.
package trigger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"go.uber.org/zap"
	"resty.dev/v3"

	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/server"
)

// ErrUnauthorized is returned when the server rejects the API key.
var ErrUnauthorized = errors.New("server rejected the api key")

type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

type Client struct {
	httpClient    *resty.Client
	retryAttempts uint
	logger        *zap.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, retryAttempts uint, logger *zap.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader(server.HeaderAPIKey, apiKey)
	client.SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Client{httpClient: client, retryAttempts: retryAttempts, logger: logger.Named("trigger")}
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.status, e.message)
}

func (c *Client) Sweep(ctx context.Context, req server.SweepRequest) (*notification.BatchResult, error) {
	return post[notification.BatchResult](ctx, c, "/api/notifications/sweep", req)
}

func (c *Client) Notify(ctx context.Context, req server.NotifyRequest) (*server.NotifyResponse, error) {
	return post[server.NotifyResponse](ctx, c, "/api/notifications/notify", req)
}

func (c *Client) Retry(ctx context.Context) (*notification.BatchResult, error) {
	return post[notification.BatchResult](ctx, c, "/api/notifications/retry", struct{}{})
}

func (c *Client) VerifyToken(ctx context.Context, tok string) (*server.VerifyTokenResponse, error) {
	return post[server.VerifyTokenResponse](ctx, c, "/api/tokens/verify", server.VerifyTokenRequest{Token: tok})
}

// post retries network errors and 5xx responses. The operator endpoints are safe to repeat
// because dispatches are deduplicated per quiz and day.
func post[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var out *T
	err := retry.Do(
		func() error {
			res, err := c.httpClient.R().
				SetContext(ctx).
				SetBody(body).
				SetResult(&envelope[T]{}).
				SetError(&envelope[T]{}).
				Post(path)
			if err != nil {
				return fmt.Errorf("httpClient.Post(%s) > %w", path, err)
			}
			if res.IsError() {
				message := res.String()
				if e, ok := res.Error().(*envelope[T]); ok && e != nil && e.Message != "" {
					message = e.Message
				}
				if res.StatusCode() == http.StatusUnauthorized {
					return retry.Unrecoverable(ErrUnauthorized)
				}
				statusErr := &statusError{status: res.StatusCode(), message: message}
				if res.StatusCode() < http.StatusInternalServerError {
					return retry.Unrecoverable(statusErr)
				}
				return statusErr
			}
			env, ok := res.Result().(*envelope[T])
			if !ok || env == nil || env.Data == nil {
				return retry.Unrecoverable(fmt.Errorf("empty response from %s", path))
			}
			out = env.Data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts+1),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying", zap.String("path", path), zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}
