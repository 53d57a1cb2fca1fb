package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/pkg/logger"
)

const maxResponseBytes = 4 << 20

// TokenSource supplies the current bearer credential; an empty string means
// no session, and the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// Client is the outbound HTTP adapter. Every call attaches the bearer token
// and a correlation ID, maps transport and status failures onto the AppError
// taxonomy, and normalizes the response envelope. A 401 from any call fires
// the unauthorized hook exactly once per call, regardless of which operation
// triggered it.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	requestTimeout time.Duration
	onUnauthorized func()
	logger         *slog.Logger
}

func NewClient(cfg Config, tokens TokenSource, logger *slog.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		tokens:         tokens,
		requestTimeout: timeout,
		logger:         logger,
	}
}

// SetUnauthorizedHook registers the global 401 side effect (session clear and
// redirect to the login surface).
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, internal.NewInternalError("failed to marshal request body", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	ctx, cancel := internal.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, internal.NewInternalError("failed to create HTTP request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// Scope the logger to this request; everything below shares the same
	// method/url/request_id fields.
	ctx = logger.With(logger.Attach(ctx, c.logger),
		"method", method, "url", url, "request_id", requestID)
	log := logger.From(ctx)

	log.Debug("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("api request failed", "error", err)
		return nil, internal.NewNetworkError("cannot reach backend", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, internal.NewNetworkError("failed to read response", err)
	}

	log.Debug("api response", "status", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		env, err := c.parseBody(raw)
		if err != nil {
			log.Error("unrecognized response envelope", "error", err)
			return nil, internal.NewServerError("unrecognized response from server", resp.StatusCode).WithCause(err)
		}
		return env, nil
	}

	return nil, c.statusError(ctx, resp.StatusCode, raw)
}

// parseBody tolerates empty 2xx bodies (e.g. 204 on delete) by synthesizing a
// successful envelope.
func (c *Client) parseBody(raw []byte) (*Envelope, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Envelope{Success: true}, nil
	}
	return ParseEnvelope(raw)
}

func (c *Client) statusError(ctx context.Context, status int, raw []byte) error {
	message := ""
	var details json.RawMessage
	if env, err := ParseEnvelope(raw); err == nil {
		message = env.Message
		if len(env.Errors) > 0 && string(env.Errors) != "null" {
			details = env.Errors
		}
	}

	switch {
	case status == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		if message == "" {
			return internal.ErrSessionExpired
		}
		return internal.NewAuthenticationError(message, internal.ErrCodeSessionExpired)

	case status == http.StatusForbidden:
		if message == "" {
			return internal.ErrAccessDenied
		}
		return internal.NewAuthorizationError(message, internal.ErrCodeAccessDenied)

	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if message == "" {
			message = "validation failed"
		}
		appErr := internal.NewValidationError(message, internal.ErrCodeValidationFailed)
		if details != nil {
			appErr = appErr.WithDetails(details)
		}
		return appErr

	case status == http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		return internal.NewNotFoundError(message, internal.ErrCodeResourceNotFound)

	default:
		logger.From(ctx).Error("server error", "status", status, "message", message)
		if message == "" {
			message = fmt.Sprintf("server returned status %d", status)
		}
		return internal.NewServerError(message, status)
	}
}
