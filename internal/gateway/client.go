package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/school-exam-api/pkg/config"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

// envelope mirrors the wire contract of the API this client fronts.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
}

// ResolveBaseURL picks the upstream base URL. Priority: explicit override,
// desktop wrapper endpoint, mobile wrapper default, cloud-hosting relative
// path, then a plain relative prefix.
func ResolveBaseURL(cfg config.GatewayConfig) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.DesktopURL != "" {
		return strings.TrimRight(cfg.DesktopURL, "/")
	}
	if cfg.MobileURL != "" {
		return strings.TrimRight(cfg.MobileURL, "/")
	}
	if cfg.CloudPath != "" {
		return strings.TrimRight(cfg.CloudPath, "/")
	}
	return "/api"
}

// Client is a thin HTTP client for a remote copy of this API. Requests are
// attempted once; the caller decides about retries.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// New constructs a gateway client from configuration.
func New(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: ResolveBaseURL(cfg),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// SetToken stores the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// BaseURL reports the resolved upstream base.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one request against the upstream and decodes the envelope.
// The returned bytes are the raw data payload; out, when non-nil, receives
// the decoded form.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, out interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "upstream unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "failed to read upstream response")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamPayload.Code, appErrors.ErrUpstreamPayload.Status, "upstream returned a non-envelope payload")
	}
	if !env.Success {
		message := env.Message
		if message == "" {
			message = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
		}
		return nil, appErrors.Clone(appErrors.ErrUpstream, message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstreamPayload.Code, appErrors.ErrUpstreamPayload.Status, "upstream data did not match the expected shape")
		}
	}
	return env.Data, nil
}

// Login authenticates against the upstream and stores the issued token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "upstream unreachable")
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstreamPayload.Code, appErrors.ErrUpstreamPayload.Status, "upstream returned a non-envelope payload")
	}
	if !env.Success || env.Token == "" {
		message := env.Message
		if message == "" {
			message = "login rejected"
		}
		return appErrors.Clone(appErrors.ErrUpstream, message)
	}

	c.token = env.Token
	return nil
}

// List fetches a collection, e.g. List(ctx, "/students", &students).
func (c *Client) List(ctx context.Context, resource string, out interface{}) error {
	_, err := c.Do(ctx, http.MethodGet, resource, nil, out)
	return err
}

// Get fetches one record by id.
func (c *Client) Get(ctx context.Context, resource, id string, out interface{}) error {
	_, err := c.Do(ctx, http.MethodGet, resource+"/"+id, nil, out)
	return err
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, resource string, body, out interface{}) error {
	_, err := c.Do(ctx, http.MethodPost, resource, body, out)
	return err
}

// Update merges fields into an existing record.
func (c *Client) Update(ctx context.Context, resource, id string, body, out interface{}) error {
	_, err := c.Do(ctx, http.MethodPut, resource+"/"+id, body, out)
	return err
}

// Delete removes a record; out receives the removed record when non-nil.
func (c *Client) Delete(ctx context.Context, resource, id string, out interface{}) error {
	_, err := c.Do(ctx, http.MethodDelete, resource+"/"+id, nil, out)
	return err
}
