// Package backend is the typed client for the portal's upstream REST service.
// It owns header merging, bearer credential attachment, and the translation of
// upstream failures into application errors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/researchhub/portal-api/internal/errors"
)

// Options captures runtime configuration for the backend client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Logger  *slog.Logger
}

// Client talks to the upstream REST API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// New constructs a backend client from options. Callers must provide a base URL.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend base URL is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	hc := opts.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: base,
		client:  hc,
		logger:  logger.With("component", "backend_client"),
	}, nil
}

// request groups the parameters of a single upstream call.
type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

// apiErrorBody is the upstream's error envelope. Only the message field is
// contractual; anything else in the body is ignored.
type apiErrorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		bodyReader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, bodyReader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	// The credential header is attached only when a token exists. Anonymous
	// calls go out without an Authorization header at all.
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "backend request timed out")
		}
		if errors.Is(err, context.Canceled) {
			return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "backend request canceled")
		}
		return apperrors.Upstream("backend unreachable", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "failed to close response body", "err", closeErr)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.errorFromResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return apperrors.Upstream("decode backend response", decodeErr)
	}
	return nil
}

// errorFromResponse builds the caller-facing error for a non-2xx response.
// When the body carries a JSON object with a message field, that message wins;
// otherwise the error reads "HTTP <status>: <status text>".
func (c *Client) errorFromResponse(resp *http.Response) error {
	message := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(raw) > 0 {
		var body apiErrorBody
		if jsonErr := json.Unmarshal(raw, &body); jsonErr == nil && body.Message != "" {
			message = body.Message
		}
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return apperrors.Validation(message)
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case http.StatusForbidden:
		return apperrors.Forbidden(message)
	case http.StatusNotFound:
		return apperrors.NotFound(message)
	case http.StatusConflict:
		return apperrors.Conflict(message)
	default:
		return apperrors.Upstream(message, nil)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, token string, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query, token: token}, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, token: token, body: body}, out)
}

func (c *Client) put(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPut, path: path, token: token, body: body}, out)
}

func (c *Client) delete(ctx context.Context, path, token string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path, token: token}, nil)
}
