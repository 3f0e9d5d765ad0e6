package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"reservationsClient/internal/shared/auth"
)

const (
	// RequestIDHeader correlates a gateway call with the backend logs.
	RequestIDHeader = "X-Request-ID"
	defaultTimeout  = 10 * time.Second
)

// RESTClient wraps http.Client with base URL handling to avoid duplicating boilerplate in adapters.
type RESTClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewRESTClient(baseURL string, timeout time.Duration, client *http.Client, logger *slog.Logger) *RESTClient {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:5001/api"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RESTClient{baseURL: trimmed, client: client, timeout: timeoutOrDefault(timeout), logger: logger}
}

// BaseURL returns the normalized base every endpoint is resolved against.
func (c *RESTClient) BaseURL() string {
	return c.baseURL
}

func (c *RESTClient) NewRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	return http.NewRequestWithContext(ctx, method, target, body)
}

// Do sends req, stamping a request id when the caller did not set one.
func (c *RESTClient) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return c.client.Do(req)
}

// Call describes one JSON round trip.
type Call struct {
	Op       string
	Method   string
	Path     string
	Query    url.Values
	Header   http.Header
	Body     any
	Fallback string

	// PreferFallback uses Fallback instead of the HTTP status text when the error body has no message.
	PreferFallback bool
}

// DoJSON performs call under the client timeout and decodes the response body. Any failure is
// returned as *APIError carrying the message callers should display. An empty 2xx body yields nil.
func (c *RESTClient) DoJSON(ctx context.Context, call Call) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if call.Body != nil {
		encoded, err := json.Marshal(call.Body)
		if err != nil {
			return nil, NewTransportError(call.Op, fmt.Errorf("encode request: %w", err), call.Fallback)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.NewRequest(ctx, call.Method, call.Path, body)
	if err != nil {
		c.logger.Error("rest request build failed", slog.String("op", call.Op), slog.String("path", call.Path), slog.Any("error", err))
		return nil, NewTransportError(call.Op, err, call.Fallback)
	}
	auth.MergeHeaders(req.Header, call.Header)
	req.Header.Set("Accept", "application/json")
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(call.Query) > 0 {
		req.URL.RawQuery = call.Query.Encode()
	}

	c.logger.Debug("rest request", slog.String("op", call.Op), slog.String("method", call.Method), slog.String("url", req.URL.String()), slog.Bool("authenticated", auth.ExtractBearerToken(req) != ""))

	res, err := c.Do(req)
	if err != nil {
		c.logger.Error("rest request error", slog.String("op", call.Op), slog.String("url", req.URL.String()), slog.Any("error", err))
		return nil, NewTransportError(call.Op, err, call.Fallback)
	}
	defer res.Body.Close()
	c.logger.Debug("rest response", slog.String("op", call.Op), slog.Int("status", res.StatusCode), slog.String("requestId", req.Header.Get(RequestIDHeader)))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		errBody := ReadErrorBody(res)
		apiErr := NewResponseError(call.Op, res.StatusCode, errBody, call.Fallback)
		if call.PreferFallback && call.Fallback != "" && MessageFromBody(errBody) == "" {
			apiErr.Message = call.Fallback
		}
		c.logger.Warn("rest unexpected status", slog.String("op", call.Op), slog.Int("status", res.StatusCode), slog.String("message", apiErr.Message))
		return nil, apiErr
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, NewTransportError(call.Op, fmt.Errorf("read response: %w", err), call.Fallback)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		c.logger.Error("rest decode failed", slog.String("op", call.Op), slog.Any("error", err))
		return nil, NewTransportError(call.Op, fmt.Errorf("decode response: %w", err), call.Fallback)
	}
	return payload, nil
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return defaultTimeout
	}
	return value
}
