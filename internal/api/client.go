// Package api implements the HTTP client adapter for the remote news API.
//
// The adapter is the single place requests leave the process. It injects the
// bearer token from durable credential storage, normalizes every failure into
// *Error, rate-limits outgoing calls, traces each request with OpenTelemetry,
// and emits structured request logs. No retries are performed here; a failed
// attempt is terminal and recovery is the caller's decision.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/tbourn/go-news-client/internal/metrics"
)

// unreachableMsg is the user-facing message for transport failures.
const unreachableMsg = "cannot reach server"

// TokenSource supplies the bearer token injected into outgoing requests.
// Invalidate is called when the server answers 401, so the stored credential
// and the server's view of it can never drift apart.
type TokenSource interface {
	Token() string
	Invalidate()
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api/v1".
	BaseURL string
	// Timeout bounds each request end to end. Zero means 10s.
	Timeout time.Duration
	// UserAgent is sent with every request when non-empty.
	UserAgent string
	// Tokens supplies the bearer token; nil disables auth injection.
	Tokens TokenSource
	// RPS/Burst bound the outgoing request rate. RPS <= 0 disables limiting.
	RPS   float64
	Burst int
	// Logger receives request logs. The zero logger is usable and silent
	// only if so configured by the caller.
	Logger zerolog.Logger
	// HTTPClient overrides the transport; used by tests. When set, Timeout
	// is ignored in favor of the provided client's own.
	HTTPClient *http.Client
}

// Client is the HTTP client adapter. All domain services go through it.
// Safe for concurrent use.
type Client struct {
	base    string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	ua      string
	log     zerolog.Logger
	tracer  trace.Tracer
}

// New constructs a Client from opts.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	var lim *rate.Limiter
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return &Client{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
		tokens:  opts.Tokens,
		limiter: lim,
		ua:      opts.UserAgent,
		log:     opts.Logger,
		tracer:  otel.Tracer("github.com/tbourn/go-news-client/internal/api"),
	}
}

// Get issues a GET for path with optional query parameters, decoding the
// response body into out (skipped when out is nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// Post issues a POST with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE for path.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

// Upload sends r as a multipart form file under field "file".
func (c *Client) Upload(ctx context.Context, path, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return &Error{Code: ErrCodeBadRequest, Message: "cannot build upload body", cause: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return &Error{Code: ErrCodeBadRequest, Message: "cannot build upload body", cause: err}
	}
	if err := w.Close(); err != nil {
		return &Error{Code: ErrCodeBadRequest, Message: "cannot build upload body", cause: err}
	}
	return c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType(), out)
}

// doJSON marshals body and delegates to do with a JSON content type.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Code: ErrCodeBadRequest, Message: "cannot encode request body", cause: err}
		}
		rd = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, nil, rd, "application/json", out)
}

// do performs one request. It is the single funnel for rate limiting, auth
// injection, tracing, logging, metrics, and error normalization.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Code: ErrCodeUnreachable, Message: unreachableMsg, cause: err}
		}
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	ctx, span := c.tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	)

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return &Error{Code: ErrCodeBadRequest, Message: "cannot build request", cause: err}
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}
	rid := uuid.NewString()
	req.Header.Set("X-Request-ID", rid)
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	metrics.RequestDuration(method, latency)

	lg := c.log.With().
		Str("request_id", rid).
		Str("method", method).
		Str("path", path).
		Dur("latency", latency).
		Logger()

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		lg.Error().Err(err).Msg("request failed")
		return &Error{Code: ErrCodeUnreachable, Message: unreachableMsg, cause: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.errorFrom(resp)
		switch {
		case resp.StatusCode >= 500:
			lg.Error().Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("request")
		default:
			lg.Warn().Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("request")
		}
		span.SetStatus(codes.Error, apiErr.Message)
		return apiErr
	}

	lg.Debug().Int("status", resp.StatusCode).Msg("request")

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Code: ErrCodeInternal, Message: "cannot decode response body", cause: err}
	}
	return nil
}

// errorFrom builds the normalized *Error for a non-2xx response, preferring
// the server's {"error": "..."} message. A 401 additionally invalidates the
// stored credential so the session cannot keep replaying a dead token.
func (c *Client) errorFrom(resp *http.Response) *Error {
	msg := ""
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		if body.Error != "" {
			msg = body.Error
		} else if body.Message != "" {
			msg = body.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
		c.tokens.Invalidate()
	}

	return &Error{
		Status:  resp.StatusCode,
		Code:    codeForStatus(resp.StatusCode),
		Message: msg,
	}
}
