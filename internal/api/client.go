// Package api is the HTTP client for the remote product service.
//
// Four endpoints are consumed: GET /viewall, POST /add, DELETE /delete/{id}
// and GET /product/{id}. Failures come back as *TransportError (no response)
// or *StatusError (non-2xx); response bodies that cannot be decoded come back
// as *product.DecodeError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"productdesk/internal/jsonutil"
	"productdesk/internal/product"
)

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

const tracerName = "productdesk/api"

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	Timeout        time.Duration
	HTTPClient     *http.Client
	Logger         *slog.Logger
	TracerProvider oteltrace.TracerProvider
}

// Client issues requests against a single base URL.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     *slog.Logger
	tracer  oteltrace.Tracer
}

// NewClient creates a client for baseURL (e.g. "http://localhost:8080").
func NewClient(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: scheme must be http or https", baseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Client{
		baseURL: u,
		http:    hc,
		log:     logger,
		tracer:  tp.Tracer(tracerName),
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListAll fetches every product. A bare object response becomes a one-element list.
func (c *Client) ListAll(ctx context.Context) ([]product.Product, error) {
	body, err := c.do(ctx, "list", http.MethodGet, "/viewall", nil)
	if err != nil {
		return nil, err
	}
	return product.DecodeList(body)
}

// Add creates p. The response body is ignored on success.
func (c *Client) Add(ctx context.Context, p product.Product) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	_, err = c.do(ctx, "add", http.MethodPost, "/add", payload, idAttr(p.ID))
	return err
}

// Delete removes the product with id and returns the server's message.
// On a non-2xx response the message is also returned alongside the *StatusError.
func (c *Client) Delete(ctx context.Context, id int) (string, error) {
	body, err := c.do(ctx, "delete", http.MethodDelete, "/delete/"+strconv.Itoa(id), nil, idAttr(id))
	if err != nil {
		if se, ok := err.(*StatusError); ok {
			return se.Message(), err
		}
		return "", err
	}
	return jsonutil.ErrorText(body), nil
}

// Get fetches a single product by id.
func (c *Client) Get(ctx context.Context, id int) (product.Product, error) {
	body, err := c.do(ctx, "get", http.MethodGet, "/product/"+strconv.Itoa(id), nil, idAttr(id))
	if err != nil {
		return product.Product{}, err
	}
	return product.DecodeOne(body)
}

func idAttr(id int) attribute.KeyValue {
	return attribute.Int("productdesk.product.id", id)
}

// do performs one request inside a client span and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte, attrs ...attribute.KeyValue) ([]byte, error) {
	endpoint := c.baseURL.JoinPath(path).String()

	ctx, span := c.tracer.Start(ctx, "productdesk.api."+op,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", endpoint),
		),
	)
	defer span.End()
	span.SetAttributes(attrs...)

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json, text/plain")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.DebugContext(ctx, "api request", "op", op, "method", method, "url", endpoint)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		c.log.WarnContext(ctx, "api transport failure", "op", op, "url", endpoint, "error", err)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read response body: %w", err)}
	}
	c.log.DebugContext(ctx, "api response", "op", op, "status", resp.StatusCode,
		"bytes", len(body), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Op: op, StatusCode: resp.StatusCode, Body: body}
		span.SetStatus(codes.Error, se.Error())
		c.log.WarnContext(ctx, "api status failure", "op", op, "status", resp.StatusCode, "message", se.Message())
		return nil, se
	}
	return body, nil
}
