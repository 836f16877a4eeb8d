package edamam

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/recipes/internal/config"
	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/recipes"
)

const (
	searchPath = "/api/recipes/v2"

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 512
)

// Client talks to the Edamam recipe search API.
type Client struct {
	baseURL string
	appID   string
	appKey  string

	hc     *http.Client
	logger *slog.Logger
	tracer trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc = &http.Client{Timeout: d} }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTracer sets the tracer. The default comes from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// New creates a client for the API at baseURL.
func New(baseURL, appID, appKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   appID,
		appKey:  appKey,
		hc:      &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
		tracer:  otel.Tracer("recipes/edamam"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig creates a client from the edamam section of cfg.
func FromConfig(cfg *config.Config, opts ...Option) *Client {
	opts = append([]Option{WithTimeout(cfg.RequestTimeout())}, opts...)
	return New(cfg.Edamam.BaseURL, cfg.Edamam.AppID, cfg.Edamam.AppKey, opts...)
}

// SearchURL returns the request URL for params. Credentials and the public
// recipe type are added to the params query.
func (c *Client) SearchURL(p *recipes.Params) string {
	q := url.Values(p.Values())
	c.sign(q)
	return c.baseURL + searchPath + "?" + q.Encode()
}

func (c *Client) sign(q url.Values) {
	q.Set("type", "public")
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
}

// Search runs a search and returns the first page of results.
func (c *Client) Search(ctx context.Context, p *recipes.Params) (*recipes.List, error) {
	var body hitList
	if err := c.get(ctx, "search", c.SearchURL(p), &body); err != nil {
		return nil, err
	}
	return body.list(), nil
}

// Next follows a List.Next href to the following page.
func (c *Client) Next(ctx context.Context, href string) (*recipes.List, error) {
	if href == "" {
		return nil, errors.New("E201").WithDetail("The result list has no next page.")
	}
	if !c.sameOrigin(href) {
		return nil, errors.New("E201").WithDetailf("The next page link %q does not point at the recipe service.", href)
	}
	var body hitList
	if err := c.get(ctx, "next", href, &body); err != nil {
		return nil, err
	}
	return body.list(), nil
}

// sameOrigin reports whether href has the scheme and host of the base URL.
// Next links can come from clients.
func (c *Client) sameOrigin(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, base.Scheme) && strings.EqualFold(u.Host, base.Host)
}

// Recipe fetches one recipe by id.
func (c *Client) Recipe(ctx context.Context, id string) (*Recipe, error) {
	q := url.Values{}
	c.sign(q)
	u := c.baseURL + searchPath + "/" + url.PathEscape(id) + "?" + q.Encode()

	var body hit
	if err := c.get(ctx, "recipe", u, &body); err != nil {
		var se *StatusError
		if stderrors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, errors.New("E204").WithDetailf("No recipe with id %q.", id).Wrap(se)
		}
		return nil, err
	}
	return &body.Recipe, nil
}

func (c *Client) get(ctx context.Context, op, rawURL string, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "edamam."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("edamam.op", op)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.New("E201").Wrap(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.New("E201").Wrap(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("edamam request",
		"op", op,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.New("E202").Wrap(&StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.New("E203").Wrap(err)
	}
	return nil
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}
