package restodex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/kailas-cloud/restodex/internal/version"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = time.Minute
	maxErrorBody    = 64 << 10
)

// Client is the restodex SDK entry point.
type Client struct {
	base      *url.URL
	http      *http.Client
	apiKey    string
	userAgent string
	cacheTTL  time.Duration
	obs       *observer
}

// New creates a Client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout:   defaultTimeout,
		cacheTTL:  defaultCacheTTL,
		userAgent: version.UserAgent(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("restodex: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("restodex: base url must be http or https, got %q", baseURL)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		base:      base,
		http:      hc,
		apiKey:    cfg.apiKey,
		userAgent: cfg.userAgent,
		cacheTTL:  cfg.cacheTTL,
		obs:       obs,
	}, nil
}

// ListRestaurants fetches one listing page.
func (c *Client) ListRestaurants(ctx context.Context, q PageQuery) (page *Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list", start, err, "query", q.Key()) }()

	var p Page
	if err = c.get(ctx, "/restaurants", q.Values(), &p); err != nil {
		return nil, err
	}
	if p.Restaurants == nil {
		p.Restaurants = []Restaurant{}
	}
	return &p, nil
}

// GetRestaurant fetches one record. A missing id yields an error matching ErrNotFound.
func (c *Client) GetRestaurant(ctx context.Context, id string) (rec *Restaurant, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err, "id", id) }()

	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	var r Restaurant
	if err = c.get(ctx, "/restaurants/"+url.PathEscape(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// NearbyRestaurants returns records within the radius, nearest first.
func (c *Client) NearbyRestaurants(ctx context.Context, q LocationQuery) (items []Restaurant, err error) {
	start := time.Now()
	defer func() { c.obs.observe("nearby", start, err) }()

	if err = c.get(ctx, "/locationR", q.Values(), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Restaurant{}
	}
	return items, nil
}

// SearchImage uploads an image for visual search. The server does not
// implement it yet, so expect an error matching ErrNotImplemented.
func (c *Client) SearchImage(ctx context.Context, filename string, image io.Reader) (items []Restaurant, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_image", start, err) }()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", path.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("restodex: build upload: %w", err)
	}
	if _, err = io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("restodex: read image: %w", err)
	}
	if err = mw.Close(); err != nil {
		return nil, fmt.Errorf("restodex: build upload: %w", err)
	}

	if err = c.do(ctx, http.MethodPost, "/searchimage", nil, &body, mw.FormDataContentType(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Health reports server health. A degraded server answers 503; the report is
// still returned alongside the error.
func (c *Client) Health(ctx context.Context) (status *HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	var h HealthStatus
	err = c.get(ctx, "/health", nil, &h)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusServiceUnavailable && h.Status != "" {
		return &h, err
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Listing returns a new listing flow with its own page cache.
func (c *Client) Listing() *Listing {
	return NewListing(c, c.cacheTTL)
}

// Detail returns a new detail flow.
func (c *Client) Detail() *Detail {
	return NewDetail(c)
}

func (c *Client) get(ctx context.Context, p string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, p, query, nil, "", out)
}

func (c *Client) do(
	ctx context.Context, method, p string, query url.Values, body io.Reader, contentType string, out any,
) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + p
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("restodex: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("restodex: %s %s: %w", method, p, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return decodeError(resp, out)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("restodex: decode %s response: %w", p, err)
	}
	return nil
}

// decodeError builds an *APIError. A health body is also decoded into out so
// that degraded reports stay readable.
func decodeError(resp *http.Response, out any) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{Status: resp.StatusCode}
	var eb errorBody
	if json.Unmarshal(data, &eb) == nil && eb.Code != "" {
		apiErr.Code, apiErr.Message = eb.Code, eb.Message
	} else {
		apiErr.Code = codeForStatus(resp.StatusCode)
		apiErr.Message = http.StatusText(resp.StatusCode)
		if h, ok := out.(*HealthStatus); ok {
			_ = json.Unmarshal(data, h)
		}
	}
	return apiErr
}
