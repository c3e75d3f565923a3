// Package loader fetches the storefront catalog from the listings backend.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ausmotors/storefront/pkg/ausmotors/dal"
	"github.com/ausmotors/storefront/pkg/ausmotors/store"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Backend resource paths
const (
	CarsPath        = "/api/cars"
	CategoriesPath  = "/api/categories"
	MakesPath       = "/api/makes"
	PriceRangesPath = "/api/price-ranges"
)

var (
	// ErrNotArray is returned when a resource does not decode to a JSON array
	ErrNotArray = errors.New("response is not a JSON array")
	// ErrStatus is returned for non-2xx backend responses
	ErrStatus = errors.New("unexpected response status")
)

// Client reads the four catalog resources from the backend
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     *logrus.Logger
	group   singleflight.Group
}

// NewClient returns a client for the backend rooted at baseURL. A zero timeout
// leaves requests bounded only by the caller's context.
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host required", baseURL)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		base:    base,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		timeout: timeout,
		log:     logger,
	}, nil
}

// Load fetches all four collections concurrently. Either every request
// succeeds or the first error is returned and the rest are cancelled.
func (c *Client) Load(ctx context.Context) (dal.Catalog, error) {
	var catalog dal.Catalog
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return c.fetch(ctx, CarsPath, &catalog.Vehicles) })
	g.Go(func() error { return c.fetch(ctx, CategoriesPath, &catalog.Categories) })
	g.Go(func() error { return c.fetch(ctx, MakesPath, &catalog.Makes) })
	g.Go(func() error { return c.fetch(ctx, PriceRangesPath, &catalog.PriceRanges) })

	if err := g.Wait(); err != nil {
		return dal.Catalog{}, err
	}
	for _, v := range catalog.Vehicles {
		if !v.CreatedAt.Valid() {
			c.log.WithFields(logrus.Fields{
				"id":         v.ID,
				"created_at": v.CreatedAt.Unparsed,
			}).Warn("Unrecognised vehicle timestamp, sorting it as oldest")
		}
	}
	return catalog, nil
}

// Bootstrap loads the catalog into s. Concurrent calls share one load, and a
// store that is already populated is left untouched.
func (c *Client) Bootstrap(ctx context.Context, s *store.Store) error {
	if s.Loaded() {
		return nil
	}
	_, err, _ := c.group.Do("catalog", func() (interface{}, error) {
		if s.Loaded() {
			return nil, nil
		}
		c.log.Info("Loading catalog")
		catalog, err := c.Load(ctx)
		if err != nil {
			return nil, err
		}
		c.log.WithFields(logrus.Fields{
			"vehicles":     len(catalog.Vehicles),
			"categories":   len(catalog.Categories),
			"makes":        len(catalog.Makes),
			"price_ranges": len(catalog.PriceRanges),
		}).Info("Catalog loaded")
		return nil, s.Set(catalog)
	})
	if err != nil {
		c.log.WithError(err).Error("Error loading catalog")
		return err
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := *c.base
	u.Path = c.base.Path + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w: %d", path, ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%s: %w", path, ErrNotArray)
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%s: decode: %w", path, err)
	}
	c.log.WithField("path", path).Debug("Fetched resource")
	return nil
}
