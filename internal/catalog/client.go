package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
)

// Client is the storefront-side catalog reader. It fetches the product list
// from the JSON API once per session and keeps it cached for the lifetime of
// the process; the cache is never invalidated mid-session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logg       *logger.Logger

	mu      sync.Mutex
	cache   []Product
	fetched bool
}

// NewClient builds a catalog client against the given API base URL.
func NewClient(baseURL string, timeout time.Duration, logg *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logg:       logg,
	}
}

// ListAll returns every product. On transport failure it degrades to an empty
// slice plus a dependency error so the caller can render an error banner; no
// retry is attempted.
func (c *Client) ListAll(ctx context.Context) ([]Product, error) {
	c.mu.Lock()
	if c.fetched {
		cached := copyProducts(c.cache)
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	products, err := c.fetchAll(ctx)
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "catalog.fetch_failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "Could not load products")
	}

	c.mu.Lock()
	c.cache = products
	c.fetched = true
	c.mu.Unlock()

	return copyProducts(products), nil
}

// FindByID consults the session cache first; on a miss it performs a single
// point lookup against the API. A failed or empty lookup reports not found.
func (c *Client) FindByID(ctx context.Context, id int64) (Product, error) {
	c.mu.Lock()
	if c.fetched {
		for _, p := range c.cache {
			if p.ID == id {
				c.mu.Unlock()
				return p, nil
			}
		}
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/products/%d", c.baseURL, id), nil)
	if err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building product request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "catalog.lookup_failed", err)
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Product not found")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Product not found")
	}
	return product, nil
}

func (c *Client) fetchAll(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, fmt.Errorf("building products request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("products endpoint returned %d", resp.StatusCode)
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}
	return products, nil
}

func copyProducts(in []Product) []Product {
	out := make([]Product, len(in))
	copy(out, in)
	return out
}
