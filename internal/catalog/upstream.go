package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrUpstreamNotFound    = errors.New("upstream product not found")
	ErrUpstreamBadStatus   = errors.New("upstream bad status")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// UpstreamClient talks to the remote products API (fakestoreapi-shaped).
type UpstreamClient struct {
	BaseURL string
	Client  *http.Client
}

func NewUpstreamClient(baseURL string) *UpstreamClient {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &UpstreamClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// ListProducts fetches the full catalog. Any transport failure or non-2xx
// status is a single terminal failure; retries are the caller's problem and
// the caller does not retry.
func (c *UpstreamClient) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, c.BaseURL+"/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *UpstreamClient) GetProduct(ctx context.Context, id int64) (Product, error) {
	var p Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.BaseURL, id), &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *UpstreamClient) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrUpstreamUnavailable
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return ErrUpstreamUnavailable
		}
		return ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrUpstreamNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrUpstreamBadStatus, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
