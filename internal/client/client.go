// Package client is the storefront-side view of the marketplace API: a thin
// typed wrapper over the HTTP surface served by marketd.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/saidafzal264-maker/Elevon-market/internal/catalog"
	"github.com/saidafzal264-maker/Elevon-market/internal/order"
)

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

func (c *Client) GetProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	body := map[string]string{"query": query}
	var results []catalog.Product
	if err := c.do(ctx, http.MethodPost, "/api/search", body, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Recommendations never fails: any transport or server problem yields an empty
// list, matching the endpoint's own fail-soft contract.
func (c *Client) Recommendations(ctx context.Context, history []string) []string {
	body := map[string][]string{"history": history}
	var ids []string
	if err := c.do(ctx, http.MethodPost, "/api/ai/recommendations", body, &ids); err != nil {
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

type CreateOrderRequest struct {
	UserID string       `json:"userId"`
	Items  []order.Item `json:"items"`
	Total  float64      `json:"total"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
