package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/domain"
	apperrors "github.com/jafarshop/revenuereports/pkg/errors"
)

// PageSize is the Shopify REST page limit used for all list calls
const PageSize = 250

// OrderListParams filters the orders.json listing. SinceID drives cursor
// pagination (only orders with a numerically greater ID are returned).
type OrderListParams struct {
	CreatedAtMin time.Time
	CreatedAtMax time.Time
	SinceID      int64
	CustomerID   int64
	Limit        int
}

// ListOrders fetches one page of fulfilled orders (fulfillment_status=shipped,
// status=any) in the given window. Callers paginate via SinceID.
func (c *Client) ListOrders(ctx context.Context, p OrderListParams) ([]domain.Order, error) {
	limit := p.Limit
	if limit <= 0 || limit > PageSize {
		limit = PageSize
	}

	q := url.Values{}
	q.Set("status", "any")
	q.Set("fulfillment_status", "shipped")
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("created_at_min", p.CreatedAtMin.UTC().Format(time.RFC3339))
	q.Set("created_at_max", p.CreatedAtMax.UTC().Format(time.RFC3339))
	if p.SinceID > 0 {
		q.Set("since_id", fmt.Sprintf("%d", p.SinceID))
	}
	if p.CustomerID > 0 {
		q.Set("customer_id", fmt.Sprintf("%d", p.CustomerID))
	}

	var page struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := c.getJSON(ctx, "orders.json", q, &page); err != nil {
		return nil, err
	}
	return page.Orders, nil
}

// ListCustomers fetches one page of customers; sinceID 0 starts at the beginning
func (c *Client) ListCustomers(ctx context.Context, sinceID int64) ([]domain.Customer, error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", PageSize))
	if sinceID > 0 {
		q.Set("since_id", fmt.Sprintf("%d", sinceID))
	}

	var page struct {
		Customers []domain.Customer `json:"customers"`
	}
	if err := c.getJSON(ctx, "customers.json", q, &page); err != nil {
		return nil, err
	}
	return page.Customers, nil
}

// getJSON performs a rate-limited GET against the Admin REST API and decodes
// the response into out. Non-2xx responses surface as UpstreamError with the
// raw payload so handlers can propagate the upstream status.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	u := fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Shopify REST request failed", zap.String("path", path), zap.Error(err))
		return &apperrors.UpstreamError{Message: fmt.Sprintf("failed to execute request: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.UpstreamError{StatusCode: resp.StatusCode, Payload: body}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}
	return nil
}
