package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/revenuereports/internal/config"
	apperrors "github.com/jafarshop/revenuereports/pkg/errors"
)

func testClient(srvURL string) *Client {
	return NewClient(
		config.ShopifyConfig{ShopDomain: srvURL, AccessToken: "secret-token", APIVersion: "2026-01"},
		config.RateLimitConfig{RequestsPerSecond: 10000, Burst: 10000},
		nil,
	)
}

func TestExecuteSendsAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-token", r.Header.Get("X-Shopify-Access-Token"))
		assert.Equal(t, "/admin/api/2026-01/graphql.json", r.URL.Path)
		fmt.Fprint(w, `{"data": {"ok": true}}`)
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).Execute(context.Background(), `query { ok }`, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(resp.Data))
}

func TestExecuteFoldsGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors": [{"message": "first"}, {"message": "second"}]}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Execute(context.Background(), `query { x }`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first; second")
}

func TestExecuteNon200IsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"errors": "throttled"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Execute(context.Background(), `query { x }`, nil)
	require.Error(t, err)

	uErr, ok := err.(*apperrors.UpstreamError)
	require.True(t, ok, "expected UpstreamError, got %T", err)
	assert.Equal(t, http.StatusTooManyRequests, uErr.StatusCode)
	assert.Contains(t, string(uErr.Payload), "throttled")
}

func TestListOrdersBuildsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "any", q.Get("status"))
		assert.Equal(t, "shipped", q.Get("fulfillment_status"))
		assert.Equal(t, "250", q.Get("limit"))
		assert.Equal(t, "17", q.Get("since_id"))
		assert.Equal(t, "99", q.Get("customer_id"))
		fmt.Fprint(w, `{"orders": []}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListOrders(context.Background(), OrderListParams{
		SinceID:    17,
		CustomerID: 99,
	})
	require.NoError(t, err)
}

func TestNewClientNormalizesDomain(t *testing.T) {
	c := NewClient(
		config.ShopifyConfig{ShopDomain: "example.myshopify.com/", AccessToken: "t", APIVersion: "2026-01"},
		config.RateLimitConfig{},
		nil,
	)
	assert.Equal(t, "https://example.myshopify.com", c.baseURL)

	// An explicit scheme is kept (test servers)
	c = NewClient(
		config.ShopifyConfig{ShopDomain: "http://127.0.0.1:9999", AccessToken: "t", APIVersion: "2026-01"},
		config.RateLimitConfig{},
		nil,
	)
	assert.Equal(t, "http://127.0.0.1:9999", c.baseURL)
}
