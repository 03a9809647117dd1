package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/api"
	"github.com/jafarshop/revenuereports/internal/config"
	"github.com/jafarshop/revenuereports/internal/service"
	"github.com/jafarshop/revenuereports/internal/shopify"
)

// newTestRouter wires the real router against a stub Shopify upstream
func newTestRouter(t *testing.T, upstream http.Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := &config.Config{Environment: "test", Port: "0"}
	client := shopify.NewClient(
		config.ShopifyConfig{ShopDomain: srv.URL, AccessToken: "test-token", APIVersion: "2026-01"},
		config.RateLimitConfig{RequestsPerSecond: 10000, Burst: 10000},
		nil,
	)
	reports := service.NewReportService(client, nil, nil)
	return api.NewRouter(cfg, client, reports, zap.NewNop())
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, http.NotFoundHandler())
	w := doRequest(router, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())
}

func TestReportValidation(t *testing.T) {
	upstreamCalled := false
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
		w.Write([]byte(`{"orders": []}`))
	}))

	cases := []struct {
		name string
		body string
	}{
		{"missing start", `{"end": "2024-02-01T00:00:00Z", "metric": "billing"}`},
		{"malformed start", `{"start": "not-a-date", "end": "2024-02-01T00:00:00Z", "metric": "billing"}`},
		{"start after end", `{"start": "2024-03-01T00:00:00Z", "end": "2024-02-01T00:00:00Z", "metric": "billing"}`},
		{"invalid metric", `{"start": "2024-01-01T00:00:00Z", "end": "2024-02-01T00:00:00Z", "metric": "other"}`},
		{"missing metric", `{"start": "2024-01-01T00:00:00Z", "end": "2024-02-01T00:00:00Z"}`},
		{"not json", `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/report", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	// Client errors are rejected before any upstream call is made
	assert.False(t, upstreamCalled)
}

func TestReportPropagatesUpstreamStatus(t *testing.T) {
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"errors": "shop is frozen"}`))
	}))

	body := `{"start": "2024-01-01T00:00:00.000Z", "end": "2024-02-01T00:00:00.000Z", "metric": "billing"}`
	w := doRequest(router, http.MethodPost, "/api/report", body)

	require.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "shop is frozen")
}

func TestOrdersValidation(t *testing.T) {
	router := newTestRouter(t, http.NotFoundHandler())

	cases := []struct {
		name string
		path string
	}{
		{"missing dates", "/api/orders"},
		{"malformed start", "/api/orders?start=not-a-date&end=2024-02-01T00:00:00Z"},
		{"start after end", "/api/orders?start=2024-03-01T00:00:00Z&end=2024-02-01T00:00:00Z"},
		{"bad customer", "/api/orders?start=2024-01-01T00:00:00Z&end=2024-02-01T00:00:00Z&customerId=abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tc.path, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestOrdersReturnsWindow(t *testing.T) {
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shipped", r.URL.Query().Get("fulfillment_status"))
		assert.Equal(t, "any", r.URL.Query().Get("status"))
		fmt.Fprint(w, `{"orders": [{"id": 1, "name": "#1001"}, {"id": 2, "name": "#1002"}]}`)
	}))

	w := doRequest(router, http.MethodGet, "/api/orders?start=2024-01-01T00:00:00Z&end=2024-02-01T00:00:00Z", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count  int `json:"count"`
		Orders []struct {
			Name string `json:"name"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, "#1001", resp.Orders[0].Name)
}

func TestCustomersPassthrough(t *testing.T) {
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.URL.Query().Get("since_id"))
		fmt.Fprint(w, `{"customers": [{"id": 43, "email": "a@x.test"}]}`)
	}))

	w := doRequest(router, http.MethodGet, "/api/customers?since_id=42", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count   int  `json:"count"`
		HasMore bool `json:"hasMore"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.False(t, resp.HasMore)
}
