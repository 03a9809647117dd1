package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jafarshop/revenuereports/internal/config"
	apperrors "github.com/jafarshop/revenuereports/pkg/errors"
)

type Client struct {
	baseURL     string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new Shopify Admin API client. All outbound calls (REST
// and GraphQL) share one token-bucket limiter so the whole process stays
// under the upstream rate limit, regardless of which endpoint is driving
// the traffic.
func NewClient(cfg config.ShopifyConfig, rl config.RateLimitConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	// Normalize shop domain; an explicit scheme is kept as-is so the client
	// can be pointed at a local server.
	baseURL := strings.TrimSuffix(cfg.ShopDomain, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	rps := rl.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := rl.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Execute executes a GraphQL query/mutation
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/admin/api/%s/graphql.json", c.baseURL, c.apiVersion)

	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.UpstreamError{Message: fmt.Sprintf("failed to execute request: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.UpstreamError{StatusCode: resp.StatusCode, Payload: body}
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	if len(graphQLResp.Errors) > 0 {
		errorMessages := make([]string, len(graphQLResp.Errors))
		for i, err := range graphQLResp.Errors {
			errorMessages[i] = err.Message
		}
		return nil, fmt.Errorf("graphQL errors: %s", strings.Join(errorMessages, "; "))
	}

	return &graphQLResp, nil
}

// OrderGID builds a Shopify order GID from its numeric ID
func OrderGID(orderID int64) string {
	return fmt.Sprintf("gid://shopify/Order/%d", orderID)
}
