package errors

import "fmt"

// ErrValidation is returned when request validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// UpstreamError is returned when a Shopify call fails. StatusCode carries the
// upstream HTTP status when one was received (0 for transport errors) and
// Payload the raw upstream response body, so handlers can propagate both.
type UpstreamError struct {
	StatusCode int
	Payload    []byte
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("shopify API error: status %d, body: %s", e.StatusCode, string(e.Payload))
	}
	if e.Message != "" {
		return e.Message
	}
	return "shopify API error"
}

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
