package restapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// APIError is an HTTP 4xx/5xx response decoded off the wire. Message holds
// the server's error body: either a plain string or a field->error map for
// validation failures.
type APIError struct {
	StatusCode int
	Message    interface{}
}

func (e *APIError) Error() string {
	if e.Message != nil {
		return fmt.Sprintf("api: %d: %v", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) NotFound() bool     { return e.StatusCode == http.StatusNotFound }
func (e *APIError) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	// the server wraps errors as {"error": ...}; fall back to the raw body
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	raw := body
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Error) > 0 {
		raw = envelope.Error
	}

	var asMap map[string]string
	if json.Unmarshal(raw, &asMap) == nil {
		apiErr.Message = asMap
		return apiErr
	}
	var asString string
	if json.Unmarshal(raw, &asString) == nil {
		apiErr.Message = asString
		return apiErr
	}
	apiErr.Message = string(body)
	return apiErr
}
