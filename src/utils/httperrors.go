package utils

import (
	"encoding/json"
	"net/http"
)

// Error kinds surfaced to clients alongside the message. Handlers map them to
// response codes; nothing else about an internal failure leaks out.
const (
	KindValidation  = "validation"
	KindUpstream    = "upstream"
	KindPersistence = "persistence"
	KindNotFound    = "not_found"
	KindInternal    = "internal"
)

// HTTPError is a typed error carrying an HTTP status code and an error kind.
type HTTPError struct {
	Code    int    `json:"-"`
	Kind    string `json:"kind"`
	Message string `json:"error"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with a custom status code, kind and message.
func NewHTTPError(code int, kind, message string) error {
	return &HTTPError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// ValidationError rejects malformed or missing request fields (400).
func ValidationError(message string) error {
	return NewHTTPError(http.StatusBadRequest, KindValidation, message)
}

// UpstreamError reports a market-data gateway failure (502).
func UpstreamError(message string) error {
	return NewHTTPError(http.StatusBadGateway, KindUpstream, message)
}

// UnresolvablePrice reports a ticker the gateway could not price (400).
func UnresolvablePrice(message string) error {
	return NewHTTPError(http.StatusBadRequest, KindUpstream, message)
}

// PersistenceError reports a store write/read failure (500).
func PersistenceError(message string) error {
	return NewHTTPError(http.StatusInternalServerError, KindPersistence, message)
}

// NotFound reports an absent resource, e.g. an unset preference key (404).
func NotFound(message string) error {
	return NewHTTPError(http.StatusNotFound, KindNotFound, message)
}

// InternalServerError is the generic fallback (500).
func InternalServerError(message string) error {
	return NewHTTPError(http.StatusInternalServerError, KindInternal, message)
}

// WriteError sends the error response as JSON.
func WriteError(w http.ResponseWriter, err error) {
	httpErr, ok := err.(*HTTPError)
	if !ok {
		httpErr = &HTTPError{
			Code:    http.StatusInternalServerError,
			Kind:    KindInternal,
			Message: "Internal Server Error",
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Code)
	_ = json.NewEncoder(w).Encode(httpErr)
}
