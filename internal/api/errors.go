package api

import (
	"encoding/json"
	"net/http"
)

// HTTPError is an error with an associated HTTP status code
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

var (
	errBadRequest = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	errNotFound   = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	errBadGateway = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadGateway, msg) }
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err *HTTPError) {
	writeJSON(w, err.Code, err)
}
