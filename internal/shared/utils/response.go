package utils

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
)

// DefaultLimit is the page size used when the caller does not provide one.
// MaxLimit caps what a caller may request in a single page.
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// ErrorResponse is the JSON body for every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Fields  any    `json:"fields,omitempty"`
}

// ListResponse wraps paginated collections
type ListResponse struct {
	Data   any `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// WriteJSON writes data as a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes a structured JSON error response
func WriteError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	WriteJSON(w, status, resp)
}

// IsValidEmail reports whether s is a syntactically valid address
// with a dotted domain part.
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return strings.Contains(s[at+1:], ".")
}

// ParsePagination reads limit/offset query parameters, applying the
// default page size and clamping out-of-range values.
func ParsePagination(r *http.Request) (limit, offset int) {
	limit = DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
