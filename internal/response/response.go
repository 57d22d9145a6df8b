// Package response provides small helpers for writing JSON API responses.
//
// Unlike a generic success envelope, the bodies here follow the exact wire
// contract of the webhook API: success payloads are returned as-is and errors
// carry a single "detail" field with a human-readable reason.
package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the uniform error response shape.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// RespondJSON writes payload as the response body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(w, status, payload)
}

// RespondError writes an error response with the given status code and reason.
func RespondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorBody{Detail: msg})
}

// writeJSON encodes v as JSON and writes it to the response writer.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
