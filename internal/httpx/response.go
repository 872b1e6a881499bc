package httpx

import (
	"encoding/json"
	"net/http"
)

// Stable error codes used across the API. Failure causes that must not leak
// (bad password vs unknown account, missing vs foreign-tenant row) share one
// code on purpose.
const (
	CodeNotFound           = "not_found"
	CodeInvalidCredentials = "invalid_credentials"
	CodeForbidden          = "forbidden"
	CodeConflict           = "conflict"
	CodeValidationFailed   = "validation_failed"
	CodeInvalidJSON        = "invalid_json"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// NotFound writes the generic 404 used for both truly absent rows and rows
// owned by another account.
func NotFound(w http.ResponseWriter) {
	JSONError(w, http.StatusNotFound, CodeNotFound, nil)
}

// Unauthorized writes the single credentials-invalid response; the cause is
// never distinguished.
func Unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	JSONError(w, http.StatusUnauthorized, CodeInvalidCredentials, nil)
}

// Decode reads a JSON body into dst, rejecting unknown behavior silently the
// way the rest of the API does: any decode problem is an invalid_json 400.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		JSONError(w, http.StatusBadRequest, CodeInvalidJSON, nil)
		return false
	}
	return true
}
