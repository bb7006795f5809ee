package httputil

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

// genericInternalMessage replaces the message of every internal error so
// wrapped causes never reach the client.
const genericInternalMessage = "An unexpected error occurred"

// ErrorResponse is the single JSON shape for every error the server returns.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	RetryAfter *int   `json:"retry_after,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent, an encoding failure can only truncate the body.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError centralizes domain error translation to HTTP responses.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeInternal
	message := genericInternalMessage

	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		code = domainErr.Code
		if code != dErrors.CodeInternal && domainErr.Message != "" {
			message = domainErr.Message
		}
	}

	switch code {
	case dErrors.CodeUnauthorized, dErrors.CodeTokenInvalid, dErrors.CodeTokenExpired:
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	if code == dErrors.CodeTokenInvalid || code == dErrors.CodeTokenExpired {
		message = "Could not validate credentials"
	}

	WriteJSON(w, DomainCodeToHTTPStatus(code), NewErrorResponse(r, DomainCodeToTitle(code), message))
}

// WriteRateLimited writes the 429 response with the Retry-After header.
func WriteRateLimited(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	seconds := RetryAfterSeconds(retryAfter)
	w.Header().Set("Retry-After", strconv.Itoa(seconds))

	resp := NewErrorResponse(r, DomainCodeToTitle(dErrors.CodeRateLimited),
		"Too many requests. Please try again later.")
	resp.RetryAfter = &seconds
	WriteJSON(w, http.StatusTooManyRequests, resp)
}

// RetryAfterSeconds rounds a backoff up to whole seconds, never below one.
func RetryAfterSeconds(d time.Duration) int {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}

// NewErrorResponse stamps title and message with the request time and path.
func NewErrorResponse(r *http.Request, title, message string) ErrorResponse {
	return ErrorResponse{
		Error:     title,
		Message:   message,
		Timestamp: requestcontext.Now(r.Context()).UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	}
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized, dErrors.CodeTokenInvalid, dErrors.CodeTokenExpired:
		return http.StatusUnauthorized
	case dErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToTitle returns the short human-readable "error" field.
func DomainCodeToTitle(code dErrors.Code) string {
	switch code {
	case dErrors.CodeNotFound:
		return "Not found"
	case dErrors.CodeBadRequest:
		return "Bad request"
	case dErrors.CodeValidation:
		return "Validation error"
	case dErrors.CodeUnauthorized, dErrors.CodeTokenInvalid, dErrors.CodeTokenExpired:
		return "Unauthorized"
	case dErrors.CodeRateLimited:
		return "Rate limit exceeded"
	case dErrors.CodeTimeout:
		return "Upstream timeout"
	case dErrors.CodeUnavailable:
		return "Service unavailable"
	default:
		return "Internal server error"
	}
}
