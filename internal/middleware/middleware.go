package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/sif/internal/domain"
)

// ============================================================================
// MIDDLEWARE ERROR RESPONSE HELPERS
// ============================================================================
//
// These helpers write the same JSON error envelope the handlers use. They are
// self-contained to avoid circular imports (handler imports middleware for
// GetLogger, etc.)

type contextKey string

// respondWithError writes a JSON error response to the client.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := ErrorCodeToHTTPStatus(code)

	logger := GetLogger(r.Context())
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{
		"error", err.Error(),
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}
	if reqID := domain.RequestIDFromContext(r.Context()); reqID != "" {
		attrs = append(attrs, "request_id", reqID)
	}

	if status >= 500 {
		logger.Error("middleware error", attrs...)
	} else {
		logger.Info("middleware error", attrs...)
	}

	body := map[string]interface{}{
		"error": message,
		"code":  code,
	}
	if fields := domain.GetValidationFields(err); len(fields) > 0 {
		body["fields"] = fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondUnauthorized is a convenience wrapper for 401 errors.
func respondUnauthorized(w http.ResponseWriter, r *http.Request) {
	err := domain.Errorf(domain.EUNAUTHORIZED, "", "Authentication required")
	respondWithError(w, r, err)
}

// respondTooManyRequests is a convenience wrapper for 429 errors.
func respondTooManyRequests(w http.ResponseWriter, r *http.Request) {
	err := domain.Errorf(domain.ERATELIMIT, "", "Too many requests")
	respondWithError(w, r, err)
}

// respondTooLarge is a convenience wrapper for 413 errors.
func respondTooLarge(w http.ResponseWriter, r *http.Request, message string) {
	err := domain.Errorf(domain.ETOOLARGE, "", "%s", message)
	respondWithError(w, r, err)
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized // 401
	case domain.EPAYMENT:
		return http.StatusPaymentRequired // 402
	case domain.EFORBIDDEN:
		return http.StatusForbidden // 403
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ECONFLICT:
		return http.StatusConflict // 409
	case domain.EGONE:
		return http.StatusGone // 410
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge // 413
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests // 429
	case domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	case domain.ENOTIMPL:
		return http.StatusNotImplemented // 501
	default:
		return http.StatusInternalServerError // 500
	}
}
