package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/middleware"
)

// ============================================================================
// JSON RESPONSE HELPERS
// ============================================================================

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// RespondError writes err as a JSON error envelope, mapping the domain error
// code to an HTTP status. Validation errors include per-field messages.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := middleware.ErrorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"status", status,
	}
	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	body := map[string]interface{}{
		"error": domain.ErrorMessage(err),
		"code":  code,
	}
	if fields := domain.GetValidationFields(err); len(fields) > 0 {
		body["fields"] = fields
	}

	RespondJSON(w, status, body)
}

// errEmptyBody marks a missing request body so optional-body endpoints can
// tolerate it.
var errEmptyBody = domain.Invalid("handler.decode", "Request body is required")

// decodeJSON reads the request body into v. Malformed or empty bodies map to
// EINVALID so the client gets a 400 rather than a 500.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return domain.Invalid("handler.decode", "Invalid JSON in request body")
	}
	return nil
}

// decodeJSONOptional is decodeJSON for endpoints where an empty body is a
// valid request; v is left zero-valued in that case.
func decodeJSONOptional(r *http.Request, v interface{}) error {
	err := decodeJSON(r, v)
	if err != nil && errors.Is(err, errEmptyBody) {
		return nil
	}
	return err
}

// pathID parses the named path segment as a positive int64.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("handler.path", "Invalid "+name+" in URL")
	}
	return id, nil
}
