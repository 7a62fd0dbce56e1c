package api

import (
	"github.com/dukerupert/sif/internal/domain"
)

func newAPIError(code, message string) error {
	return &domain.Error{Code: code, Op: "api", Message: message}
}

func wrapInternal(err error, message string) error {
	return domain.Internal(err, "api", message)
}
