package vault

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/otpvault/binder"
	"github.com/dmitrymomot/otpvault/handler"
	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/codec"
	"github.com/dmitrymomot/otpvault/pkg/importer"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

var (
	ErrEmptyImport   = handler.NewHTTPError(http.StatusBadRequest, "empty_import")
	ErrInvalidSecret = handler.NewHTTPError(http.StatusUnprocessableEntity, "invalid_secret")
	ErrUnsupported   = handler.NewHTTPError(http.StatusUnprocessableEntity, "unsupported_content")
	ErrNoScanner     = handler.NewHTTPError(http.StatusNotImplemented, "image_import_disabled")
	ErrUnhealthy     = handler.NewHTTPError(http.StatusServiceUnavailable, "unhealthy")
)

// httpError maps domain errors to HTTP errors. Errors it does not know are
// returned unchanged and render as 500.
func httpError(err error) error {
	var status handler.HTTPError
	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		status = handler.ErrUnsupportedMediaType
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidForm), errors.Is(err, binder.ErrInvalidPath):
		status = handler.ErrBadRequest
	case errors.Is(err, account.ErrDuplicate):
		status = handler.ErrConflict
	case errors.Is(err, account.ErrNotFound):
		status = handler.ErrNotFound
	case errors.Is(err, account.ErrInvalidAccount):
		status = handler.ErrBadRequest
	case errors.Is(err, importer.ErrUnsupportedContent), errors.Is(err, importer.ErrNoCode):
		status = ErrUnsupported
	case errors.Is(err, importer.ErrNoScanner):
		status = ErrNoScanner
	case errors.Is(err, codec.ErrInvalidSecretEncoding), errors.Is(err, totp.ErrInvalidSecret):
		status = ErrInvalidSecret
	default:
		return err
	}
	return fmt.Errorf("%w: %s", status, firstLine(err))
}

// firstLine keeps the message of joined errors on one line.
func firstLine(err error) string {
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}
