package reqcheck

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorHandler renders a ValidationError as an HTTP response.
type ErrorHandler func(c echo.Context, ve *ValidationError) error

// errorResponse is the wire shape of the default 400 response.
type errorResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Component Component    `json:"component"`
	Errors    []FieldError `json:"errors"`
}

// DefaultErrorHandler writes the standard validation failure response:
// HTTP 400 with the failing component name and one entry per failing field.
func DefaultErrorHandler(c echo.Context, ve *ValidationError) error {
	return c.JSON(http.StatusBadRequest, errorResponse{
		Code:      "VALIDATION_FAILED",
		Message:   "Request validation failed",
		Component: ve.Component,
		Errors:    ve.Fields,
	})
}

// ReqCheck is the optional extension that hooks validation failure rendering
// into an Echo application. Without it, *ValidationError reaches the
// application's own HTTPErrorHandler and must be handled there.
type ReqCheck struct {
	handler ErrorHandler
	logger  zerolog.Logger
}

// ExtensionOption configures the ReqCheck extension.
type ExtensionOption func(*ReqCheck)

// WithErrorHandler replaces DefaultErrorHandler as the renderer for
// validation failures.
func WithErrorHandler(h ErrorHandler) ExtensionOption {
	return func(rc *ReqCheck) { rc.handler = h }
}

// WithExtensionLogger sets the logger used when the error handler itself
// fails. Defaults to a no-op logger.
func WithExtensionLogger(logger zerolog.Logger) ExtensionOption {
	return func(rc *ReqCheck) { rc.logger = logger }
}

// New builds the extension. Call Init to attach it to an Echo instance.
func New(opts ...ExtensionOption) *ReqCheck {
	rc := &ReqCheck{
		handler: DefaultErrorHandler,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Init installs the extension's error handling on e. The existing
// HTTPErrorHandler is wrapped, not replaced: errors other than
// *ValidationError pass through to it untouched.
func (rc *ReqCheck) Init(e *echo.Echo) {
	previous := e.HTTPErrorHandler
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			previous(err, c)
			return
		}
		if c.Response().Committed {
			return
		}
		if herr := rc.handler(c, ve); herr != nil {
			rc.logger.Error().Err(herr).Msg("validation error handler failed")
		}
	}
}
