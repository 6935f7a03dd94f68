package main

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/reqcheck/echo-reqcheck"
)

const (
	// requestIDHeader carries the request correlation ID.
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID ensures every request has a correlation ID: the incoming
// X-Request-ID header is reused when present, otherwise a UUID is generated.
// The ID is stored in the Echo context and echoed on the response.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			c.Set(requestIDKey, id)
			c.Response().Header().Set(requestIDHeader, id)
			return next(c)
		}
	}
}

// requestLogger emits one structured log line per request. When the handler
// returned an error the final status is not written yet, so it is derived
// from the error type: validation failures log as 400, Echo errors carry
// their own code.
func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogMethod:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil {
				var vErr *reqcheck.ValidationError
				var echoErr *echo.HTTPError
				if errors.As(v.Error, &vErr) {
					status = 400
				} else if errors.As(v.Error, &echoErr) {
					status = echoErr.Code
				}
			}

			reqID, _ := c.Get(requestIDKey).(string)
			event := logger.Info()
			if status >= 500 {
				event = logger.Error()
			} else if status >= 400 {
				event = logger.Warn()
			}
			event.
				Str("request_id", reqID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", status).
				Dur("latency", v.Latency).
				Err(v.Error).
				Msg("request")
			return nil
		},
	})
}
