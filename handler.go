package reqcheck

import (
	"github.com/labstack/echo/v4"
)

// HandlerFunc is a route handler that receives the validated request data as
// an explicit argument instead of looking it up from the ambient context.
type HandlerFunc func(c echo.Context, vr *ValidRequest) error

// Handle runs the validation pipeline for the configured components and, on
// success, calls h with the ValidRequest. The context slot used by
// FromContext is populated as well, so both access styles work.
func Handle(h HandlerFunc, opts ...Option) echo.HandlerFunc {
	b := newBinding(opts...)
	return func(c echo.Context) error {
		vr, err := b.run(c)
		if err != nil {
			return err
		}
		c.Set(validRequestKey, vr)
		return h(c, vr)
	}
}

// HandleBody validates the JSON request body against Req and passes the
// typed result straight to h. Additional components may still be bound via
// opts and retrieved through FromContext.
func HandleBody[Req any](h func(c echo.Context, req *Req) error, opts ...Option) echo.HandlerFunc {
	opts = append([]Option{Body(new(Req))}, opts...)
	b := newBinding(opts...)
	return func(c echo.Context) error {
		vr, err := b.run(c)
		if err != nil {
			return err
		}
		c.Set(validRequestKey, vr)
		return h(c, vr.Body.(*Req))
	}
}
