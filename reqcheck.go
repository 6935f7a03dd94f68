package reqcheck

import (
	"fmt"
	"reflect"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Binding associates schema definitions with the request components of one
// route. It is assembled once at route registration and is immutable
// afterwards, so a single Binding is safely shared by all concurrent requests
// to its route.
type Binding struct {
	body  any
	query any
	path  any
	form  any

	pathTypes PathTypes
	engine    *Engine
	logger    zerolog.Logger
}

// Option configures a Binding at route registration time.
type Option func(*Binding)

// Body binds a schema for the JSON request body. The prototype must be a
// pointer to a struct; its field values act as defaults for absent keys.
func Body(prototype any) Option {
	checkPrototype(ComponentBody, prototype)
	return func(b *Binding) { b.body = prototype }
}

// Query binds a schema for the URL query string.
func Query(prototype any) Option {
	checkPrototype(ComponentQuery, prototype)
	return func(b *Binding) { b.query = prototype }
}

// PathSchema binds an explicit schema struct for the route's path
// parameters. Mutually exclusive with PathParams.
func PathSchema(prototype any) Option {
	checkPrototype(ComponentPath, prototype)
	return func(b *Binding) { b.path = prototype }
}

// PathParams declares the types of the route's path parameters without a
// full schema struct. Parameters missing from the declaration validate as
// strings. A non-nil empty declaration still marks the path component as
// configured.
func PathParams(types PathTypes) Option {
	if types == nil {
		panic("reqcheck: PathParams requires a non-nil declaration")
	}
	return func(b *Binding) { b.pathTypes = types }
}

// Form binds a schema for urlencoded or multipart form data.
func Form(prototype any) Option {
	checkPrototype(ComponentForm, prototype)
	return func(b *Binding) { b.form = prototype }
}

// WithEngine replaces the Engine used to validate every component of this
// binding, e.g. one built with WithDisallowUnknownFields.
func WithEngine(e *Engine) Option {
	return func(b *Binding) { b.engine = e }
}

// WithLogger sets the logger used for diagnostics such as the unvalidated
// query string warning. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Binding) { b.logger = logger }
}

// checkPrototype rejects malformed schema definitions at route registration,
// before any request is served.
func checkPrototype(component Component, prototype any) {
	if prototype == nil {
		panic(fmt.Sprintf("reqcheck: %s schema prototype must not be nil", component))
	}
	t := reflect.TypeOf(prototype)
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("reqcheck: %s schema prototype must be a pointer to a struct, got %T", component, prototype))
	}
}

func newBinding(opts ...Option) *Binding {
	b := &Binding{
		engine: defaultEngine,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.path != nil && b.pathTypes != nil {
		panic("reqcheck: PathSchema and PathParams are mutually exclusive")
	}
	return b
}

// Validate returns middleware that validates the configured components
// before the wrapped handler runs.
//
// Components run in a fixed order: path, query, body, form. Validation is
// fail-fast: the first failing component produces a *ValidationError and the
// handler is never invoked; later components are not checked. On success a
// ValidRequest is attached to the context (see FromContext) and the handler's
// response passes through unchanged.
func Validate(opts ...Option) echo.MiddlewareFunc {
	return newBinding(opts...).middleware()
}

// ValidateBody is the single-purpose variant of Validate for the request
// body component.
func ValidateBody(prototype any, opts ...Option) echo.MiddlewareFunc {
	return Validate(append([]Option{Body(prototype)}, opts...)...)
}

// ValidateQuery is the single-purpose variant of Validate for the query
// string component.
func ValidateQuery(prototype any, opts ...Option) echo.MiddlewareFunc {
	return Validate(append([]Option{Query(prototype)}, opts...)...)
}

// ValidateForm is the single-purpose variant of Validate for the form data
// component.
func ValidateForm(prototype any, opts ...Option) echo.MiddlewareFunc {
	return Validate(append([]Option{Form(prototype)}, opts...)...)
}

// ValidatePath is the single-purpose variant of Validate for path
// parameters. Without an explicit PathSchema or PathParams option every
// captured segment validates as a string.
func ValidatePath(opts ...Option) echo.MiddlewareFunc {
	b := newBinding(opts...)
	if b.path == nil && b.pathTypes == nil {
		b.pathTypes = PathTypes{}
	}
	return b.middleware()
}

func (b *Binding) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			vr, err := b.run(c)
			if err != nil {
				return err
			}
			c.Set(validRequestKey, vr)
			return next(c)
		}
	}
}

// run executes the validation pipeline for one request. The ValidRequest is
// only returned complete; a failing component aborts before any partial
// result can be observed.
func (b *Binding) run(c echo.Context) (*ValidRequest, error) {
	vr := &ValidRequest{}

	if b.path != nil {
		validated, verr := b.engine.Validate(ComponentPath, stringsToAny(extractPath(c)), b.path)
		if verr != nil {
			return nil, verr
		}
		vr.Path = validated
	} else if b.pathTypes != nil {
		coerced, fields := b.pathTypes.coerce(extractPath(c))
		if len(fields) > 0 {
			return nil, newValidationError(ComponentPath, fields)
		}
		vr.Path = coerced
	}

	if b.query != nil {
		validated, verr := b.engine.Validate(ComponentQuery, extractQuery(c), b.query)
		if verr != nil {
			return nil, verr
		}
		vr.Query = validated
	} else if len(c.QueryParams()) > 0 {
		b.logger.Warn().
			Str("path", c.Path()).
			Msg("query parameters were submitted, but no query schema was configured")
	}

	if b.body != nil {
		raw, verr := extractBody(c)
		if verr != nil {
			return nil, verr
		}
		validated, verr := b.engine.Validate(ComponentBody, raw, b.body)
		if verr != nil {
			return nil, verr
		}
		vr.Body = validated
	}

	if b.form != nil {
		validated, verr := b.engine.Validate(ComponentForm, extractForm(c), b.form)
		if verr != nil {
			return nil, verr
		}
		vr.Form = validated
	}

	return vr, nil
}

// Components lists the request components this binding validates, in
// pipeline order.
func (b *Binding) Components() []Component {
	var components []Component
	if b.path != nil || b.pathTypes != nil {
		components = append(components, ComponentPath)
	}
	if b.query != nil {
		components = append(components, ComponentQuery)
	}
	if b.body != nil {
		components = append(components, ComponentBody)
	}
	if b.form != nil {
		components = append(components, ComponentForm)
	}
	return components
}

func stringsToAny(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
