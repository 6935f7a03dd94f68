package reqcheck

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
)

// validRequestKey is the echo.Context storage key for the current request's
// ValidRequest. Echo's context store is request-scoped, so concurrent
// requests never observe each other's validated data.
const validRequestKey = "reqcheck_valid_request"

// ValidRequest holds the successfully validated data for one request, keyed
// by component. A nil component means no schema was configured for it on this
// route; that is distinct from a validated-but-empty value.
//
// Body, Query and Form hold a pointer to the schema struct type bound for
// that component. Path holds either a pointer to the bound path schema
// struct, or a map[string]any of coerced values when the route declared
// parameter types with PathTypes.
//
// A ValidRequest is created once per request by the validation middleware and
// becomes unreachable when the request completes. It must not be retained
// across requests.
type ValidRequest struct {
	Body  any
	Query any
	Path  any
	Form  any
}

// ToMap returns the configured components as a map, omitting absent ones.
// Handlers typically feed this straight to c.JSON.
func (vr *ValidRequest) ToMap() map[string]any {
	m := make(map[string]any, 4)
	if vr.Body != nil {
		m[string(ComponentBody)] = vr.Body
	}
	if vr.Query != nil {
		m[string(ComponentQuery)] = vr.Query
	}
	if vr.Path != nil {
		m[string(ComponentPath)] = vr.Path
	}
	if vr.Form != nil {
		m[string(ComponentForm)] = vr.Form
	}
	return m
}

// MarshalJSON renders the ValidRequest in its ToMap form, so absent
// components are omitted rather than serialized as null.
func (vr *ValidRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(vr.ToMap())
}

// PathParams returns the coerced path parameters when the route declared them
// with PathTypes, or nil when a struct schema (or nothing) was configured.
func (vr *ValidRequest) PathParams() map[string]any {
	params, ok := vr.Path.(map[string]any)
	if !ok {
		return nil
	}
	return params
}

// FromContext returns the current request's ValidRequest.
//
// It fails with ErrNoValidRequest when called outside a validated request,
// i.e. from a handler that was not wrapped by this package's middleware.
// That is an integration bug, so no empty default is ever returned.
func FromContext(c echo.Context) (*ValidRequest, error) {
	vr, ok := c.Get(validRequestKey).(*ValidRequest)
	if !ok {
		return nil, ErrNoValidRequest
	}
	return vr, nil
}

// MustFromContext is like FromContext but panics when no validated request is
// attached to the context.
func MustFromContext(c echo.Context) *ValidRequest {
	vr, err := FromContext(c)
	if err != nil {
		panic(err)
	}
	return vr
}

// BodyAs returns the validated body as *T, or false when the body component
// is absent or bound to a different type.
func BodyAs[T any](vr *ValidRequest) (*T, bool) {
	return as[T](vr.Body)
}

// QueryAs returns the validated query as *T.
func QueryAs[T any](vr *ValidRequest) (*T, bool) {
	return as[T](vr.Query)
}

// PathAs returns the validated path parameters as *T. It only applies when
// the route bound an explicit path schema struct.
func PathAs[T any](vr *ValidRequest) (*T, bool) {
	return as[T](vr.Path)
}

// FormAs returns the validated form data as *T.
func FormAs[T any](vr *ValidRequest) (*T, bool) {
	return as[T](vr.Form)
}

func as[T any](v any) (*T, bool) {
	t, ok := v.(*T)
	return t, ok
}
