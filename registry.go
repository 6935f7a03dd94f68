package reqcheck

import (
	"fmt"
	"sort"

	"github.com/labstack/echo/v4"
)

// Registry records the route-to-schema bindings of an application so they can
// be inspected after startup, e.g. to list which routes validate which
// components. It is an explicit object owned by the caller rather than hidden
// package state.
//
// Bindings are registered while routes are set up and the registry is
// read-only afterwards, so concurrent readers need no locking.
type Registry struct {
	bindings map[string]*Binding
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]*Binding)}
}

// Validate builds validation middleware exactly like the package-level
// Validate and records the binding under route, conventionally
// "METHOD /path". Registering the same route twice is a programming error
// and panics at startup.
func (r *Registry) Validate(route string, opts ...Option) echo.MiddlewareFunc {
	if _, exists := r.bindings[route]; exists {
		panic(fmt.Sprintf("reqcheck: route %q already has a validation binding", route))
	}
	b := newBinding(opts...)
	r.bindings[route] = b
	return b.middleware()
}

// Binding returns the binding registered for route.
func (r *Registry) Binding(route string) (*Binding, bool) {
	b, ok := r.bindings[route]
	return b, ok
}

// Routes returns all registered routes in sorted order.
func (r *Registry) Routes() []string {
	routes := make([]string, 0, len(r.bindings))
	for route := range r.bindings {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}
