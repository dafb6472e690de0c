package session

import (
	"strings"
	"sync"
)

// Route is one navigation target: the concrete path plus the parameters
// extracted from it. Parameters are immutable for the lifetime of a
// navigation.
type Route struct {
	Path   string
	params map[string]string
}

// Param returns the named path parameter, or "" when absent. Missing
// parameters are non-fatal by contract.
func (r Route) Param(name string) string {
	return r.params[name]
}

// NewRoute builds a route with explicit parameters, mostly for tests and
// adapters that already resolved them.
func NewRoute(path string, params map[string]string) Route {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return Route{Path: path, params: copied}
}

// MatchRoute matches a concrete path against a pattern with ":name"
// segments, e.g. "/lobby/:spaceId/stream/:streamId".
func MatchRoute(pattern, path string) (Route, bool) {
	patternSegs := splitPath(pattern)
	pathSegs := splitPath(path)
	if len(patternSegs) != len(pathSegs) {
		return Route{}, false
	}

	params := make(map[string]string)
	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, ":") {
			params[seg[1:]] = pathSegs[i]
			continue
		}
		if seg != pathSegs[i] {
			return Route{}, false
		}
	}
	return Route{Path: path, params: params}, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// RouteDef binds a pattern to an optional guard and handler.
type RouteDef struct {
	Pattern string
	Guard   *Guard
	Handler func(route Route)
}

// Router is a minimal navigation table in the shape of the original client's
// routing module. It exists so guards and the lobby resolver are testable
// against real navigations; production frontends integrate through the
// go-router and fiber adapters instead.
type Router struct {
	mu       sync.Mutex
	routes   []RouteDef
	current  Route
	rejected string
	logger   Logger
}

// NewRouter creates an empty route table.
func NewRouter() *Router {
	return &Router{logger: defLogger{}}
}

// Handle appends a route definition. Routes match in registration order.
func (r *Router) Handle(pattern string, guard *Guard, handler func(route Route)) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, RouteDef{Pattern: pattern, Guard: guard, Handler: handler})
	return r
}

// Navigate resolves the target against the table, runs the route's guard
// once, and on allowance makes the route current and invokes its handler.
// Denied targets are remembered so a later login can return to them.
func (r *Router) Navigate(path ...string) {
	target := joinPath(path)

	r.mu.Lock()
	routes := make([]RouteDef, len(r.routes))
	copy(routes, r.routes)
	r.mu.Unlock()

	for _, def := range routes {
		route, ok := MatchRoute(def.Pattern, target)
		if !ok {
			continue
		}

		if def.Guard != nil && !def.Guard.CanActivate(route) {
			r.mu.Lock()
			r.rejected = target
			r.mu.Unlock()
			return
		}

		r.mu.Lock()
		r.current = route
		r.mu.Unlock()

		if def.Handler != nil {
			def.Handler(route)
		}
		return
	}

	r.logger.Debug("no route matches %q", target)
}

// Current returns the route of the last allowed navigation.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// ConsumeRedirect returns the last denied target and clears it, or def when
// none was remembered.
func (r *Router) ConsumeRedirect(def string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rejected == "" {
		return def
	}
	target := r.rejected
	r.rejected = ""
	return target
}

func joinPath(path []string) string {
	parts := make([]string, 0, len(path))
	for _, p := range path {
		p = strings.Trim(p, "/")
		if p != "" {
			parts = append(parts, p)
		}
	}
	return "/" + strings.Join(parts, "/")
}
