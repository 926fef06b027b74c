// Package router maps client locations ("/dashboard", "/category/42") to
// views. Paths are matched with a chi route tree; anything unknown resolves
// to the home page.
package router

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

type Name string

const (
	Home      Name = "home"
	Login     Name = "login"
	Dashboard Name = "dashboard"
	Category  Name = "category"
)

const (
	HomePath      = "/"
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	categoryPath  = "/category/{id}"
)

// Route is a resolved location.
type Route struct {
	Name      Name
	Pattern   string
	Path      string
	Params    map[string]string
	Protected bool
}

// Param returns a path parameter or "".
func (r Route) Param(key string) string {
	return r.Params[key]
}

// CategoryID is the {id} of a category route.
func (r Route) CategoryID() string {
	return r.Param("id")
}

// CategoryPath builds the location of a category page.
func CategoryPath(id string) string {
	return "/category/" + url.PathEscape(id)
}

type definition struct {
	name      Name
	protected bool
}

type Router struct {
	mux  *chi.Mux
	defs map[string]definition
}

func New() *Router {
	r := &Router{
		mux:  chi.NewRouter(),
		defs: make(map[string]definition),
	}

	r.add(HomePath, Home, false)
	r.add(LoginPath, Login, false)
	r.add(DashboardPath, Dashboard, true)
	r.add(categoryPath, Category, true)

	return r
}

func (r *Router) add(pattern string, name Name, protected bool) {
	r.defs[pattern] = definition{name: name, protected: protected}
	r.mux.Get(pattern, func(http.ResponseWriter, *http.Request) {})
}

// Resolve matches location against the route table. Query strings and a
// trailing slash are ignored. Unknown locations resolve to the home route.
func (r *Router) Resolve(location string) Route {
	path := normalize(location)

	rctx := chi.NewRouteContext()
	if r.mux.Match(rctx, http.MethodGet, path) {
		pattern := rctx.RoutePattern()
		if def, ok := r.defs[pattern]; ok {
			route := Route{
				Name:      def.name,
				Pattern:   pattern,
				Path:      path,
				Params:    make(map[string]string, len(rctx.URLParams.Keys)),
				Protected: def.protected,
			}
			for i, k := range rctx.URLParams.Keys {
				v := rctx.URLParams.Values[i]
				if unescaped, err := url.PathUnescape(v); err == nil {
					v = unescaped
				}
				route.Params[k] = v
			}
			return route
		}
	}

	return Route{Name: Home, Pattern: HomePath, Path: HomePath, Params: map[string]string{}}
}

// GuardFunc reports whether the current session may see protected routes.
type GuardFunc func(ctx context.Context) bool

// Navigate resolves location and runs allow for protected routes. A refused
// navigation resolves to the login route. allow is consulted on every call.
func (r *Router) Navigate(ctx context.Context, location string, allow GuardFunc) Route {
	route := r.Resolve(location)
	if route.Protected && (allow == nil || !allow(ctx)) {
		return r.Resolve(LoginPath)
	}
	return route
}

func normalize(location string) string {
	path := strings.TrimSpace(location)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
