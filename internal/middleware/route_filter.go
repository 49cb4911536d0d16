package middleware

import (
	"net/http"
	"strings"
)

// RouteFilter decides which paths are content and therefore locale-routed. API
// routes, internal asset routes and anything that looks like a file (contains a dot)
// are not.
type RouteFilter struct {
	APIPrefix      string
	InternalPrefix string
}

// IsContent reports whether p should pass through the locale layer.
func (f RouteFilter) IsContent(p string) bool {
	if underPrefix(p, f.APIPrefix) || underPrefix(p, f.InternalPrefix) {
		return false
	}
	return !strings.Contains(p, ".")
}

func underPrefix(p, prefix string) bool {
	if prefix == "" {
		return false
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// Content applies routed only to content paths; everything else reaches next
// directly.
func Content(filter RouteFilter, routed ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		wrapped := next
		for i := len(routed) - 1; i >= 0; i-- {
			wrapped = routed[i](wrapped)
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if filter.IsContent(r.URL.Path) {
				wrapped.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
