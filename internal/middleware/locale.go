package middleware

import (
	"net/http"

	"github.com/twelve-principles/site/internal/locale"
)

// LocaleRouter redirects the site root to the visitor's locale. A valid
// preferred-locale cookie wins; otherwise Accept-Language decides between zh and en.
// Every other path goes to next untouched.
//
// Callers must only route content paths here; see RouteFilter.
func LocaleRouter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			next.ServeHTTP(w, r)
			return
		}
		target := *r.URL
		target.Path = "/" + locale.FromRequest(r).String()
		target.RawPath = ""
		http.Redirect(w, r, target.String(), http.StatusTemporaryRedirect)
	})
}

// LocalePrefix maps locale-naive paths onto locale-prefixed routes. A path that
// already starts with a locale passes through; anything else is rewritten in place
// (no redirect) to the locale detected from the request. The chosen locale is stored
// in the request context and announced in Content-Language.
func LocalePrefix(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l, _, ok := locale.FromPath(r.URL.Path)
		if !ok {
			l = locale.FromRequest(r)
		}
		w.Header().Set("Content-Language", l.Tag().String())
		req := r.WithContext(WithLocale(r.Context(), l))
		if !ok {
			u := *r.URL
			u.Path = l.Path(r.URL.Path)
			u.RawPath = ""
			req.URL = &u
		}
		next.ServeHTTP(w, req)
	})
}

// VaryLocale marks responses as depending on the language inputs.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Accept-Language")
		w.Header().Add("Vary", "Cookie")
		next.ServeHTTP(w, r)
	})
}
