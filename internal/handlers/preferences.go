package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/twelve-principles/site/internal/locale"
	"github.com/twelve-principles/site/internal/observability"
	"github.com/twelve-principles/site/internal/theme"
)

// Preferences writes the cookies behind the theme and language switchers.
type Preferences struct {
	// SecureCookies marks written cookies Secure (production).
	SecureCookies bool
}

// Theme handles POST {api}/preferences/theme with a "theme" form value. The cookie
// is what the next server-rendered shell reads to pick its initial class.
func (p Preferences) Theme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "malformed form body")
		return
	}
	pref, ok := theme.ParsePreference(r.FormValue("theme"))
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_theme", "theme must be light, dark or system")
		return
	}
	logger := observability.FromContext(r.Context())
	// A request-scoped provider with no storage and no media query: only the
	// cookie side of persistence applies on the server.
	prov := theme.NewProvider(theme.NewRoot(), nil, theme.ResponseCookies{W: w}, nil,
		theme.WithLogger(logger), theme.WithSecureCookie(p.SecureCookies))
	defer prov.Close()
	if err := prov.SetTheme(pref); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_theme", err.Error())
		return
	}
	logger.Debug("theme preference stored", zap.String("theme", string(pref)))
	w.WriteHeader(http.StatusNoContent)
}

// Locale handles POST {api}/preferences/locale with a "locale" form value, stores
// preferred-locale and sends the visitor to that locale's home page.
func (p Preferences) Locale(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "malformed form body")
		return
	}
	l, ok := locale.Parse(r.FormValue("locale"))
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_locale", "locale must be en or zh")
		return
	}
	http.SetCookie(w, locale.Cookie(l, p.SecureCookies))
	observability.FromContext(r.Context()).Debug("locale preference stored", zap.String("locale", l.String()))
	http.Redirect(w, r, l.Path("/"), http.StatusSeeOther)
}

// Healthz answers liveness probes.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
