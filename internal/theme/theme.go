// Package theme resolves the light/dark color theme. PrePaint runs before content is
// shown, Provider owns the theme for the lifetime of a page, and the server side reads
// the theme cookie to pick the shell's initial class.
package theme

import (
	"errors"
	"net/http"
	"time"
)

// Preference is the user's stated choice.
type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"
)

// Resolved is the theme actually applied; never "system".
type Resolved string

const (
	ResolvedLight Resolved = "light"
	ResolvedDark  Resolved = "dark"
)

const (
	// StorageKey is the local storage key read by the pre-paint script.
	StorageKey = "theme"
	// CookieName carries the preference to the server-rendered shell.
	CookieName = "theme"
	// DarkClass marks the document root as dark.
	DarkClass = "dark"
	// ReadyAttr reveals content once theming has been applied.
	ReadyAttr = "theme-ready"

	cookieMaxAge = 365 * 24 * time.Hour
)

// ErrInvalidPreference is returned by SetTheme for values outside light/dark/system.
var ErrInvalidPreference = errors.New("theme: invalid preference")

// ParsePreference accepts exactly "light", "dark" or "system".
func ParsePreference(s string) (Preference, bool) {
	switch Preference(s) {
	case Light, Dark, System:
		return Preference(s), true
	default:
		return "", false
	}
}

func resolvedOf(dark bool) Resolved {
	if dark {
		return ResolvedDark
	}
	return ResolvedLight
}

// Cookie builds the theme cookie: one year, whole site, SameSite=Lax. It is not
// HttpOnly because client code rewrites it on every change.
func Cookie(p Preference, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    string(p),
		Path:     "/",
		MaxAge:   int(cookieMaxAge / time.Second),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// PreferenceFromRequest reads the theme cookie, defaulting to System.
func PreferenceFromRequest(r *http.Request) Preference {
	if c, err := r.Cookie(CookieName); err == nil {
		if p, ok := ParsePreference(c.Value); ok {
			return p
		}
	}
	return System
}

// ShellClass is the class the server renders on <html> before any script runs.
// System leaves the decision to the pre-paint script.
func ShellClass(r *http.Request) string {
	if PreferenceFromRequest(r) == Dark {
		return DarkClass
	}
	return ""
}
