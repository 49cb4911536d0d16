// Package locale holds the two supported site languages and the rules used to pick
// one for a request.
package locale

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Locale is a supported language variant of the site.
type Locale string

const (
	EN Locale = "en"
	ZH Locale = "zh"

	// Default is served when nothing in the request points at Chinese.
	Default = EN

	// CookieName is written by the language switcher and read by the router.
	CookieName = "preferred-locale"

	cookieMaxAge = 365 * 24 * time.Hour
)

var supported = []Locale{EN, ZH}

// zhToken matches a whole-word "zh" anywhere in an Accept-Language value.
var zhToken = regexp.MustCompile(`(?i)\bzh\b`)

// Supported returns the site locales in display order.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Parse accepts exactly "en" or "zh".
func Parse(s string) (Locale, bool) {
	switch Locale(s) {
	case EN, ZH:
		return Locale(s), true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (l Locale) String() string { return string(l) }

// Tag returns the BCP 47 tag used for Content-Language and hreflang.
func (l Locale) Tag() language.Tag {
	if l == ZH {
		return language.Chinese
	}
	return language.English
}

// FromAcceptLanguage is a binary classifier: a whole-word "zh" token selects Chinese,
// anything else (including an empty header) selects English.
func FromAcceptLanguage(header string) Locale {
	if header != "" && zhToken.MatchString(header) {
		return ZH
	}
	return EN
}

// Detect applies the selection order: a valid cookie wins, otherwise the header decides.
func Detect(cookieValue, acceptLanguage string) Locale {
	if l, ok := Parse(cookieValue); ok {
		return l
	}
	return FromAcceptLanguage(acceptLanguage)
}

// FromRequest runs Detect against the request's preferred-locale cookie and
// Accept-Language header.
func FromRequest(r *http.Request) Locale {
	var cookieValue string
	if c, err := r.Cookie(CookieName); err == nil {
		cookieValue = c.Value
	}
	return Detect(cookieValue, r.Header.Get("Accept-Language"))
}

// FromPath splits "/zh/principles/3" into (zh, "/principles/3"). The remainder is
// always rooted; a bare "/zh" yields "/".
func FromPath(p string) (Locale, string, bool) {
	trimmed := strings.TrimPrefix(p, "/")
	seg, rest, _ := strings.Cut(trimmed, "/")
	l, ok := Parse(seg)
	if !ok {
		return "", p, false
	}
	return l, "/" + rest, true
}

// Path prefixes p with the locale segment.
func (l Locale) Path(p string) string {
	if p == "" || p == "/" {
		return "/" + string(l)
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "/" + string(l) + p
}

// Cookie builds the preferred-locale cookie written by the language switcher.
func Cookie(l Locale, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    string(l),
		Path:     "/",
		MaxAge:   int(cookieMaxAge / time.Second),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
