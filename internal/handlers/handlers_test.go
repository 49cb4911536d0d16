package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	site "github.com/twelve-principles/site"
	"github.com/twelve-principles/site/internal/i18n"
	"github.com/twelve-principles/site/internal/locale"
	"github.com/twelve-principles/site/internal/theme"
)

func formRequest(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestThemePreferenceSetsCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	Preferences{}.Theme(rec, formRequest("/api/preferences/theme", url.Values{"theme": {"dark"}}))

	require.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, theme.CookieName, c.Name)
	assert.Equal(t, "dark", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 365*24*60*60, c.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.False(t, c.HttpOnly)
}

func TestThemePreferenceRejectsUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	Preferences{}.Theme(rec, formRequest("/api/preferences/theme", url.Values{"theme": {"sepia"}}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_theme", body["error"])
	assert.EqualValues(t, http.StatusBadRequest, body["status"])
}

func TestLocalePreferenceRedirects(t *testing.T) {
	rec := httptest.NewRecorder()
	Preferences{SecureCookies: true}.Locale(rec, formRequest("/api/preferences/locale", url.Values{"locale": {"zh"}}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/zh", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, locale.CookieName, cookies[0].Name)
	assert.Equal(t, "zh", cookies[0].Value)
	assert.True(t, cookies[0].Secure)
}

func TestLocalePreferenceRejectsUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	Preferences{}.Locale(rec, formRequest("/api/preferences/locale", url.Values{"locale": {"fr"}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func testSite(t *testing.T) Site {
	t.Helper()
	b, err := i18n.Load(site.Files, "locales", "en", []string{"en", "zh"})
	require.NoError(t, err)
	return Site{Bundle: b, BaseURL: "https://example.org"}
}

func TestPageDataFromRequest(t *testing.T) {
	s := testSite(t)
	r := httptest.NewRequest(http.MethodGet, "/zh/principles/3", nil)
	r.AddCookie(&http.Cookie{Name: theme.CookieName, Value: "dark"})

	vm := s.Page(r, locale.ZH, "小步前进", "")
	assert.Equal(t, "zh", vm.Lang)
	assert.Equal(t, "十二原则", vm.SiteName)
	assert.Equal(t, "dark", vm.ThemeClass)
	assert.Contains(t, string(vm.ThemeScript), "theme-ready")
	assert.Equal(t, "https://example.org/zh/principles/3", vm.SEO.Canonical)
	assert.Equal(t, "/en/principles/3", vm.Languages[0].Href)
	require.Len(t, vm.Themes, 3)
	assert.True(t, vm.Themes[1].Selected)
}

func TestPrinciples(t *testing.T) {
	s := testSite(t)
	all := s.Principles(locale.EN)
	require.Len(t, all, PrincipleCount)
	assert.Equal(t, "/en/principles/1", all[0].Href)
	assert.Equal(t, "Start from the problem", all[0].Title)

	p, ok := s.Principle(locale.ZH, 12)
	require.True(t, ok)
	assert.Equal(t, "持续学习", p.Title)

	_, ok = s.Principle(locale.EN, 13)
	assert.False(t, ok)
	_, ok = s.Principle(locale.EN, 0)
	assert.False(t, ok)
}
