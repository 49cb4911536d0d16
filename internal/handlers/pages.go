package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/twelve-principles/site/internal/i18n"
	"github.com/twelve-principles/site/internal/locale"
	"github.com/twelve-principles/site/internal/nav"
	"github.com/twelve-principles/site/internal/seo"
	"github.com/twelve-principles/site/internal/theme"
)

// PrincipleCount is the number of principles the site presents.
const PrincipleCount = 12

// PageData is the view model shared by every page using the base layout.
type PageData struct {
	Lang     string
	SiteName string
	SEO      seo.Meta

	// ThemeClass is rendered on <html> from the theme cookie; ThemeScript runs
	// before first paint.
	ThemeClass  string
	ThemeScript template.JS
	Themes      []ThemeOption

	Path        string
	Nav         []nav.RenderedItem
	Languages   []nav.LangLink
	Breadcrumbs []nav.Crumb

	// Optional per-page payloads
	Body       template.HTML
	Principles []Principle
	Principle  *Principle
	Prev, Next *Principle
}

// ThemeOption drives the theme switcher.
type ThemeOption struct {
	Value    string
	LabelKey string
	Selected bool
}

// Principle is one entry of the methodology.
type Principle struct {
	Number  int
	Href    string
	Title   string
	Summary string
}

// Site carries what every page view model needs.
type Site struct {
	Bundle  *i18n.Bundle
	BaseURL string
	// Name overrides the translated site.name when set.
	Name string
}

func (s Site) name(l locale.Locale) string {
	if s.Name != "" && l == locale.Default {
		return s.Name
	}
	return s.Bundle.T(l.String(), "site.name")
}

// Page builds the common view model for r rendered in l.
func (s Site) Page(r *http.Request, l locale.Locale, title, description string) PageData {
	_, naive, _ := locale.FromPath(r.URL.Path)
	name := s.name(l)
	if description == "" {
		description = s.Bundle.T(l.String(), "site.description")
	}
	pref := theme.PreferenceFromRequest(r)
	return PageData{
		Lang:        l.Tag().String(),
		SiteName:    name,
		SEO:         seo.Build(l, name, s.BaseURL, naive, title, description),
		ThemeClass:  theme.ShellClass(r),
		ThemeScript: template.JS(theme.Script()),
		Themes:      themeOptions(pref),
		Path:        r.URL.Path,
		Nav:         nav.Build(l, r.URL.Path),
		Languages:   nav.Languages(l, r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(l, r.URL.Path),
	}
}

func themeOptions(current theme.Preference) []ThemeOption {
	prefs := []theme.Preference{theme.Light, theme.Dark, theme.System}
	out := make([]ThemeOption, 0, len(prefs))
	for _, p := range prefs {
		out = append(out, ThemeOption{Value: string(p), LabelKey: "theme." + string(p), Selected: p == current})
	}
	return out
}

// Principles lists all principles translated into l.
func (s Site) Principles(l locale.Locale) []Principle {
	out := make([]Principle, 0, PrincipleCount)
	for n := 1; n <= PrincipleCount; n++ {
		p, _ := s.Principle(l, n)
		out = append(out, p)
	}
	return out
}

// Principle returns principle n (1-based) translated into l.
func (s Site) Principle(l locale.Locale, n int) (Principle, bool) {
	if n < 1 || n > PrincipleCount {
		return Principle{}, false
	}
	key := fmt.Sprintf("principle.%02d", n)
	return Principle{
		Number:  n,
		Href:    l.Path(fmt.Sprintf("/principles/%d", n)),
		Title:   s.Bundle.T(l.String(), key+".title"),
		Summary: s.Bundle.T(l.String(), key+".summary"),
	}, true
}
