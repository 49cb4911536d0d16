package nav

import (
	"path"
	"strings"

	"github.com/twelve-principles/site/internal/locale"
)

// Item represents a top-level navigation item. Paths are locale-naive.
type Item struct {
	Path     string // e.g. "/principles"
	LabelKey string // i18n key, e.g. "nav.principles"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// LangLink points at the same page in another locale.
type LangLink struct {
	Locale   locale.Locale
	Href     string
	LabelKey string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", LabelKey: "nav.home"},
	{Path: "/principles", LabelKey: "nav.principles"},
}

// Build renders navigation items for l with active state given the current
// locale-prefixed path.
func Build(l locale.Locale, currentPath string) []RenderedItem {
	naive := stripLocale(currentPath)
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     l.Path(it.Path),
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, naive),
		})
	}
	return items
}

// Languages links the current page to each supported locale.
func Languages(current locale.Locale, currentPath string) []LangLink {
	naive := stripLocale(currentPath)
	out := make([]LangLink, 0, 2)
	for _, l := range locale.Supported() {
		out = append(out, LangLink{
			Locale:   l,
			Href:     l.Path(naive),
			LabelKey: "lang." + l.String(),
			Active:   l == current,
		})
	}
	return out
}

func stripLocale(p string) string {
	if p == "" {
		return "/"
	}
	if _, rest, ok := locale.FromPath(p); ok {
		return rest
	}
	return p
}

// isActive matches a section on segment boundaries; home only matches itself.
func isActive(section, naive string) bool {
	switch {
	case section == "/":
		return naive == "/"
	case naive == section:
		return true
	default:
		return strings.HasPrefix(naive, section+"/")
	}
}

func sectionKey(top string) string {
	for _, it := range Main {
		if it.Path == top {
			return it.LabelKey
		}
	}
	return ""
}

// Breadcrumbs walks the locale-prefixed path segment by segment. Home comes first,
// a known section uses its nav label key and every other segment is shown as is.
func Breadcrumbs(l locale.Locale, currentPath string) []Crumb {
	naive := path.Clean(stripLocale(currentPath))
	crumbs := []Crumb{{Href: l.Path("/"), LabelKey: "nav.home", Active: naive == "/"}}
	if naive == "/" {
		return crumbs
	}

	segments := strings.Split(naive[1:], "/")
	var href string
	for i, seg := range segments {
		href += "/" + seg
		c := Crumb{Href: l.Path(href), Label: seg, Active: i == len(segments)-1}
		if i == 0 {
			c.LabelKey = sectionKey(href)
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}
