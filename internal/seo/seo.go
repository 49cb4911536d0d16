package seo

import (
	"strings"

	"github.com/twelve-principles/site/internal/locale"
)

type OpenGraph struct {
	Title       string
	Description string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

// Alternate is one <link rel="alternate" hreflang> entry.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Alternates  []Alternate
	JSONLD      []string
}

// Alternates lists the page in every locale plus x-default, which points at the
// root so the locale router picks for the visitor.
func Alternates(baseURL, naivePath string) []Alternate {
	base := strings.TrimRight(baseURL, "/")
	out := make([]Alternate, 0, 3)
	for _, l := range locale.Supported() {
		out = append(out, Alternate{Href: base + l.Path(naivePath), Hreflang: l.Tag().String()})
	}
	return append(out, Alternate{Href: base + "/", Hreflang: "x-default"})
}

// ogLocale maps a locale to the Open Graph territory form.
func ogLocale(l locale.Locale) string {
	if l == locale.ZH {
		return "zh_CN"
	}
	return "en_US"
}

// Build assembles page metadata for l at the locale-naive path.
func Build(l locale.Locale, siteName, baseURL, naivePath, title, description string) Meta {
	base := strings.TrimRight(baseURL, "/")
	canonical := base + l.Path(naivePath)
	full := siteName
	if title != "" && title != siteName {
		full = title + " | " + siteName
	}
	return Meta{
		Title:       full,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       full,
			Description: description,
			Type:        "website",
			URL:         canonical,
			SiteName:    siteName,
			Locale:      ogLocale(l),
		},
		Alternates: Alternates(baseURL, naivePath),
	}
}
