package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/twelve-principles/site/internal/content"
	"github.com/twelve-principles/site/internal/handlers"
	"github.com/twelve-principles/site/internal/locale"
	mw "github.com/twelve-principles/site/internal/middleware"
	"github.com/twelve-principles/site/internal/nav"
	"github.com/twelve-principles/site/internal/observability"
	"github.com/twelve-principles/site/internal/seo"
)

// pageLocale reads the {locale} segment. Unknown segments are a 404.
func (a *app) pageLocale(w http.ResponseWriter, r *http.Request) (locale.Locale, bool) {
	l, ok := locale.Parse(chi.URLParam(r, "locale"))
	if !ok {
		a.notFound(w, r)
	}
	return l, ok
}

func (a *app) home(w http.ResponseWriter, r *http.Request) {
	l, ok := a.pageLocale(w, r)
	if !ok {
		return
	}
	page, err := a.content.Get(l.String(), "home")
	if err != nil && !errors.Is(err, content.ErrNotFound) {
		observability.FromContext(r.Context()).Error("load home content", zap.Error(err))
	}

	vm := a.site.Page(r, l, page.Title, page.Description)
	vm.Body = page.HTML
	vm.Principles = a.site.Principles(l)
	vm.SEO.JSONLD = []string{seo.JSON(seo.WebSite(vm.SiteName, vm.SEO.Canonical, vm.Lang))}
	a.renderer.render(w, r, http.StatusOK, "home", vm)
}

func (a *app) principles(w http.ResponseWriter, r *http.Request) {
	l, ok := a.pageLocale(w, r)
	if !ok {
		return
	}
	vm := a.site.Page(r, l, a.site.Bundle.T(l.String(), "nav.principles"), "")
	vm.Principles = a.site.Principles(l)
	vm.SEO.JSONLD = []string{a.breadcrumbsJSON(l, vm.Breadcrumbs)}
	a.renderer.render(w, r, http.StatusOK, "principles", vm)
}

func (a *app) principle(w http.ResponseWriter, r *http.Request) {
	l, ok := a.pageLocale(w, r)
	if !ok {
		return
	}
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		a.notFound(w, r)
		return
	}
	p, ok := a.site.Principle(l, n)
	if !ok {
		a.notFound(w, r)
		return
	}

	vm := a.site.Page(r, l, p.Title, p.Summary)
	vm.Principle = &p
	if prev, ok := a.site.Principle(l, n-1); ok {
		vm.Prev = &prev
	}
	if next, ok := a.site.Principle(l, n+1); ok {
		vm.Next = &next
	}
	vm.SEO.OG.Type = "article"
	vm.SEO.JSONLD = []string{
		seo.JSON(seo.Article(p.Title, vm.SEO.Canonical, vm.Lang)),
		a.breadcrumbsJSON(l, vm.Breadcrumbs),
	}
	a.renderer.render(w, r, http.StatusOK, "principle", vm)
}

// notFound answers JSON under the API prefix and the localized 404 page elsewhere.
func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	if a.isAPI(r.URL.Path) {
		handlers.WriteError(w, r, http.StatusNotFound, "not_found", "no such endpoint")
		return
	}
	l := mw.LocaleFromContext(r.Context())
	vm := a.site.Page(r, l, a.site.Bundle.T(l.String(), "error.not_found"), "")
	vm.Breadcrumbs = nil
	a.renderer.render(w, r, http.StatusNotFound, "not_found", vm)
}

func (a *app) breadcrumbsJSON(l locale.Locale, crumbs []nav.Crumb) string {
	base := strings.TrimRight(a.site.BaseURL, "/")
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = a.site.Bundle.T(l.String(), c.LabelKey)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: base + c.Href})
	}
	return seo.JSON(seo.BreadcrumbList(items))
}
