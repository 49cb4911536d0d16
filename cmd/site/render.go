package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/twelve-principles/site/internal/config"
	"github.com/twelve-principles/site/internal/i18n"
	"github.com/twelve-principles/site/internal/observability"
)

var pageNames = []string{"home", "principles", "principle", "not_found"}

// renderer owns one template set per page, since every page defines "content".
// In dev mode the sets are reparsed on each render.
type renderer struct {
	fsys  fs.FS
	dev   bool
	funcs template.FuncMap

	mu    sync.RWMutex
	pages map[string]*template.Template
}

func newRenderer(fsys fs.FS, dev bool, funcs template.FuncMap) (*renderer, error) {
	rnd := &renderer{fsys: fsys, dev: dev, funcs: funcs}
	pages, err := rnd.parse()
	if err != nil {
		return nil, err
	}
	rnd.pages = pages
	return rnd, nil
}

func (rnd *renderer) parse() (map[string]*template.Template, error) {
	layout, err := template.New("layout").Funcs(rnd.funcs).ParseFS(rnd.fsys, "layout.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if out[name], err = clone.ParseFS(rnd.fsys, "pages/"+name+".tmpl"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
	}
	return out, nil
}

func (rnd *renderer) lookup(name string) (*template.Template, error) {
	if rnd.dev {
		pages, err := rnd.parse()
		if err != nil {
			return nil, err
		}
		rnd.mu.Lock()
		rnd.pages = pages
		rnd.mu.Unlock()
	}
	rnd.mu.RLock()
	defer rnd.mu.RUnlock()
	t, ok := rnd.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	return t, nil
}

// render executes the base layout for page into a buffer first so a failing template
// never leaves a half-written 200 behind.
func (rnd *renderer) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	logger := observability.FromContext(r.Context())
	t, err := rnd.lookup(page)
	if err != nil {
		logger.Error("template lookup failed", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		logger.Error("template exec failed", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func funcMap(bundle *i18n.Bundle, routes config.RouteConfig) template.FuncMap {
	return template.FuncMap{
		"t": bundle.T,
		"asset": func(p string) string {
			return routes.InternalPrefix + "/" + p
		},
		"api": func(p string) string {
			return routes.APIPrefix + p
		},
		// JSON-LD payloads come from encoding/json, which already escapes <, > and &.
		"jsonld": func(s string) template.JS {
			return template.JS(s)
		},
	}
}
