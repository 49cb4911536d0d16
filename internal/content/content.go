// Package content loads the localized Markdown pages that ship with the site and
// renders them to sanitized HTML once at startup.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned for a slug/lang pair with no page.
var ErrNotFound = errors.New("content: not found")

// Page is a rendered Markdown page.
type Page struct {
	Slug        string
	Lang        string
	Title       string
	Description string
	HTML        template.HTML
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Store holds every page keyed by lang and slug.
type Store struct {
	pages map[string]Page
}

// Load walks <dir>/<lang>/*.md in fsys for each language and renders them.
func Load(fsys fs.FS, dir string, langs []string) (*Store, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Typographer))
	policy := bluemonday.UGCPolicy()

	s := &Store{pages: map[string]Page{}}
	for _, lang := range langs {
		entries, err := fs.ReadDir(fsys, path.Join(dir, lang))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("content: list %s: %w", lang, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			file := path.Join(dir, lang, e.Name())
			raw, err := fs.ReadFile(fsys, file)
			if err != nil {
				return nil, fmt.Errorf("content: read %s: %w", file, err)
			}
			page, err := render(md, policy, raw)
			if err != nil {
				return nil, fmt.Errorf("content: render %s: %w", file, err)
			}
			page.Slug = strings.TrimSuffix(e.Name(), ".md")
			page.Lang = lang
			s.pages[key(lang, page.Slug)] = page
		}
	}
	return s, nil
}

// Get returns the page for lang/slug.
func (s *Store) Get(lang, slug string) (Page, error) {
	p, ok := s.pages[key(lang, slug)]
	if !ok {
		return Page{}, ErrNotFound
	}
	return p, nil
}

func key(lang, slug string) string { return lang + "/" + slug }

func render(md goldmark.Markdown, policy *bluemonday.Policy, raw []byte) (Page, error) {
	fm, body := splitFrontMatter(string(raw))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("parse front matter: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return Page{}, err
	}
	return Page{
		Title:       strings.TrimSpace(front.Title),
		Description: strings.TrimSpace(front.Description),
		HTML:        template.HTML(policy.SanitizeBytes(buf.Bytes())),
	}, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
