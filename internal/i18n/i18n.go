// Package i18n serves UI strings from per-language YAML dictionaries. Nested YAML
// mappings are flattened to dotted keys, so "nav: {home: Home}" and "nav.home: Home"
// are the same entry.
package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// Bundle is immutable once loaded and safe for concurrent use.
type Bundle struct {
	fallback string
	langs    []string
	dict     map[string]map[string]string
}

// Load reads <dir>/<lang>.yaml from fsys for every language in langs. A missing
// dictionary is tolerated except for the fallback language.
func Load(fsys fs.FS, dir, fallback string, langs []string) (*Bundle, error) {
	b := &Bundle{
		fallback: fallback,
		langs:    slices.Clone(langs),
		dict:     make(map[string]map[string]string, len(langs)),
	}
	slices.Sort(b.langs)

	for _, lang := range langs {
		entries, err := readDictionary(fsys, path.Join(dir, lang+".yaml"))
		switch {
		case err == nil:
			b.dict[lang] = entries
		case lang == fallback:
			return nil, fmt.Errorf("i18n: fallback %s: %w", lang, err)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("i18n: %s: %w", lang, err)
		}
	}
	return b, nil
}

func readDictionary(fsys fs.FS, name string) (map[string]string, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	out := map[string]string{}
	flatten("", tree, out)
	return out, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(key, v, out)
		case string:
			out[key] = v
		case nil:
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}

// Supported lists the configured languages, sorted.
func (b *Bundle) Supported() []string { return slices.Clone(b.langs) }

func (b *Bundle) Fallback() string { return b.fallback }

func (b *Bundle) lookup(lang, key string) (string, bool) {
	if v, ok := b.dict[lang][key]; ok {
		return v, true
	}
	v, ok := b.dict[b.fallback][key]
	return v, ok
}

// T translates key into lang. It falls back to the fallback language and finally
// echoes the key so a missing string is visible on the page.
func (b *Bundle) T(lang, key string) string {
	if v, ok := b.lookup(lang, key); ok {
		return v
	}
	return key
}

// Has reports whether key resolves in lang or the fallback.
func (b *Bundle) Has(lang, key string) bool {
	_, ok := b.lookup(lang, key)
	return ok
}

// Missing lists fallback keys that lang does not translate.
func (b *Bundle) Missing(lang string) []string {
	var out []string
	for key := range b.dict[b.fallback] {
		if _, ok := b.dict[lang][key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
