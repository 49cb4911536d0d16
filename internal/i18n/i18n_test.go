package i18n

import (
	"fmt"
	"testing"
	"testing/fstest"

	site "github.com/twelve-principles/site"
)

func TestShippedLocalesLoad(t *testing.T) {
	b, err := Load(site.Files, "locales", "en", []string{"en", "zh"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("zh", "nav.home"); got == "" || got == "nav.home" {
		t.Fatalf("expected zh nav.home translation, got %q", got)
	}
	for i := 1; i <= 12; i++ {
		key := principleKey(i)
		if !b.Has("en", key) || b.T("zh", key) == b.T("en", key) {
			t.Fatalf("principle %d missing or untranslated", i)
		}
	}
}

func principleKey(i int) string {
	return fmt.Sprintf("principle.%02d.title", i)
}

func TestFallbackChain(t *testing.T) {
	fsys := fstest.MapFS{
		"l/en.yaml": {Data: []byte("greeting: Hello\nonly.en: English only\n")},
		"l/zh.yaml": {Data: []byte("greeting: 你好\n")},
	}
	b, err := Load(fsys, "l", "en", []string{"en", "zh"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("zh", "greeting"); got != "你好" {
		t.Fatalf("expected zh greeting, got %q", got)
	}
	if got := b.T("zh", "only.en"); got != "English only" {
		t.Fatalf("expected fallback to en, got %q", got)
	}
	if got := b.T("zh", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key echo, got %q", got)
	}
}

func TestLoadRequiresFallback(t *testing.T) {
	fsys := fstest.MapFS{"l/zh.yaml": {Data: []byte("a: b\n")}}
	if _, err := Load(fsys, "l", "en", []string{"en", "zh"}); err == nil {
		t.Fatal("expected error when fallback dictionary is missing")
	}
}

func TestNestedKeysFlatten(t *testing.T) {
	fsys := fstest.MapFS{
		"l/en.yaml": {Data: []byte("nav:\n  home: Home\n  principles: Principles\ncount: 12\n")},
		"l/zh.yaml": {Data: []byte("nav.home: 首页\n")},
	}
	b, err := Load(fsys, "l", "en", []string{"zh", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("en", "nav.principles"); got != "Principles" {
		t.Fatalf("expected nested key, got %q", got)
	}
	if got := b.T("zh", "nav.home"); got != "首页" {
		t.Fatalf("expected dotted key, got %q", got)
	}
	if got := b.T("en", "count"); got != "12" {
		t.Fatalf("expected scalar rendered as text, got %q", got)
	}
	if got := b.Missing("zh"); len(got) != 2 || got[0] != "count" || got[1] != "nav.principles" {
		t.Fatalf("unexpected missing keys %v", got)
	}
	if got := b.Supported(); got[0] != "en" || got[1] != "zh" {
		t.Fatalf("expected sorted languages, got %v", got)
	}
}

func TestShippedLocalesAreComplete(t *testing.T) {
	b, err := Load(site.Files, "locales", "en", []string{"en", "zh"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if missing := b.Missing("zh"); len(missing) > 0 {
		t.Fatalf("zh is missing %v", missing)
	}
}
