package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twelve-principles/site/internal/locale"
)

func TestBuildMarksActiveSection(t *testing.T) {
	items := Build(locale.ZH, "/zh/principles/3")
	require.Len(t, items, 2)
	assert.Equal(t, RenderedItem{Href: "/zh", LabelKey: "nav.home"}, items[0])
	assert.Equal(t, RenderedItem{Href: "/zh/principles", LabelKey: "nav.principles", Active: true}, items[1])

	items = Build(locale.EN, "/en")
	assert.True(t, items[0].Active)
	assert.False(t, items[1].Active)
}

func TestLanguagesKeepPage(t *testing.T) {
	links := Languages(locale.EN, "/en/principles/7")
	require.Len(t, links, 2)
	assert.Equal(t, LangLink{Locale: locale.EN, Href: "/en/principles/7", LabelKey: "lang.en", Active: true}, links[0])
	assert.Equal(t, LangLink{Locale: locale.ZH, Href: "/zh/principles/7", LabelKey: "lang.zh"}, links[1])
}

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs(locale.ZH, "/zh/principles/5")
	require.Len(t, crumbs, 3)
	assert.Equal(t, "/zh", crumbs[0].Href)
	assert.Equal(t, "nav.principles", crumbs[1].LabelKey)
	assert.Equal(t, "/zh/principles/5", crumbs[2].Href)
	assert.True(t, crumbs[2].Active)

	crumbs = Breadcrumbs(locale.EN, "/en")
	require.Len(t, crumbs, 1)
	assert.True(t, crumbs[0].Active)
}
