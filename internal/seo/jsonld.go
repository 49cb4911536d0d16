package seo

import (
	"encoding/json"
)

const schemaContext = "https://schema.org"

// JSON marshals v for a <script type="application/ld+json"> block. encoding/json
// escapes <, > and &, so the result is safe to inline. It returns "" on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WebSiteSchema is the schema.org WebSite node for the home page.
type WebSiteSchema struct {
	Context    string `json:"@context"`
	Type       string `json:"@type"`
	Name       string `json:"name"`
	URL        string `json:"url,omitempty"`
	InLanguage string `json:"inLanguage,omitempty"`
}

func WebSite(name, url, inLanguage string) WebSiteSchema {
	return WebSiteSchema{Context: schemaContext, Type: "WebSite", Name: name, URL: url, InLanguage: inLanguage}
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

type listItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// BreadcrumbListSchema is the schema.org BreadcrumbList node.
type BreadcrumbListSchema struct {
	Context  string     `json:"@context"`
	Type     string     `json:"@type"`
	Elements []listItem `json:"itemListElement"`
}

// BreadcrumbList numbers items from 1 in the given order.
func BreadcrumbList(items []BreadcrumbItem) BreadcrumbListSchema {
	out := BreadcrumbListSchema{Context: schemaContext, Type: "BreadcrumbList", Elements: make([]listItem, len(items))}
	for i, it := range items {
		out.Elements[i] = listItem{Type: "ListItem", Position: i + 1, Name: it.Name, Item: it.Item}
	}
	return out
}

// ArticleSchema describes a single principle page.
type ArticleSchema struct {
	Context    string `json:"@context"`
	Type       string `json:"@type"`
	Headline   string `json:"headline"`
	URL        string `json:"url,omitempty"`
	InLanguage string `json:"inLanguage,omitempty"`
}

func Article(headline, url, inLanguage string) ArticleSchema {
	return ArticleSchema{Context: schemaContext, Type: "Article", Headline: headline, URL: url, InLanguage: inLanguage}
}
