// Package site bundles the files the server ships with: templates, translations,
// Markdown content and static assets.
package site

import "embed"

//go:embed templates locales content public
var Files embed.FS
