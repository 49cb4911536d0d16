package middleware

import (
	"context"

	"github.com/twelve-principles/site/internal/locale"
)

// context keys are unexported to avoid collisions
type ctxKey string

const ctxKeyLocale ctxKey = "locale"

// WithLocale stores the request locale in context
func WithLocale(ctx context.Context, l locale.Locale) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, l)
}

// LocaleFromContext returns the locale chosen for this request, or locale.Default
func LocaleFromContext(ctx context.Context) locale.Locale {
	if l, ok := ctx.Value(ctxKeyLocale).(locale.Locale); ok && l != "" {
		return l
	}
	return locale.Default
}
