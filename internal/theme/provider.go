package theme

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// State is what a Provider exposes to consumers.
type State struct {
	Theme    Preference
	Resolved Resolved
}

// Provider owns the theme for one page: it is the only writer of the root's marker
// after pre-paint, and it keeps storage and cookie in step on every change.
type Provider struct {
	root    *Root
	store   Storage
	cookies CookieSink
	scheme  ColorScheme
	logger  *zap.Logger
	secure  bool

	mu       sync.Mutex
	theme    Preference
	resolved Resolved
	cancel   func()
	closed   bool
}

// ProviderOption customises NewProvider.
type ProviderOption func(*Provider)

// WithLogger routes persistence failures to logger.
func WithLogger(logger *zap.Logger) ProviderOption {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSecureCookie marks the theme cookie Secure.
func WithSecureCookie(secure bool) ProviderOption {
	return func(p *Provider) { p.secure = secure }
}

// NewProvider loads the stored preference (System when absent) and takes the resolved
// theme from the root's current marker, which pre-paint has already set. A System
// preference starts tracking the OS immediately.
func NewProvider(root *Root, store Storage, cookies CookieSink, scheme ColorScheme, opts ...ProviderOption) *Provider {
	p := &Provider{
		root:    root,
		store:   store,
		cookies: cookies,
		scheme:  scheme,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.theme = loadPreference(store)
	p.resolved = resolvedOf(root.IsDark())
	if p.theme == System {
		p.subscribeLocked()
	}
	return p
}

// Theme returns the stored preference.
func (p *Provider) Theme() Preference {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme
}

// Resolved returns the applied light/dark value.
func (p *Provider) Resolved() Resolved {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolved
}

// State returns theme and resolved value read together.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{Theme: p.theme, Resolved: p.resolved}
}

// SetTheme persists pref to storage and cookie, then applies it. Persistence is
// best effort: failures are logged and the theme still changes.
func (p *Provider) SetTheme(pref Preference) error {
	if _, ok := ParsePreference(string(pref)); !ok {
		return ErrInvalidPreference
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.persist(pref)
	p.theme = pref

	if pref == System {
		wasDark := p.root.IsDark()
		p.root.ClearExplicit()
		dark := wasDark
		if p.scheme != nil {
			prefersDark, err := p.scheme.PrefersDark()
			if err != nil {
				p.logger.Warn("color scheme query failed", zap.Error(err))
			} else {
				dark = prefersDark
			}
		}
		p.root.SetDark(dark)
		p.resolved = resolvedOf(dark)
		p.subscribeLocked()
		return nil
	}

	p.unsubscribeLocked()
	dark := pref == Dark
	p.root.SetDark(dark)
	p.resolved = resolvedOf(dark)
	return nil
}

// Close releases the OS subscription. Later change events are ignored.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.unsubscribeLocked()
}

func (p *Provider) persist(pref Preference) {
	if p.store != nil {
		if err := p.store.Set(StorageKey, string(pref)); err != nil {
			p.logger.Warn("theme storage write failed", zap.String("theme", string(pref)), zap.Error(err))
		}
	}
	if p.cookies != nil {
		if err := p.cookies.SetCookie(Cookie(pref, p.secure)); err != nil {
			p.logger.Warn("theme cookie write failed", zap.String("theme", string(pref)), zap.Error(err))
		}
	}
}

func (p *Provider) subscribeLocked() {
	if p.cancel != nil || p.closed || p.scheme == nil {
		return
	}
	p.cancel = p.scheme.Subscribe(p.onSchemeChange)
}

func (p *Provider) unsubscribeLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// onSchemeChange tracks the OS while the preference stays System. Applying the same
// value twice is harmless.
func (p *Provider) onSchemeChange(prefersDark bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.theme != System {
		return
	}
	p.root.SetDark(prefersDark)
	p.resolved = resolvedOf(prefersDark)
}

type providerKey struct{}

// WithProvider scopes p to ctx and everything derived from it.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// Lookup returns the provider in scope, if any.
func Lookup(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	return p, ok && p != nil
}

// FromContext returns the provider in scope. Calling it outside WithProvider is a
// programming error and panics.
func FromContext(ctx context.Context) *Provider {
	p, ok := Lookup(ctx)
	if !ok {
		panic("theme: FromContext called outside a provider scope")
	}
	return p
}
