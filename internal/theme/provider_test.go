package theme

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	root    *Root
	store   *MemoryStorage
	cookies *MemoryCookies
	scheme  *SchemeSource
}

func newFixture(stored string, osDark bool) fixture {
	f := fixture{
		root:    NewRoot(),
		store:   NewMemoryStorage(),
		cookies: NewMemoryCookies(),
		scheme:  NewSchemeSource(osDark),
	}
	if stored != "" {
		_ = f.store.Set(StorageKey, stored)
	}
	_ = PrePaint(f.root, f.store, f.scheme)
	return f
}

func (f fixture) provider(opts ...ProviderOption) *Provider {
	return NewProvider(f.root, f.store, f.cookies, f.scheme, opts...)
}

func TestNewProviderDefaultsToSystem(t *testing.T) {
	f := newFixture("", true)
	p := f.provider()
	defer p.Close()

	assert.Equal(t, System, p.Theme())
	assert.Equal(t, ResolvedDark, p.Resolved())
	assert.Equal(t, 1, f.scheme.Listeners())
}

func TestNewProviderReadsRootInsteadOfRecomputing(t *testing.T) {
	f := newFixture("system", false)
	// Root says dark even though the OS now says light: the root wins at init.
	f.root.SetDark(true)
	p := f.provider()
	defer p.Close()
	assert.Equal(t, ResolvedDark, p.Resolved())
}

func TestSetThemeRoundTripsCookieAndStorage(t *testing.T) {
	f := newFixture("", false)
	p := f.provider()
	defer p.Close()

	require.NoError(t, p.SetTheme(Dark))

	stored, ok, err := f.store.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	c, ok := f.cookies.Cookie(CookieName)
	require.True(t, ok)
	assert.Equal(t, "dark", stored)
	assert.Equal(t, stored, c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 365*24*60*60, c.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	assert.True(t, f.root.IsDark())
	assert.Equal(t, State{Theme: Dark, Resolved: ResolvedDark}, p.State())
}

func TestSystemTracksOSWithoutChangingPreference(t *testing.T) {
	f := newFixture("", true)
	p := f.provider()
	defer p.Close()

	require.NoError(t, p.SetTheme(System))
	assert.Equal(t, ResolvedDark, p.Resolved())

	f.scheme.Set(false)
	assert.Equal(t, ResolvedLight, p.Resolved())
	assert.False(t, f.root.IsDark())
	assert.Equal(t, System, p.Theme())
	stored, _, _ := f.store.Get(StorageKey)
	assert.Equal(t, "system", stored)
}

func TestSwitchingAwayFromSystemUnsubscribes(t *testing.T) {
	f := newFixture("", true)
	p := f.provider()
	defer p.Close()

	require.NoError(t, p.SetTheme(System))
	require.Equal(t, 1, f.scheme.Listeners())

	require.NoError(t, p.SetTheme(Light))
	assert.Equal(t, 0, f.scheme.Listeners())

	f.scheme.Set(false)
	f.scheme.Set(true)
	assert.Equal(t, ResolvedLight, p.Resolved())
	assert.False(t, f.root.IsDark())
}

func TestRepeatedSystemDoesNotStackListeners(t *testing.T) {
	f := newFixture("", false)
	p := f.provider()
	defer p.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, p.SetTheme(System))
	}
	assert.Equal(t, 1, f.scheme.Listeners())
}

func TestSystemClearsExplicitClass(t *testing.T) {
	f := newFixture("", false)
	f.root = NewRoot("light", DarkClass)
	p := f.provider()
	defer p.Close()

	require.NoError(t, p.SetTheme(System))
	assert.Empty(t, f.root.Classes())
}

func TestCloseReleasesSubscription(t *testing.T) {
	f := newFixture("system", false)
	p := f.provider()
	require.Equal(t, 1, f.scheme.Listeners())

	p.Close()
	assert.Equal(t, 0, f.scheme.Listeners())

	f.scheme.Set(true)
	assert.Equal(t, ResolvedLight, p.Resolved())
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	f := newFixture("light", false)
	p := f.provider()
	defer p.Close()

	err := p.SetTheme("sepia")
	require.ErrorIs(t, err, ErrInvalidPreference)
	assert.Equal(t, Light, p.Theme())
	_, ok := f.cookies.Cookie(CookieName)
	assert.False(t, ok)
}

func TestPersistenceFailureIsLoggedNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := newFixture("", false)
	f.store.Fail = true
	p := f.provider(WithLogger(zap.New(core)))
	defer p.Close()

	require.NoError(t, p.SetTheme(Dark))
	assert.True(t, f.root.IsDark())
	assert.Equal(t, 1, logs.FilterMessage("theme storage write failed").Len())
	c, ok := f.cookies.Cookie(CookieName)
	require.True(t, ok)
	assert.Equal(t, "dark", c.Value)
}

func TestSystemWithBrokenMediaQueryKeepsMarker(t *testing.T) {
	f := newFixture("dark", false)
	f.scheme.Err = errors.New("unsupported")
	p := f.provider()
	defer p.Close()

	require.NoError(t, p.SetTheme(System))
	assert.Equal(t, ResolvedDark, p.Resolved())
}

func TestFromContextPanicsOutsideProvider(t *testing.T) {
	assert.PanicsWithValue(t, "theme: FromContext called outside a provider scope", func() {
		FromContext(context.Background())
	})

	f := newFixture("", false)
	p := f.provider()
	defer p.Close()
	ctx := WithProvider(context.Background(), p)
	assert.Same(t, p, FromContext(ctx))
}

func TestShellClassFromCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/en", nil)
	assert.Equal(t, "", ShellClass(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "dark"})
	assert.Equal(t, DarkClass, ShellClass(r))

	r = httptest.NewRequest(http.MethodGet, "/en", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "bogus"})
	assert.Equal(t, System, PreferenceFromRequest(r))
}

func TestResponseCookiesWritesHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, ResponseCookies{W: rec}.SetCookie(Cookie(Light, true)))
	header := rec.Header().Get("Set-Cookie")
	assert.Contains(t, header, "theme=light")
	assert.Contains(t, header, "SameSite=Lax")
	assert.Contains(t, header, "Secure")
}
