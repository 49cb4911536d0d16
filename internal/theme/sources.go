package theme

import (
	"errors"
	"net/http"
	"sync"
)

// Storage is the client's synchronous key/value store (local storage).
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// CookieSink receives cookies written by the client runtime.
type CookieSink interface {
	SetCookie(c *http.Cookie) error
}

// ColorScheme is the OS color-scheme media query.
type ColorScheme interface {
	PrefersDark() (bool, error)
	// Subscribe registers fn for preference changes. The returned func releases the
	// subscription and is safe to call more than once.
	Subscribe(fn func(prefersDark bool)) (cancel func())
}

// ErrStorageUnavailable mimics a browser refusing storage access.
var ErrStorageUnavailable = errors.New("theme: storage unavailable")

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
	// Fail makes every call return ErrStorageUnavailable.
	Fail bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (s *MemoryStorage) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return "", false, ErrStorageUnavailable
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrStorageUnavailable
	}
	s.values[key] = value
	return nil
}

// MemoryCookies is an in-process cookie jar keyed by name.
type MemoryCookies struct {
	mu      sync.Mutex
	cookies map[string]*http.Cookie
}

func NewMemoryCookies() *MemoryCookies {
	return &MemoryCookies{cookies: map[string]*http.Cookie{}}
}

func (j *MemoryCookies) SetCookie(c *http.Cookie) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	cp := *c
	j.cookies[c.Name] = &cp
	return nil
}

// Cookie returns a copy of the named cookie.
func (j *MemoryCookies) Cookie(name string) (*http.Cookie, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	c, ok := j.cookies[name]
	if !ok {
		return nil, false
	}
	cp := *c
	return &cp, true
}

// ResponseCookies writes cookies onto an HTTP response.
type ResponseCookies struct {
	W http.ResponseWriter
}

func (rc ResponseCookies) SetCookie(c *http.Cookie) error {
	http.SetCookie(rc.W, c)
	return nil
}

// SchemeSource is a ColorScheme whose value is set programmatically. Set notifies
// subscribers synchronously on the caller's goroutine.
type SchemeSource struct {
	mu   sync.Mutex
	dark bool
	subs map[int]func(bool)
	next int
	// Err, when non-nil, is returned from PrefersDark.
	Err error
}

func NewSchemeSource(prefersDark bool) *SchemeSource {
	return &SchemeSource{dark: prefersDark, subs: map[int]func(bool){}}
}

func (s *SchemeSource) PrefersDark() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	return s.dark, nil
}

func (s *SchemeSource) Subscribe(fn func(bool)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Set changes the OS preference and notifies subscribers when it differs.
func (s *SchemeSource) Set(prefersDark bool) {
	s.mu.Lock()
	if s.dark == prefersDark {
		s.mu.Unlock()
		return
	}
	s.dark = prefersDark
	subs := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(prefersDark)
	}
}

// Listeners returns the number of live subscriptions.
func (s *SchemeSource) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
