package theme

import (
	"sort"
	"sync"
)

// Root models the document root element: its class list and attributes. Exactly one
// owner (the pre-paint pass, then a Provider) mutates it.
type Root struct {
	mu      sync.Mutex
	classes map[string]struct{}
	attrs   map[string]string
}

// NewRoot returns a root carrying the given classes, as rendered by the server shell.
func NewRoot(classes ...string) *Root {
	r := &Root{
		classes: map[string]struct{}{},
		attrs:   map[string]string{},
	}
	for _, c := range classes {
		if c != "" {
			r.classes[c] = struct{}{}
		}
	}
	return r
}

// SetDark adds or removes the dark marker.
func (r *Root) SetDark(dark bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dark {
		r.classes[DarkClass] = struct{}{}
	} else {
		delete(r.classes, DarkClass)
	}
}

// IsDark reports whether the dark marker is set.
func (r *Root) IsDark() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.classes[DarkClass]
	return ok
}

// ClearExplicit removes any explicit theme class.
func (r *Root) ClearExplicit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.classes, string(Light))
	delete(r.classes, string(Dark))
}

// MarkReady sets the theme-ready attribute.
func (r *Root) MarkReady() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attrs[ReadyAttr] = "true"
}

// Ready reports whether content may be shown.
func (r *Root) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attrs[ReadyAttr] == "true"
}

// Classes returns the class list in sorted order.
func (r *Root) Classes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.classes))
	for c := range r.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
