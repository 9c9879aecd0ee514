package placeholder

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
)

// Registry holds placeholders by their case-insensitive name and resolves them.
// A Registry is safe for concurrent use.
type Registry struct {
	log *slog.Logger

	mu           sync.RWMutex
	placeholders map[string]Placeholder
	disabled     map[string]struct{}
}

// NewRegistry returns an empty Registry. Placeholders named in disabled may be
// registered but fail to resolve with ErrDisabled.
func NewRegistry(log *slog.Logger, disabled ...string) *Registry {
	if log == nil {
		log = slog.Default()
	}
	r := &Registry{
		log:          log.With("subsystem", "placeholder"),
		placeholders: make(map[string]Placeholder),
		disabled:     make(map[string]struct{}, len(disabled)),
	}
	for _, name := range disabled {
		if key := normalizeName(name); key != "" {
			r.disabled[key] = struct{}{}
		}
	}
	return r
}

// Register adds p to the Registry. ErrNameConflict is returned if a placeholder
// with the same case-insensitive name is already registered.
func (r *Registry) Register(p Placeholder) error {
	if p == nil {
		return ErrInvalidName
	}
	key := normalizeName(p.Name())
	if key == "" {
		return ErrInvalidName
	}

	r.mu.Lock()
	if _, exists := r.placeholders[key]; exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNameConflict, key)
	}
	r.placeholders[key] = p
	r.mu.Unlock()

	r.log.Debug("Placeholder registered.", "name", key)
	return nil
}

// Unregister removes the placeholder with the name passed. The returned bool is
// false if no such placeholder was registered.
func (r *Registry) Unregister(name string) bool {
	key := normalizeName(name)

	r.mu.Lock()
	_, ok := r.placeholders[key]
	delete(r.placeholders, key)
	r.mu.Unlock()

	if ok {
		r.log.Debug("Placeholder unregistered.", "name", key)
	}
	return ok
}

// Lookup returns the placeholder registered under name.
func (r *Registry) Lookup(name string) (Placeholder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.placeholders[normalizeName(name)]
	return p, ok
}

// Names returns the normalised names of all registered placeholders in sorted
// order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.placeholders))
	for name := range r.placeholders {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Disabled reports if the placeholder with the name passed is disabled.
func (r *Registry) Disabled(name string) bool {
	_, ok := r.disabled[normalizeName(name)]
	return ok
}

// Resolve resolves the placeholder registered under name with the Context and
// Args passed. A panic raised by the placeholder is recovered and returned as an
// error.
func (r *Registry) Resolve(ctx Context, name string, args Args) (v Value, err error) {
	key := normalizeName(name)
	if r.Disabled(key) {
		return Null, fmt.Errorf("%w: %s", ErrDisabled, key)
	}
	p, ok := r.Lookup(key)
	if !ok {
		return Null, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if ctx.Log == nil {
		ctx.Log = r.log
	}

	defer func() {
		if rec := recover(); rec != nil {
			ctx.Logger().Error("Placeholder panic.", "name", key, "panic", rec, "stack", string(debug.Stack()))
			v, err = Null, fmt.Errorf("resolve %s: panic: %v", key, rec)
		}
	}()
	v, err = p.Resolve(ctx, args)
	if err != nil {
		ctx.Logger().Debug("Resolve placeholder.", "name", key, "error", err)
		return Null, err
	}
	return v, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
