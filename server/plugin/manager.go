package plugin

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	goplugin "plugin"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/dm-vev/adamant-placeholders/server/placeholder"
)

var factorySymbols = []string{"Placeholders", "InitPlaceholders", "New"}

// symbolLookup is the part of *plugin.Plugin used by the manager.
type symbolLookup interface {
	Lookup(symName string) (goplugin.Symbol, error)
}

func openPlugin(path string) (symbolLookup, error) {
	return goplugin.Open(path)
}

type providerInstance struct {
	name         string
	path         string
	placeholders []string
}

func (pi providerInstance) info() Info {
	return Info{Name: pi.name, Path: pi.path, Placeholders: slices.Clone(pi.placeholders)}
}

// Manager discovers provider files, loads the placeholders they expose into a
// Registrar and removes them again when a provider is disabled.
type Manager struct {
	reg  Registrar
	cfg  Config
	log  *slog.Logger
	open func(path string) (symbolLookup, error)

	once      sync.Once
	mu        sync.RWMutex
	providers []providerInstance
}

// NewManager constructs a Manager registering placeholders into reg.
func NewManager(reg Registrar, cfg Config, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		reg: reg,
		cfg: Config{
			Enabled:   cfg.Enabled,
			Directory: cfg.Directory,
			Autoload:  cfg.Autoload,
			Files:     slices.Clone(cfg.Files),
		},
		log:  log.With("subsystem", "placeholder.provider"),
		open: openPlugin,
	}
}

// Enabled reports whether providers should be loaded.
func (m *Manager) Enabled() bool {
	return m.cfg.Enabled
}

// Directory returns the directory searched for provider files.
func (m *Manager) Directory() string {
	return m.directory()
}

// ResolvePath resolves path against the configured provider directory when it
// is not absolute and returns the cleaned result.
func (m *Manager) ResolvePath(path string) string {
	return m.resolvePath(path)
}

// LoadConfigured enables the providers found through the configuration. It only
// has an effect the first time it is called.
func (m *Manager) LoadConfigured() {
	m.once.Do(m.loadConfigured)
}

// Infos returns metadata for all loaded providers in load order.
func (m *Manager) Infos() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]Info, len(m.providers))
	for i, p := range m.providers {
		infos[i] = p.info()
	}
	return infos
}

// Enable loads the provider file at path and registers its placeholders. If any
// placeholder cannot be registered, the ones already registered by this
// provider are removed again and the error is returned.
func (m *Manager) Enable(path string) (info Info, err error) {
	if !m.Enabled() {
		return Info{}, ErrDisabled
	}
	resolved := m.resolvePath(path)

	m.mu.RLock()
	for _, existing := range m.providers {
		if existing.path == resolved {
			m.mu.RUnlock()
			return existing.info(), ErrAlreadyLoaded
		}
	}
	m.mu.RUnlock()

	mod, err := m.open(resolved)
	if err != nil {
		return Info{}, fmt.Errorf("open provider: %w", err)
	}
	factory, symbol, err := lookupFactory(mod)
	if err != nil {
		return Info{}, fmt.Errorf("locate provider factory: %w", err)
	}

	name := providerBaseName(resolved)
	placeholders, err := m.callFactory(name, factory)
	if err != nil {
		return Info{}, fmt.Errorf("initialise provider via %s: %w", symbol, err)
	}

	entry := providerInstance{name: name, path: resolved}
	for _, p := range placeholders {
		if p == nil {
			continue
		}
		if err := m.reg.Register(p); err != nil {
			m.unregisterAll(entry.placeholders)
			return Info{}, fmt.Errorf("register placeholder from %s: %w", name, err)
		}
		entry.placeholders = append(entry.placeholders, p.Name())
	}

	m.mu.Lock()
	m.providers = append(m.providers, entry)
	m.mu.Unlock()

	m.log.Info("Provider enabled.", "name", entry.name, "path", entry.path, "symbol", symbol, "placeholders", len(entry.placeholders))
	return entry.info(), nil
}

// Disable unloads the provider with the case-insensitive name or path passed
// and unregisters its placeholders. Go plugins cannot be closed, so the file
// itself stays mapped until the process exits.
func (m *Manager) Disable(nameOrPath string) (Info, error) {
	if !m.Enabled() {
		return Info{}, ErrDisabled
	}
	resolved := m.resolvePath(nameOrPath)

	m.mu.Lock()
	index := slices.IndexFunc(m.providers, func(p providerInstance) bool {
		return strings.EqualFold(p.name, nameOrPath) || p.path == resolved
	})
	if index == -1 {
		m.mu.Unlock()
		return Info{}, ErrNotFound
	}
	entry := m.providers[index]
	m.providers = slices.Delete(m.providers, index, index+1)
	m.mu.Unlock()

	m.unregisterAll(entry.placeholders)
	m.log.Info("Provider disabled.", "name", entry.name, "path", entry.path)
	return entry.info(), nil
}

// Shutdown disables all providers in reverse load order.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	providers := slices.Clone(m.providers)
	m.providers = nil
	m.mu.Unlock()

	for i := len(providers) - 1; i >= 0; i-- {
		entry := providers[i]
		m.unregisterAll(entry.placeholders)
		m.log.Info("Provider disabled.", "name", entry.name, "path", entry.path)
	}
}

func (m *Manager) unregisterAll(names []string) {
	for _, name := range names {
		m.reg.Unregister(name)
	}
}

func (m *Manager) callFactory(name string, factory Factory) (placeholders []placeholder.Placeholder, err error) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("Provider panic.", "provider", name, "panic", r, "stack", string(debug.Stack()))
			placeholders, err = nil, fmt.Errorf("factory panicked: %v", r)
		}
	}()
	return factory(m.log.With("provider", name))
}

func (m *Manager) loadConfigured() {
	cfg := m.cfg
	if !cfg.Enabled {
		m.log.Debug("Placeholder providers disabled.")
		return
	}

	dir := m.directory()
	seen := map[string]struct{}{}
	var paths []string

	if cfg.Autoload {
		entries, err := os.ReadDir(dir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			m.log.Error("read provider directory", "error", err, "dir", dir)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".so") {
				continue
			}
			path := filepath.Clean(filepath.Join(dir, entry.Name()))
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			paths = append(paths, path)
		}
	}

	for _, file := range cfg.Files {
		path := m.resolvePath(file)
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		m.log.Debug("No placeholder providers discovered.")
		return
	}

	slices.Sort(paths)
	for _, path := range paths {
		if _, err := m.Enable(path); err != nil {
			m.log.Error("Enable provider.", "error", err, "path", path)
		}
	}
}

func (m *Manager) directory() string {
	if m.cfg.Directory == "" {
		return "placeholders"
	}
	return m.cfg.Directory
}

func (m *Manager) resolvePath(path string) string {
	if path == "" {
		return ""
	}

	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) {
		return cleaned
	}

	dir := filepath.Clean(m.directory())
	if cleaned == dir {
		return dir
	}

	// Avoid double-joining the provider directory when the caller already
	// provided a path relative to it (for example "placeholders/items.so").
	if rel, err := filepath.Rel(dir, cleaned); err == nil && rel != ".." && !strings.HasPrefix(rel, fmt.Sprintf("..%c", filepath.Separator)) {
		return cleaned
	}

	return filepath.Clean(filepath.Join(dir, cleaned))
}

func providerBaseName(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "provider"
	}
	return base
}

var errSymbolNotFound = errors.New("symbol not found")

func lookupFactory(mod symbolLookup) (Factory, string, error) {
	for _, symbol := range factorySymbols {
		factory, err := exportFactory(mod, symbol)
		if err != nil {
			if errors.Is(err, errSymbolNotFound) {
				continue
			}
			return nil, symbol, err
		}
		return factory, symbol, nil
	}
	return nil, "", fmt.Errorf("no compatible factory symbol found")
}

func exportFactory(mod symbolLookup, symbol string) (Factory, error) {
	sym, err := mod.Lookup(symbol)
	if err != nil {
		return nil, errSymbolNotFound
	}
	switch fn := sym.(type) {
	case Factory:
		return fn, nil
	case *Factory:
		return *fn, nil
	case func(*slog.Logger) ([]placeholder.Placeholder, error):
		return fn, nil
	case *func(*slog.Logger) ([]placeholder.Placeholder, error):
		return *fn, nil
	case func() []placeholder.Placeholder:
		return func(*slog.Logger) ([]placeholder.Placeholder, error) { return fn(), nil }, nil
	case *func() []placeholder.Placeholder:
		ctor := *fn
		return func(*slog.Logger) ([]placeholder.Placeholder, error) { return ctor(), nil }, nil
	default:
		return nil, fmt.Errorf("symbol %s has incompatible type %T", symbol, sym)
	}
}
