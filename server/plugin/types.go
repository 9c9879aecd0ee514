package plugin

import (
	"errors"
	"log/slog"

	"github.com/dm-vev/adamant-placeholders/server/placeholder"
)

// Factory is the constructor signature exposed by provider files. The
// placeholders returned are registered as soon as the factory returns.
type Factory func(log *slog.Logger) ([]placeholder.Placeholder, error)

// Registrar is the registry providers contribute placeholders to.
// *placeholder.Registry implements Registrar.
type Registrar interface {
	Register(p placeholder.Placeholder) error
	Unregister(name string) bool
}

// Info describes a provider currently loaded by the manager.
type Info struct {
	Name         string
	Path         string
	Placeholders []string
}

var (
	// ErrDisabled is returned when the provider loader is disabled.
	ErrDisabled = errors.New("placeholder providers disabled")
	// ErrAlreadyLoaded is returned when attempting to enable a provider that
	// has already been loaded.
	ErrAlreadyLoaded = errors.New("provider already loaded")
	// ErrNotFound is returned when attempting to disable a provider that is
	// not currently loaded.
	ErrNotFound = errors.New("provider not found")
)
