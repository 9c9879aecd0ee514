package builtin

import (
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/dm-vev/adamant-placeholders/server/placeholder"
)

type namedSource interface {
	Name() string
}

// sourceName returns a user facing name for the source invoking a command.
func sourceName(src cmd.Source) string {
	if n, ok := src.(namedSource); ok {
		return n.Name()
	}
	return "Server"
}

// holderFromSource returns the source as a placeholder.Holder if it can hold
// items, such as a *player.Player. Other sources resolve placeholders without a
// player.
func holderFromSource(src cmd.Source) placeholder.Holder {
	if h, ok := src.(placeholder.Holder); ok {
		return h
	}
	return nil
}
