package builtin

import (
	"log/slog"

	"github.com/df-mc/dragonfly/server/cmd"
)

// Register registers the built-in placeholder commands, resolving placeholders
// through the registry passed.
func Register(reg resolver, log *slog.Logger) {
	cmd.Register(newPlaceholderCommand(reg, log))
}
