package builtin

import (
	"github.com/dm-vev/adamant-placeholders/server/placeholder"
)

type resolver interface {
	Names() []string
	Disabled(name string) bool
	Resolve(ctx placeholder.Context, name string, args placeholder.Args) (placeholder.Value, error)
}
