package builtin

import (
	"log/slog"
	"strings"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/dm-vev/adamant-placeholders/server/placeholder"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

type placeholderListCommand struct {
	List cmd.SubCommand `cmd:"list"`
	reg  resolver
}

type placeholderEvalCommand struct {
	Eval cmd.SubCommand            `cmd:"eval"`
	Name string                    `cmd:"name"`
	Args cmd.Optional[cmd.Varargs] `cmd:"args"`
	reg  resolver
	log  *slog.Logger
}

func newPlaceholderCommand(reg resolver, log *slog.Logger) cmd.Command {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("subsystem", "placeholder.command")
	return cmd.New(
		"placeholder",
		"Lists and evaluates placeholders.",
		[]string{"ph"},
		placeholderListCommand{reg: reg},
		placeholderEvalCommand{reg: reg, log: log},
	)
}

func (p placeholderListCommand) Run(_ cmd.Source, o *cmd.Output, _ *world.Tx) {
	names := p.reg.Names()
	if len(names) == 0 {
		o.Print("No placeholders registered.")
		return
	}
	o.Printf("There are %d placeholders registered:", len(names))
	for _, name := range names {
		if p.reg.Disabled(name) {
			o.Print(text.Colourf("<grey>%s (disabled)</grey>", name))
			continue
		}
		o.Print(text.Colourf("<green>%s</green>", name))
	}
}

func (p placeholderEvalCommand) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		o.Error("Placeholder name is required.")
		return
	}
	raw, _ := p.Args.Load()
	args, err := placeholder.ParseArgs(string(raw))
	if err != nil {
		o.Errorf("Parse arguments: %v", err)
		return
	}

	ctx := placeholder.Context{Player: holderFromSource(src), Log: p.log}
	v, err := p.reg.Resolve(ctx, name, args)
	if err != nil {
		o.Error(err)
		return
	}
	p.log.Debug("Placeholder evaluated.", "source", sourceName(src), "name", name, "value", v.String())
	o.Print(text.Colourf("<grey>%s</grey> = <aqua>%s</aqua>", name, v.String()))
}
