package console

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
)

// Executor runs functions inside a world transaction. *world.World implements
// Executor.
type Executor interface {
	Exec(f world.ExecFunc) <-chan struct{}
}

// Console provides a simple CLI backed command source that reads commands from
// an io.Reader (defaulting to os.Stdin) and executes them in a world
// transaction. Placeholders evaluated from the console resolve without a
// player.
type Console struct {
	exec   Executor
	log    *slog.Logger
	reader io.Reader
}

// New returns a Console executing commands through the Executor passed, usually
// the default world of the server. Command output is written to the supplied
// logger.
func New(exec Executor, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{
		exec:   exec,
		log:    log,
		reader: os.Stdin,
	}
}

// WithReader sets a custom reader for the console input. It enables testing the
// console without relying on os.Stdin.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// Run starts consuming commands from the console. It blocks until the context
// is cancelled or the underlying reader reaches EOF.
func (c *Console) Run(ctx context.Context) {
	scanner := bufio.NewScanner(c.reader)
	src := &consoleSource{log: c.log}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("console input error", "err", err)
			}
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			line = "/" + line
		}
		done := c.exec.Exec(func(tx *world.Tx) {
			executeLine(src, line, tx)
		})
		select {
		case <-done:
		case <-ctx.Done():
			return
		}
	}
}

// executeLine executes a command line, including its leading slash, on behalf
// of the Source passed. Unknown commands are reported back to the Source.
func executeLine(source cmd.Source, commandLine string, tx *world.Tx) {
	name, args, _ := strings.Cut(strings.TrimSpace(commandLine), " ")
	name, ok := strings.CutPrefix(name, "/")
	if !ok || name == "" {
		return
	}
	command, ok := cmd.ByAlias(strings.ToLower(name))
	if !ok {
		output := &cmd.Output{}
		output.Errorf("Unknown command: %s. Please check that the command exists and that you have permission to use it.", name)
		source.SendCommandOutput(output)
		return
	}
	command.Execute(strings.TrimSpace(args), source, tx)
}

type consoleSource struct {
	log *slog.Logger
}

func (c *consoleSource) Position() mgl64.Vec3 { return mgl64.Vec3{} }

func (c *consoleSource) Name() string { return "Console" }

func (c *consoleSource) SendCommandOutput(o *cmd.Output) {
	for _, msg := range o.Messages() {
		c.log.Info(msg.String())
	}
	for _, err := range o.Errors() {
		c.log.Error(err.Error())
	}
}
