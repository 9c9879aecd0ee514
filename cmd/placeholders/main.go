package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/df-mc/dragonfly/server"
	"github.com/df-mc/dragonfly/server/player/chat"
	"github.com/dm-vev/adamant-placeholders/server/cmd/builtin"
	"github.com/dm-vev/adamant-placeholders/server/console"
	"github.com/dm-vev/adamant-placeholders/server/placeholder"
	"github.com/dm-vev/adamant-placeholders/server/placeholder/enchant"
	"github.com/dm-vev/adamant-placeholders/server/placeholder/helditem"
	"github.com/dm-vev/adamant-placeholders/server/plugin"
	"github.com/pelletier/go-toml"
)

func main() {
	serverConfig := flag.String("config", "config.toml", "path to the server configuration file")
	placeholderConfig := flag.String("placeholders", "placeholders.toml", "path to the placeholder configuration file")
	flag.Parse()

	level := new(slog.LevelVar)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	uc, err := placeholder.LoadUserConfig(*placeholderConfig)
	if err != nil {
		log.Error("Load placeholder config.", "error", err, "path", *placeholderConfig)
		os.Exit(1)
	}
	if l, ok := uc.LogLevel(); ok {
		level.Set(l)
	} else {
		log.Warn("Unknown log level, using info.", "value", uc.Log.Level)
	}

	reg := placeholder.NewRegistry(log, uc.Placeholders.Disabled...)
	names := enchant.NewNames(uc.Enchantments.Aliases)
	if err := reg.Register(helditem.NewHasEnchant(names, nil)); err != nil {
		log.Error("Register placeholder.", "error", err)
		os.Exit(1)
	}

	providers := plugin.NewManager(reg, plugin.Config{
		Enabled:   uc.Providers.Enabled,
		Directory: uc.Providers.Directory,
		Autoload:  uc.Providers.Autoload,
		Files:     uc.Providers.Files,
	}, log)
	providers.LoadConfigured()
	defer providers.Shutdown()

	builtin.Register(reg, log)

	chat.Global.Subscribe(chat.StdoutSubscriber{})
	conf, err := readConfig(*serverConfig, log)
	if err != nil {
		log.Error("Load server config.", "error", err, "path", *serverConfig)
		os.Exit(1)
	}

	srv := conf.New()
	srv.CloseOnProgramEnd()
	srv.Listen()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go console.New(srv.World(), log).Run(ctx)

	log.Info("Placeholders ready.", "placeholders", reg.Names(), "enchantments", len(names.Known()))
	for p := range srv.Accept() {
		log.Debug("Player joined.", "name", p.Name(), "uuid", p.UUID())
	}
}

// readConfig reads the server configuration from path, creating it with the
// default values if it does not exist yet.
func readConfig(path string, log *slog.Logger) (server.Config, error) {
	c := server.DefaultConfig()
	var zero server.Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return zero, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return zero, fmt.Errorf("create default config: %w", err)
		}
		return c.Config(log)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return zero, fmt.Errorf("decode config: %w", err)
	}
	return c.Config(log)
}
