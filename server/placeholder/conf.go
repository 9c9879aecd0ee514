package placeholder

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// UserConfig is the user configuration of the placeholder subsystem. It is
// stored as TOML, next to the server's own configuration file.
type UserConfig struct {
	Log struct {
		// Level is the minimum level of messages logged. Valid values are
		// "debug", "info", "warn" and "error".
		Level string
	}
	Placeholders struct {
		// Disabled lists placeholder names that fail to resolve even when
		// they are registered.
		Disabled []string
	}
	Enchantments struct {
		// Aliases maps additional enchantment names to the name of a
		// registered enchantment, for example SHARP = "SHARPNESS". Entries
		// override the built-in aliases.
		Aliases map[string]string
	}
	Providers struct {
		// Enabled specifies if placeholder providers should be loaded from
		// Go plugin files.
		Enabled bool
		// Directory is searched for provider files and used to resolve
		// relative paths in Files.
		Directory string
		// Autoload controls whether every .so file in Directory is loaded.
		Autoload bool
		// Files lists additional provider files to load.
		Files []string
	}
}

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.Log.Level = "info"
	c.Placeholders.Disabled = []string{}
	c.Enchantments.Aliases = map[string]string{}
	c.Providers.Enabled = false
	c.Providers.Directory = "placeholders"
	c.Providers.Autoload = true
	c.Providers.Files = []string{}
	return c
}

// LoadUserConfig reads the UserConfig stored at path. Fields missing from the
// file keep their default value. If the file does not exist yet, it is created
// with the default configuration.
func LoadUserConfig(path string) (UserConfig, error) {
	c := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return c, errors.New("config path must not be empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("read config: %w", err)
		}
		return c, writeUserConfig(path, c)
	}
	if len(data) == 0 {
		return c, nil
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

func writeUserConfig(path string, c UserConfig) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LogLevel parses the configured log level. Unknown or empty levels fall back
// to slog.LevelInfo and report false.
func (uc UserConfig) LogLevel() (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(uc.Log.Level))); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
