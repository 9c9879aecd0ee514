package placeholder

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadUserConfigCreatesDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "placeholders.toml")
	c, err := LoadUserConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if c.Log.Level != "info" || c.Providers.Directory != "placeholders" {
		t.Fatalf("expected default config, got %+v", c)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}

	again, err := LoadUserConfig(path)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if again.Log.Level != c.Log.Level || again.Providers.Autoload != c.Providers.Autoload {
		t.Fatalf("reloaded config differs: %+v vs %+v", again, c)
	}
}

func TestLoadUserConfigReadsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "placeholders.toml")
	contents := `
[Log]
Level = "debug"

[Placeholders]
Disabled = ["helditemhasenchant"]

[Enchantments.Aliases]
SHARP = "SHARPNESS"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := LoadUserConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if level, ok := c.LogLevel(); !ok || level != slog.LevelDebug {
		t.Fatalf("LogLevel() = %v, %v, want debug", level, ok)
	}
	if !slices.Equal(c.Placeholders.Disabled, []string{"helditemhasenchant"}) {
		t.Fatalf("unexpected disabled placeholders %v", c.Placeholders.Disabled)
	}
	if c.Enchantments.Aliases["SHARP"] != "SHARPNESS" {
		t.Fatalf("unexpected aliases %v", c.Enchantments.Aliases)
	}
	if c.Providers.Directory != "placeholders" {
		t.Fatalf("expected missing section to keep defaults, got %q", c.Providers.Directory)
	}
}

func TestLoadUserConfigInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "placeholders.toml")
	if err := os.WriteFile(path, []byte("[Log\nLevel = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadUserConfig(path); err == nil {
		t.Fatalf("expected malformed config to fail")
	}
	if _, err := LoadUserConfig(" "); err == nil {
		t.Fatalf("expected empty path to fail")
	}
}

func TestLogLevelFallback(t *testing.T) {
	c := DefaultConfig()
	c.Log.Level = "verbose"
	if level, ok := c.LogLevel(); ok || level != slog.LevelInfo {
		t.Fatalf("LogLevel() = %v, %v, want info fallback", level, ok)
	}
	c.Log.Level = "WARN"
	if level, ok := c.LogLevel(); !ok || level != slog.LevelWarn {
		t.Fatalf("LogLevel() = %v, %v, want warn", level, ok)
	}
}
