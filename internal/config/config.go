// Package config handles layered configuration: built-in defaults, an
// optional YAML file, environment variables and command line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/johan-st/sqlite-grid/internal/browser"
	"github.com/johan-st/sqlite-grid/internal/database"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "SQLITE_GRID_"

// FileName is the config file looked for when --config is not given.
const FileName = "sqlite-grid.yaml"

// Output formats for non-interactive commands.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTSV   = "tsv"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatTable, FormatJSON, FormatYAML, FormatTSV}

// Config represents the application configuration.
type Config struct {
	// Screen size in characters. Zero means detect from the terminal.
	Width  int `koanf:"width" yaml:"width"`
	Height int `koanf:"height" yaml:"height"`

	CellWidth    int      `koanf:"cell_width" yaml:"cell_width"`
	RowLimit     int      `koanf:"row_limit" yaml:"row_limit"`
	HiddenTables []string `koanf:"hidden_tables" yaml:"hidden_tables"`
	Keys         Keys     `koanf:"keys" yaml:"keys"`

	LogFile string `koanf:"log_file" yaml:"log_file,omitempty"`
	Debug   bool   `koanf:"debug" yaml:"debug"`
	Format  string `koanf:"format" yaml:"format"`

	// Internal: path to the config file, empty if none was read
	path string
}

// Keys overrides key bindings. Empty lists keep the defaults.
type Keys struct {
	Quit  []string `koanf:"quit" yaml:"quit,omitempty"`
	Left  []string `koanf:"left" yaml:"left,omitempty"`
	Down  []string `koanf:"down" yaml:"down,omitempty"`
	Up    []string `koanf:"up" yaml:"up,omitempty"`
	Right []string `koanf:"right" yaml:"right,omitempty"`
	Open  []string `koanf:"open" yaml:"open,omitempty"`
}

// Bindings converts the overrides for the navigator.
func (k Keys) Bindings() browser.Bindings {
	return browser.Bindings{
		Quit:  k.Quit,
		Left:  k.Left,
		Down:  k.Down,
		Up:    k.Up,
		Right: k.Right,
		Open:  k.Open,
	}
}

func defaults() map[string]any {
	return map[string]any{
		"width":         0,
		"height":        0,
		"cell_width":    browser.CellWidth,
		"row_limit":     1000,
		"hidden_tables": database.DefaultHiddenTables,
		"debug":         false,
		"format":        FormatTable,
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CellWidth:    browser.CellWidth,
		RowLimit:     1000,
		HiddenTables: append([]string(nil), database.DefaultHiddenTables...),
		Format:       FormatTable,
	}
}

// findConfigFile returns the explicit path, or the default file if present.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(dir, "sqlite-grid", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Environment. COLUMNS and LINES set the screen size, as curses does.
	// Values that are not a positive number are ignored.
	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		var name string
		switch key {
		case "COLUMNS":
			name = "width"
		case "LINES":
			name = "height"
		default:
			return "", nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 {
			return "", nil
		}
		return name, n
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// SQLITE_GRID_CELL_WIDTH -> cell_width, SQLITE_GRID_KEYS_QUIT -> keys.quit
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if rest, ok := strings.CutPrefix(name, "keys_"); ok {
			return "keys." + rest, splitList(value)
		}
		if name == "hidden_tables" {
			return name, splitList(value)
		}
		return name, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those set explicitly
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			switch key {
			case "config", "version", "print_config", "help":
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the config file that was read, or "" if none.
func (c *Config) Path() string {
	return c.path
}

// Validate checks the configuration for values the browser cannot use.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.Width, c.Height)
	}
	if c.CellWidth < 1 {
		return fmt.Errorf("cell_width must be positive, got %d", c.CellWidth)
	}
	if c.RowLimit < 0 {
		return fmt.Errorf("row_limit must not be negative, got %d", c.RowLimit)
	}
	for _, f := range Formats {
		if c.Format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want one of %s)", c.Format, strings.Join(Formats, ", "))
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yamlv3.Marshal(c)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
