package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/ryanlewis/tinyfmt"
)

// Config is the optional TOML configuration file. Command-line flags
// override any value set here.
//
//	[console]
//	crlf = true
//	line_max = 128
//	prompt = "> "
//
//	[debug]
//	enabled = false
//	pretty = false
//	file = ""
//
//	[cache]
//	size = 64
type Config struct {
	Console ConsoleConfig `toml:"console"`
	Debug   DebugConfig   `toml:"debug"`
	Cache   CacheConfig   `toml:"cache"`
}

// ConsoleConfig controls the character device the commands print through.
type ConsoleConfig struct {
	CRLF    bool   `toml:"crlf"`
	LineMax int    `toml:"line_max"`
	Prompt  string `toml:"prompt"`
}

// DebugConfig controls format tracing.
type DebugConfig struct {
	Enabled bool   `toml:"enabled"`
	Pretty  bool   `toml:"pretty"`
	File    string `toml:"file"`
}

// CacheConfig sizes the compiled format cache.
type CacheConfig struct {
	Size int `toml:"size"`
}

// Limits for console line buffers
const (
	minLineMax = 2
	maxLineMax = 4096
)

func defaultConfig() Config {
	return Config{
		Console: ConsoleConfig{
			LineMax: 128,
			Prompt:  "> ",
		},
		Cache: CacheConfig{
			Size: 64,
		},
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: unknown keys in %s: %s", tinyfmt.ErrBadConfig, path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Console.LineMax < minLineMax || c.Console.LineMax > maxLineMax {
		return fmt.Errorf("%w: console.line_max must be between %d and %d, got %d",
			tinyfmt.ErrBadConfig, minLineMax, maxLineMax, c.Console.LineMax)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("%w: cache.size must not be negative, got %d", tinyfmt.ErrBadConfig, c.Cache.Size)
	}
	return nil
}

// applyFlags overrides cfg with every flag the user set explicitly.
func (c *Config) applyFlags(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "crlf":
			c.Console.CRLF, err = flags.GetBool(f.Name)
		case "debug":
			c.Debug.Enabled, err = flags.GetBool(f.Name)
		case "debug-pretty":
			c.Debug.Pretty, err = flags.GetBool(f.Name)
		case "debug-file":
			c.Debug.File, err = flags.GetString(f.Name)
		}
	})
	return err
}
