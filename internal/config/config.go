// Package config loads the optional HCL configuration file of the
// pixscene command and merges it with the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "pixscene.hcl"

// MaxScale is the largest accepted Scale.
const MaxScale = 1 << 10

// ErrInvalid is wrapped by the errors of Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved settings of a pixscene run.
type Config struct {
	LogLevel  string // debug, info, warn or error
	LogFormat string // text or json
	Scale     int    // size of a scene pixel in the output, >= 1
	Grid      bool   // stroke the pixel grid on raster outputs
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{LogLevel: "info", LogFormat: "text", Scale: 1}
}

// hclFile is the layout of a configuration file.
// Every block and attribute is optional.
type hclFile struct {
	Log    *hclLog    `hcl:"log,block"`
	Output *hclOutput `hcl:"output,block"`
}

type hclLog struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type hclOutput struct {
	Scale *int  `hcl:"scale,optional"`
	Grid  *bool `hcl:"grid,optional"`
}

// File is a decoded configuration file. Its zero value
// overrides nothing.
type File struct {
	content hclFile
}

// Load parses and decodes the configuration file at `path`.
// A missing file is reported with an error wrapping os.ErrNotExist.
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	parsed, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	var f File
	diags = gohcl.DecodeBody(parsed.Body, nil, &f.content)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}
	return &f, nil
}

// Apply returns `c` with the values set in `f` replacing its own.
func (c Config) Apply(f *File) Config {
	if f == nil {
		return c
	}
	if l := f.content.Log; l != nil {
		if l.Level != nil {
			c.LogLevel = *l.Level
		}
		if l.Format != nil {
			c.LogFormat = *l.Format
		}
	}
	if o := f.content.Output; o != nil {
		if o.Scale != nil {
			c.Scale = *o.Scale
		}
		if o.Grid != nil {
			c.Grid = *o.Grid
		}
	}
	return c
}

// Normalize lower cases the textual settings.
func (c Config) Normalize() Config {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	return c
}

// levels maps the accepted log level names to slog levels.
var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level returns the slog level named by LogLevel,
// slog.LevelInfo for unknown names.
func (c Config) Level() slog.Level {
	if level, ok := levels[c.LogLevel]; ok {
		return level
	}
	return slog.LevelInfo
}

// JSONLogs reports whether logs are written as JSON rather than text.
func (c Config) JSONLogs() bool { return c.LogFormat == "json" }

// Validate checks the settings, which should be normalized first.
func (c Config) Validate() error {
	if _, ok := levels[c.LogLevel]; !ok {
		return fmt.Errorf("%w: log level must be 'debug', 'info', 'warn', or 'error', got %q", ErrInvalid, c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log format must be 'text' or 'json', got %q", ErrInvalid, c.LogFormat)
	}
	if c.Scale < 1 || c.Scale > MaxScale {
		return fmt.Errorf("%w: scale must be between 1 and %d, got %d", ErrInvalid, MaxScale, c.Scale)
	}
	return nil
}
