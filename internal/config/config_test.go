package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pixscene.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to set up config file")
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
log {
  level  = "debug"
  format = "json"
}

output {
  scale = 8
  grid  = true
}
`)
	f, err := Load(path)
	require.NoError(t, err)

	got := Default().Apply(f)
	require.Equal(t, Config{LogLevel: "debug", LogFormat: "json", Scale: 8, Grid: true}, got)
	require.NoError(t, got.Validate())
}

func TestLoad_PartialFile(t *testing.T) {
	path := writeConfig(t, `
output {
  scale = 3
}
`)
	f, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Config{LogLevel: "info", LogFormat: "text", Scale: 3}, Default().Apply(f))
}

func TestLoad_EmptyFile(t *testing.T) {
	f, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), Default().Apply(f))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrNotExist), "missing files must be recognizable: %v", err)
}

func TestLoad_Errors(t *testing.T) {
	for name, content := range map[string]string{
		"syntax":        "log {\n  level = \n",
		"unknown block": "render {\n}\n",
		"unknown field": "log {\n  colour = true\n}\n",
		"wrong type":    "output {\n  scale = \"big\"\n}\n",
		"twice":         "log {\n}\nlog {\n}\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			require.Contains(t, err.Error(), "config file")
		})
	}
}

func TestApply_Nil(t *testing.T) {
	require.Equal(t, Default(), Default().Apply(nil))
	require.Equal(t, Default(), Default().Apply(&File{}))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())
	require.NoError(t, Config{LogLevel: "WARN", LogFormat: "Text", Scale: 1}.Normalize().Validate())
	require.NoError(t, Config{LogLevel: "info", LogFormat: "json", Scale: MaxScale}.Validate())

	for name, cfg := range map[string]Config{
		"level":  {LogLevel: "verbose", LogFormat: "text", Scale: 1},
		"format": {LogLevel: "info", LogFormat: "xml", Scale: 1},
		"scale":  {LogLevel: "info", LogFormat: "text", Scale: 0},
		"huge":   {LogLevel: "info", LogFormat: "text", Scale: MaxScale + 1},
	} {
		err := cfg.Validate()
		require.Error(t, err, name)
		require.True(t, errors.Is(err, ErrInvalid), name)
	}
}

func TestLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	} {
		cfg := Config{LogLevel: name}
		require.Equal(t, want, cfg.Level(), name)
		// every named level is accepted by Validate, and only those
		_, known := levels[name]
		cfg.LogFormat, cfg.Scale = "text", 1
		require.Equal(t, known, cfg.Validate() == nil, name)
	}
	require.True(t, Config{LogFormat: "json"}.JSONLogs())
	require.False(t, Default().JSONLogs())
}
