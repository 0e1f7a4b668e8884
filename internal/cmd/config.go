package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/qmk-notifier/qmk-notifier-go/internal/config"
	"github.com/qmk-notifier/qmk-notifier-go/internal/configpaths"
)

// ConfigWriteError indicates a configuration file could not be written.
type ConfigWriteError struct {
	Path string
	Err  error
}

func (e *ConfigWriteError) Error() string {
	return fmt.Sprintf("writing config file %s: %v", e.Path, e.Err)
}

func (e *ConfigWriteError) Unwrap() error { return e.Err }

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration file with the built-in defaults"`
}

// ConfigInit scaffolds a configuration file.
type ConfigInit struct {
	Format string `help:"Output format" enum:"toml,yaml,json" default:"toml"`
	Output string `help:"Destination file path (defaults to the platform config directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// Run writes a configuration template containing every supported key with
// its built-in default value.
func (c *ConfigInit) Run(logger *slog.Logger) error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	dest := c.Output
	if dest == "" {
		var err error
		dest, err = configpaths.DefaultConfigPath(format)
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	root := config.Template()
	var data []byte
	var err error
	switch format {
	case "toml":
		data, err = toml.Marshal(root)
	case "yaml":
		data, err = yaml.Marshal(root)
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return &ConfigWriteError{Path: dest, Err: err}
	}

	logger.Info("wrote configuration template", "path", dest)
	return nil
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "toml":
		return "toml"
	case "yaml", "yml":
		return "yaml"
	case "json":
		return "json"
	default:
		return ""
	}
}
