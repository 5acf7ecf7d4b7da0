package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pandaegg/pkg/errors"
	"github.com/matzehuels/pandaegg/pkg/export"
	eggio "github.com/matzehuels/pandaegg/pkg/io"
	"github.com/matzehuels/pandaegg/pkg/pipeline"
)

// Config is the optional ~/.config/pandaegg/config.toml. Command-line flags
// override every value.
//
//	[export]
//	coordinate_system = "Y-up"
//	selected_only = true
//	encoding = "UTF-8"
//	blank_lines = true
//
//	[cache]
//	enabled = true
//	ttl = "72h"
type Config struct {
	Export ExportConfig `toml:"export"`
	Cache  CacheConfig  `toml:"cache"`
}

// ExportConfig holds defaults for export, check and tree.
type ExportConfig struct {
	CoordinateSystem string `toml:"coordinate_system"`
	SelectedOnly     bool   `toml:"selected_only"`
	Encoding         string `toml:"encoding"`
	BlankLines       bool   `toml:"blank_lines"`
}

// CacheConfig controls the artifact cache.
type CacheConfig struct {
	Enabled bool     `toml:"enabled"`
	TTL     Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Export: ExportConfig{
			CoordinateSystem: export.DefaultCoordinateSystem,
			Encoding:         eggio.DefaultEncoding,
			BlankLines:       true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     Duration(pipeline.DefaultTTL),
		},
	}
}

// LoadConfig reads the config file at path on top of DefaultConfig. A
// missing file is not an error; found reports whether it existed.
func LoadConfig(path string) (cfg Config, found bool, err error) {
	cfg = DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), false, nil
		}
		return DefaultConfig(), true, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return DefaultConfig(), true, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), true, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, true, nil
}

// Validate checks values that would otherwise only fail at export time.
func (c *Config) Validate() error {
	opts := export.Options{CoordinateSystem: c.Export.CoordinateSystem}
	if err := opts.Validate(); err != nil {
		return err
	}
	if _, err := eggio.LookupEncoding(c.Export.Encoding); err != nil {
		return err
	}
	return nil
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(c.Config)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.configPath)
			return nil
		},
	})

	return cmd
}
