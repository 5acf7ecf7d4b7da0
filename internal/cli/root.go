package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pandaegg/pkg/observability"
)

// setup runs before every subcommand. It loads the config file, applies the
// --verbose flag and attaches the logger to the command context.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level, and pipeline/cache hooks are logged
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	level := LogInfo
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err == nil {
			path = filepath.Join(dir, configFileName)
		}
	}
	if path != "" {
		cfg, found, err := LoadConfig(path)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if explicit && !found {
			return fmt.Errorf("config: %s not found", path)
		}
		if found {
			c.Logger.Debug("loaded config", "path", path)
		}
		c.Config = cfg
		c.configPath = path
	}

	if c.verbose {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
