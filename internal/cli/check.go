package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pandaegg/pkg/diff"
	eggio "github.com/matzehuels/pandaegg/pkg/io"
)

// errOutOfDate is returned by check when the file differs from a fresh export.
var errOutOfDate = fmt.Errorf("egg file is out of date")

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	sceneFlags
	context int // unified diff context lines
	quiet   bool
}

// checkCommand creates the check command, which compares an existing EGG
// file with a fresh export of its scene.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [scene] [egg]",
		Short: "Check that an EGG file matches its scene",
		Long: `Export the scene in memory and compare it with an existing EGG file.

Prints a unified diff and exits non-zero when they differ. The EGG path
defaults to the scene path with its extension replaced by .egg.`,
		Example: `  pandaegg check box.json
  pandaegg check level.toml build/level.egg --coordinate-system Y-up`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := eggio.EnsureExt(args[0], eggio.Ext)
			if len(args) == 2 {
				target = args[1]
			}
			return c.runCheck(cmd, args[0], target, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.context, "context", "U", diff.DefaultContext, "lines of diff context")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "report only, do not print the diff")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, input, target string, opts *checkOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(false)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := opts.options(cmd, c.Config, input)
	pipeOpts.Logger = loggerFromContext(ctx)
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}

	existing, err := eggio.ImportFile(target, pipeOpts.Encoding)
	if err != nil {
		return err
	}

	d := diff.Unified(target, input, existing, result.Lines, opts.context)
	if d == "" {
		printSuccess("%s is up to date", StyleHighlight.Render(target))
		return nil
	}

	printWarning("%s differs from %s", target, input)
	if !opts.quiet {
		fmt.Fprint(cmd.OutOrStdout(), d)
	}
	return errOutOfDate
}
