package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pandaegg/pkg/pipeline"
	"github.com/matzehuels/pandaegg/pkg/render/outline"
)

const (
	treeFormatText = "text"
	treeFormatDOT  = "dot"
	treeFormatSVG  = "svg"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	sceneFlags
	output   string // output file, empty for stdout
	treeFmt  string // text, dot, svg
	maxDepth int    // outline depth limit
	values   bool   // include scalar values in labels
}

// treeCommand creates the tree command, which shows the structure of the
// document a scene exports to.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{treeFmt: treeFormatText, maxDepth: 2}

	cmd := &cobra.Command{
		Use:   "tree [scene]",
		Short: "Show the entry tree a scene exports to",
		Example: `  pandaegg tree box.json
  pandaegg tree level.toml --depth 0 --values
  pandaegg tree level.toml -f svg -o level.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateTreeFormat(opts.treeFmt); err != nil {
				return err
			}
			return c.runTree(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.treeFmt, "tree-format", "f", opts.treeFmt, "output format: text, dot, svg")
	cmd.Flags().IntVarP(&opts.maxDepth, "depth", "d", opts.maxDepth, "maximum depth (0 for unlimited)")
	cmd.Flags().BoolVar(&opts.values, "values", false, "include values in labels")

	return cmd
}

func validateTreeFormat(f string) error {
	switch f {
	case treeFormatText, treeFormatDOT, treeFormatSVG:
		return nil
	}
	return fmt.Errorf("invalid tree format: %s (must be 'text', 'dot', or 'svg')", f)
}

func (c *CLI) runTree(cmd *cobra.Command, input string, opts *treeOpts) error {
	ctx := cmd.Context()

	// The tree is needed, not the bytes, so the cache is bypassed.
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	pipeOpts := opts.options(cmd, c.Config, input)
	pipeOpts.Logger = loggerFromContext(ctx)

	s, err := runner.Load(ctx, pipeOpts)
	if err != nil {
		return err
	}
	exported, err := runner.Export(ctx, s, pipeOpts)
	if err != nil {
		return err
	}

	outOpts := outline.Options{MaxDepth: opts.maxDepth, Values: opts.values}
	var data []byte
	switch opts.treeFmt {
	case treeFormatText:
		data = []byte(outline.Text(exported.Document, outOpts))
	case treeFormatDOT:
		data = []byte(outline.ToDOT(exported.Document, outOpts))
	case treeFormatSVG:
		data, err = outline.RenderSVG(ctx, outline.ToDOT(exported.Document, outOpts))
		if err != nil {
			return err
		}
	}

	if opts.output == "" {
		return writeAll(cmd.OutOrStdout(), data)
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Wrote %s tree", opts.treeFmt)
	printFile(opts.output)
	return nil
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
