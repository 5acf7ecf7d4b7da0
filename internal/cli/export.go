package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pandaegg/pkg/errors"
	eggio "github.com/matzehuels/pandaegg/pkg/io"
	"github.com/matzehuels/pandaegg/pkg/pipeline"
)

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// sceneFlags holds the flags shared by every command that exports a scene.
type sceneFlags struct {
	format           string // scene format override: json, toml
	coordinateSystem string // <CoordinateSystem> value
	selectedOnly     bool   // export only selected objects
	objects          string // comma-separated object names
	blankLines       bool   // separate top-level blocks with an empty line
	encoding         string // output character set
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "scene format: json, toml (default: from extension)")
	cmd.Flags().StringVar(&f.coordinateSystem, "coordinate-system", "", "coordinate system: Z-up, Y-up, Z-up-right, Y-up-right, Z-up-left, Y-up-left")
	cmd.Flags().BoolVar(&f.selectedOnly, "selected-only", false, "export only objects marked as selected")
	cmd.Flags().StringVar(&f.objects, "objects", "", "export only these objects (comma-separated)")
	cmd.Flags().BoolVar(&f.blankLines, "blank-lines", false, "separate top-level blocks with an empty line")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "output encoding (IANA name, e.g. UTF-8, ISO-8859-1)")
}

// options merges config defaults with the flags the user actually set.
func (f *sceneFlags) options(cmd *cobra.Command, cfg Config, input string) pipeline.Options {
	opts := pipeline.Options{
		Input:    input,
		Format:   f.format,
		Encoding: cfg.Export.Encoding,
		TTL:      time.Duration(cfg.Cache.TTL),
	}
	opts.Export.CoordinateSystem = cfg.Export.CoordinateSystem
	opts.Export.SelectedOnly = cfg.Export.SelectedOnly
	opts.Export.BlankLines = cfg.Export.BlankLines

	flags := cmd.Flags()
	if flags.Changed("coordinate-system") {
		opts.Export.CoordinateSystem = f.coordinateSystem
	}
	if flags.Changed("selected-only") {
		opts.Export.SelectedOnly = f.selectedOnly
	}
	if flags.Changed("blank-lines") {
		opts.Export.BlankLines = f.blankLines
	}
	if flags.Changed("encoding") {
		opts.Encoding = f.encoding
	}
	opts.Export.Objects = parseObjects(f.objects)
	return opts
}

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	sceneFlags
	output      string // output file, "-" for stdout
	keepExt     bool   // do not force the .egg extension
	noCache     bool   // disable the artifact cache
	refresh     bool   // ignore cached artifacts
	interactive bool   // pick objects in a terminal UI
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [scene]",
		Short: "Export a scene file to EGG",
		Long: `Export a scene file (JSON or TOML) to a Panda3D EGG file.

The output defaults to the scene path with its extension replaced by .egg.
Use -o - to write to standard output.`,
		Example: `  pandaegg export box.json
  pandaegg export level.toml -o build/level.egg --coordinate-system Y-up
  pandaegg export level.toml --objects crate,barrel -o -
  pandaegg export level.toml --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: scene path with .egg extension, - for stdout)")
	cmd.Flags().BoolVar(&opts.keepExt, "keep-ext", false, "keep the output extension as given")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached exports")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose objects interactively")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, input string, opts *exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := opts.options(cmd, c.Config, input)
	pipeOpts.Refresh = opts.refresh
	pipeOpts.Logger = logger

	if opts.interactive {
		objects, ok, err := c.pickObjects(ctx, runner, pipeOpts)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Export cancelled")
			return nil
		}
		pipeOpts.Export.Objects = objects
	}

	toStdout := opts.output == stdoutPath
	var spinner *Spinner
	if !c.verbose && !toStdout {
		spinner = newSpinnerWithContext(ctx, "Exporting "+input+"...")
		spinner.Start()
	}
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Export failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	if toStdout {
		_, err := cmd.OutOrStdout().Write(result.Data)
		return err
	}

	path := opts.output
	if path == "" {
		path = input
	}
	fileOpts := eggio.Options{Encoding: pipeOpts.Encoding, KeepExt: opts.keepExt}
	if eggio.ResolvePath(path, fileOpts) == input {
		return errors.New(errors.ErrCodeInvalidPath, "output %s would overwrite the scene", path)
	}
	path, err = eggio.ExportFile(eggio.Lines(result.Lines), path, fileOpts)
	if err != nil {
		return err
	}

	prog.done("Exported " + input)
	printSuccess("Exported %s", StyleHighlight.Render(input))
	printFile(path)
	printStats(result)
	for _, name := range result.Skipped {
		printDetail("skipped %s (no mesh data)", name)
	}
	printNextStep("Inspect the entry tree", appName+" tree "+input)
	return nil
}

// pickObjects loads the scene and lets the user choose mesh objects. ok is
// false when the picker was cancelled.
func (c *CLI) pickObjects(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (objects []string, ok bool, err error) {
	s, err := runner.Load(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	model := NewObjectListModel(s, opts.Export.SelectedOnly)
	if len(model.Items) == 0 {
		return nil, false, errors.New(errors.ErrCodeNotFound, "scene %s has no mesh objects", s.Name)
	}

	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, false, fmt.Errorf("object picker: %w", err)
	}
	m := final.(ObjectListModel)
	if !m.Done {
		return nil, false, nil
	}
	return m.Chosen(), true, nil
}
