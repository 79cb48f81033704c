package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cascadevis/cascade/pkg/chart"
	"github.com/cascadevis/cascade/pkg/pipeline"
	"github.com/cascadevis/cascade/pkg/table"
)

// renderOpts holds the command-line flags for the render command.
// These options control the theme, viewport, and output formats.
type renderOpts struct {
	output       string  // output file path (or base path for multiple formats)
	formats      []string // output formats: "svg", "png", "pdf", "json"
	theme        string  // TOML theme file path
	width        float64 // viewport width in pixels
	height       float64 // viewport height in pixels
	noValues     bool    // suppress value labels above bars
	noConnectors bool    // suppress dashed connectors between steps
	rotateLabels float64 // axis label rotation in degrees
	refresh      bool    // re-render even when a cached artifact exists
	noCache      bool    // disable the artifact cache entirely
}

// renderCommand creates the render command for generating chart artifacts.
// It reads a table file (CSV, XLSX, YAML, or JSON), runs the full pipeline,
// and writes one output file per requested format.
//
// Default settings:
//   - format: svg
//   - width: 800px, height: 600px
//   - values and connectors shown
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a table to waterfall chart artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "TOML theme file with chart options")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().BoolVar(&opts.noValues, "no-values", false, "hide value labels")
	cmd.Flags().BoolVar(&opts.noConnectors, "no-connectors", false, "hide step connectors")
	cmd.Flags().Float64Var(&opts.rotateLabels, "rotate-labels", 0, "rotate axis labels by N degrees")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached artifacts and re-render")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// loadTheme builds the chart config from the theme file and flag overrides.
func loadTheme(opts *renderOpts) (chart.Config, error) {
	cfg := chart.DefaultConfig()
	if opts.theme != "" {
		var err error
		if cfg, err = chart.LoadConfig(opts.theme); err != nil {
			return cfg, err
		}
	}
	if opts.noValues {
		cfg.ShowValues = false
	}
	if opts.noConnectors {
		cfg.ShowConnectors = false
	}
	if opts.rotateLabels != 0 {
		cfg.LabelRotation = opts.rotateLabels
	}
	cfg.Clamp()
	return cfg, nil
}

// runRender loads the table from input, runs the pipeline, and writes the
// requested artifacts next to the input file unless --output overrides it.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := c.Logger
	logger.Infof("Rendering %s", input)

	t, err := table.FromFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded table: %d categories, %d measures", len(t.Categories), len(t.Measures))

	cfg, err := loadTheme(opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	sp := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input))
	sp.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Table:   t,
		Config:  &cfg,
		Width:   opts.width,
		Height:  opts.height,
		Formats: opts.formats,
		Refresh: opts.refresh,
	})
	if err != nil {
		sp.StopWithError("Render failed")
		return err
	}
	sp.StopWithSuccess(fmt.Sprintf("Rendered %d artifact(s) in %s", len(result.Artifacts), prog.elapsed()))

	if err := writeArtifacts(input, opts, result.Artifacts); err != nil {
		return err
	}

	cached := false
	for _, hit := range result.CacheInfo.RenderHits {
		if hit {
			cached = true
		}
	}
	printStats(result.Stats.BarCount, len(t.Measures), cached)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., report.svg, report.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered format to its own file. A single format
// honors --output verbatim; multiple formats share the base path.
func writeArtifacts(input string, opts *renderOpts, artifacts map[string][]byte) error {
	if len(opts.formats) == 1 {
		format := opts.formats[0]
		path := opts.output
		if path == "" {
			path = basePath("", input) + "." + format
		}
		if err := writeArtifact(path, artifacts[format]); err != nil {
			return err
		}
		printFile(path)
		return nil
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if err := writeArtifact(path, artifacts[format]); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		printFile(path)
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
