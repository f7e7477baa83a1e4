package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/dot"
	"github.com/coursegraph/coursegraph/pkg/errors"
	"github.com/coursegraph/coursegraph/pkg/pipeline"
)

// renderCommand creates the render command for rasterizing DOT files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "render [file.dot]",
		Short: "Render a DOT graph to SVG or PNG",
		Long: `Render a DOT graph to SVG or PNG.

The render command takes a DOT file (produced by 'graph') and renders it
with Graphviz. Use this to re-render a saved graph without hitting the
catalog again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseRenderFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png (comma-separated)")

	return cmd
}

// parseRenderFormats parses the --format flag for render, defaulting to svg.
func parseRenderFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// runRender loads the DOT file and renders each requested format.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", input)
	}
	dotText := string(data)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var rendered []byte
		switch format {
		case pipeline.FormatDOT:
			rendered = data
		case pipeline.FormatSVG:
			rendered, err = dot.RenderSVG(ctx, dotText)
		case pipeline.FormatPNG:
			rendered, err = dot.RenderPNG(ctx, dotText)
		}
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = rendered
	}
	spinner.Stop()

	fallback := strings.TrimSuffix(input, filepath.Ext(input))
	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   formats,
		fallback:  fallback,
		output:    output,
	}); err != nil {
		return err
	}

	printSuccess("Render complete")
	return nil
}
