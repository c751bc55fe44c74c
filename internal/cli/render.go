package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/edgecross/pkg/errors"
	ecio "github.com/matzehuels/edgecross/pkg/io"
	"github.com/matzehuels/edgecross/pkg/pipeline"
	"github.com/matzehuels/edgecross/pkg/render"
	"github.com/matzehuels/edgecross/pkg/render/ringdot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file path
	format    string  // svg, dot, pdf or png; inferred from output when empty
	highlight bool    // color crossing edges
	radius    float64 // ring radius in inches
	scale     float64 // plane coordinate scale
	pngScale  float64 // rasterization scale for PNG
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags metricFlags
		opts  renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render <document.json>",
		Short: "Draw the graph at its embedded positions",
		Long: `Render draws the nodes at their identifier-space positions (on a circle for
rings, at their coordinates for planes) and connects them with straight edges.
With --highlight, edges that cross at least once are drawn in red.

PDF and PNG output require rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.pipelineOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], popts, &opts)
		},
	}

	cmd.Flags().StringVar(&flags.strategy, "strategy", "", "counting strategy used for --highlight")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <document>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, dot, pdf, png (default from extension)")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "color edges that take part in a crossing")
	cmd.Flags().Float64Var(&opts.radius, "radius", ringdot.DefaultRadius, "ring radius in inches")
	cmd.Flags().Float64Var(&opts.scale, "scale", ringdot.DefaultScale, "multiplier for plane coordinates")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 2, "resolution multiplier for PNG output")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, popts pipeline.Options, opts *renderOpts) error {
	format, output, err := resolveRenderOutput(path, opts)
	if err != nil {
		return err
	}

	doc, err := ecio.LoadDocument(ctx, path)
	if err != nil {
		return err
	}
	snap, emb, err := doc.Build()
	if err != nil {
		return pipeline.Classify(err)
	}

	dot, err := ringdot.ToDOT(snap, emb, ringdot.Options{
		Highlight: opts.highlight,
		Radius:    opts.radius,
		Scale:     opts.scale,
		Crossings: popts.CrossingOptions(),
	})
	if err != nil {
		return pipeline.Classify(err)
	}
	c.Logger.Debug("generated DOT", "nodes", snap.NodeCount(), "edges", snap.EdgeCount(), "bytes", len(dot))

	data, err := renderFormat(ctx, dot, format, opts.pngScale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered %s", path)
	printFile(output)
	return nil
}

// resolveRenderOutput picks the format and output path from the flags.
func resolveRenderOutput(path string, opts *renderOpts) (format, output string, err error) {
	format = strings.ToLower(opts.format)
	output = opts.output
	switch {
	case format == "" && output == "":
		format = render.FormatSVG
	case format == "":
		format = render.FormatFromPath(output)
	}

	switch format {
	case render.FormatSVG, render.FormatDOT, render.FormatPDF, render.FormatPNG:
	default:
		return "", "", errs.New(errs.ErrCodeInvalidInput, "unknown format %q (must be one of: svg, dot, pdf, png)", opts.format)
	}

	if output == "" {
		base := strings.TrimSuffix(path, ".json")
		if ecio.IsRemote(path) {
			base = documentName(path)
		}
		output = base + "." + format
	}
	if err := errs.ValidatePath(output); err != nil {
		return "", "", err
	}
	return format, output, nil
}

func renderFormat(ctx context.Context, dot, format string, pngScale float64) ([]byte, error) {
	if format == render.FormatDOT {
		return []byte(dot), nil
	}

	spin := newSpinner(ctx, "Rendering...")
	spin.Start()
	defer spin.Stop()

	svg, err := ringdot.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case render.FormatPDF:
		return render.ToPDF(ctx, svg)
	case render.FormatPNG:
		return render.ToPNG(ctx, svg, pngScale)
	}
	return svg, nil
}
