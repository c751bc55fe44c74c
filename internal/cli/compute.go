package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/edgecross/pkg/errors"
	ecio "github.com/matzehuels/edgecross/pkg/io"
	"github.com/matzehuels/edgecross/pkg/pipeline"
)

// computeOpts holds the command-line flags for the compute command.
type computeOpts struct {
	metricFlags
	output    string // JSON result file
	seriesDir string // directory for the tab-separated series files
	asJSON    bool   // print JSON to stdout instead of the summary
	perEdge   int    // number of most crossed edges to list
}

// computeCommand creates the compute command.
func (c *CLI) computeCommand() *cobra.Command {
	var opts computeOpts

	cmd := &cobra.Command{
		Use:   "compute <document.json>...",
		Short: "Count edge crossings and build the crossing distribution",
		Long: `Compute reads one or more graph documents and counts the crossings of their
edges at the embedded node positions. Rings are swept in O(m log m) unless
--strategy=naive is given; planes are compared pairwise.

Several documents are computed concurrently. A document given as an http or
https URL is downloaded first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.pipelineOptions(cmd, &opts.metricFlags)
			if err != nil {
				return err
			}
			return c.runCompute(cmd.Context(), args, popts, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON result to this file")
	cmd.Flags().StringVar(&opts.seriesDir, "series-dir", "", "write EC_AVG and the distribution series as text files to this directory")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the JSON result instead of a summary")
	cmd.Flags().IntVar(&opts.perEdge, "per-edge", 0, "list this many of the most crossed edges")

	return cmd
}

func (c *CLI) runCompute(ctx context.Context, paths []string, popts pipeline.Options, opts *computeOpts) error {
	docs := make([]*ecio.Document, len(paths))
	for i, p := range paths {
		doc, err := ecio.LoadDocument(ctx, p)
		if err != nil {
			return err
		}
		docs[i] = doc
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close(context.WithoutCancel(ctx))

	prog := newProgress(c.Logger)
	var results []*pipeline.Result
	if len(docs) == 1 {
		spin := newSpinner(ctx, "Counting crossings...")
		spin.Start()
		res, err := runner.Execute(ctx, docs[0], popts)
		if err != nil {
			spin.StopWithError("Counting failed")
			return pipeline.Classify(err)
		}
		spin.Stop()
		results = []*pipeline.Result{res}
	} else {
		results, err = runner.ExecuteBatch(ctx, docs, popts)
		if err != nil {
			return pipeline.Classify(err)
		}
	}
	prog.done(fmt.Sprintf("Counted %d %s", len(results), plural(len(results), "document", "documents")))

	if err := writeComputeOutputs(paths, results, opts); err != nil {
		return err
	}

	if opts.asJSON {
		if len(results) == 1 {
			return ecio.WriteResult(results[0], os.Stdout)
		}
		return ecio.WriteResult(results, os.Stdout)
	}

	for i, res := range results {
		if i > 0 {
			printNewline()
		}
		printResult(paths[i], res)
		if opts.perEdge > 0 {
			printPerEdge(res.Metric, opts.perEdge)
		}
	}
	if len(results) == 1 && results[0].Metric.Total > 0 {
		printNewline()
		printNextStep("Draw it", fmt.Sprintf("%s render %s --highlight", appName, paths[0]))
	}
	return nil
}

// writeComputeOutputs writes the optional result file and series files.
// With several documents, series go to one subdirectory per document.
func writeComputeOutputs(paths []string, results []*pipeline.Result, opts *computeOpts) error {
	if opts.output != "" {
		if err := errs.ValidatePath(opts.output); err != nil {
			return err
		}
		var v any = results
		if len(results) == 1 {
			v = results[0]
		}
		if err := ecio.ExportResult(v, opts.output); err != nil {
			return err
		}
		if !opts.asJSON {
			printFile(opts.output)
		}
	}

	if opts.seriesDir == "" {
		return nil
	}
	if err := errs.ValidatePath(opts.seriesDir); err != nil {
		return err
	}
	for i, res := range results {
		dir := opts.seriesDir
		if len(results) > 1 {
			dir = filepath.Join(dir, documentName(paths[i]))
		}
		files, err := ecio.WriteSeriesDir(res.Metric, dir)
		if err != nil {
			return err
		}
		if !opts.asJSON {
			for _, f := range files {
				printFile(f)
			}
		}
	}
	return nil
}

// documentName returns the file name of path without its extension.
func documentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
