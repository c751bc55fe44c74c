package cli

import (
	"os"

	"github.com/spf13/cobra"

	ecio "github.com/matzehuels/edgecross/pkg/io"
	"github.com/matzehuels/edgecross/pkg/metric"
	"github.com/matzehuels/edgecross/pkg/pipeline"
)

// localCommand creates the local command for restricted counts.
func (c *CLI) localCommand() *cobra.Command {
	var (
		flags  metricFlags
		node   int64
		other  int64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "local <document.json> --node N [--other M]",
		Short: "Count the crossings of one node's edges, or between two nodes",
		Long: `Local counts how often the edges incident to --node cross any edge of the
graph. With --other it only counts crossings between the edges of the two
nodes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.pipelineOptions(cmd, &flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			doc, err := ecio.LoadDocument(ctx, args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			var res *metric.LocalResult
			if cmd.Flags().Changed("other") {
				res, err = runner.Between(ctx, doc, node, other, popts)
			} else {
				res, err = runner.Local(ctx, doc, node, popts)
			}
			if err != nil {
				return pipeline.Classify(err)
			}

			if asJSON {
				return ecio.WriteResult(res, os.Stdout)
			}
			printLocal(res)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Int64VarP(&node, "node", "n", 0, "node whose incident edges are counted")
	cmd.Flags().Int64Var(&other, "other", 0, "only count crossings with the edges of this node")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the JSON result instead of a summary")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}
