package cli

import (
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/edgecross/pkg/errors"
	ecio "github.com/matzehuels/edgecross/pkg/io"
	"github.com/matzehuels/edgecross/pkg/pipeline"
	"github.com/matzehuels/edgecross/pkg/store"
)

// resultsCommand creates the results command for browsing stored results.
func (c *CLI) resultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Browse stored metric results",
		Long: `Results lists and shows results saved by compute and serve. Results only
outlive the process with a persistent store backend such as mongo.`,
	}

	cmd.AddCommand(c.resultsListCommand())
	cmd.AddCommand(c.resultsShowCommand())

	return cmd
}

func (c *CLI) resultsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored results, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openResultStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			recs, err := s.List(ctx, limit)
			if err != nil {
				return pipeline.Classify(err)
			}
			if len(recs) == 0 {
				printInfo("No stored results")
				return nil
			}
			for _, rec := range recs {
				printRecord(rec)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of results")
	return cmd
}

func (c *CLI) resultsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !store.ValidID(args[0]) {
				return errs.New(errs.ErrCodeInvalidInput, "invalid result id %q", args[0])
			}
			ctx := cmd.Context()
			s, err := c.openResultStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			rec, err := s.Get(ctx, args[0])
			if err != nil {
				return pipeline.Classify(err)
			}
			return ecio.WriteResult(rec, os.Stdout)
		},
	}
}

func (c *CLI) openResultStore(cmd *cobra.Command) (store.Store, error) {
	s, err := openStore(cmd.Context(), c.cfg.Store)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "result store is disabled (store.backend = %q)", c.cfg.Store.Backend)
	}
	return s, nil
}
