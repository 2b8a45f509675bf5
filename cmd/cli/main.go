package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marquee/adapters/excel"
	"marquee/internal"
	"marquee/internal/config"
	"marquee/internal/dataset"
	"marquee/ui/services"
)

// rootOptions are the flags shared by every subcommand
type rootOptions struct {
	file     string
	sheet    string
	columns  string
	logLevel string
	maxLimit int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "marquee",
		Short:         "Explore weekly Broadway grosses and performances from a CSV or XLSX file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.file, "file", "broadway_data.csv", "CSV or XLSX data file")
	flags.StringVar(&opts.sheet, "sheet", "Sheet1", "Worksheet to read from an XLSX file")
	flags.StringVar(&opts.columns, "columns", "", "YAML file mapping source headers to fields")
	flags.StringVar(&opts.logLevel, "log-level", "WARN", "Log level: ERROR|WARN|INFO|DEBUG|TRACE")
	flags.IntVar(&opts.maxLimit, "max-limit", 30, "Largest accepted ranking size")

	rootCmd.AddCommand(
		newRankCmd(opts),
		newShowsCmd(opts),
		newSummaryCmd(opts),
	)

	return rootCmd
}

// explorer builds an explorer over the file named by the root flags
func (o *rootOptions) explorer() (*services.Explorer, error) {
	columns, err := excel.LoadColumnMap(o.columns)
	if err != nil {
		return nil, err
	}

	// zap writes to stderr, keeping stdout for the report
	logger := internal.NewLogger(internal.ParseLogLevel(o.logLevel))
	internal.SetDefault(logger)
	store := dataset.NewStore(dataset.NewFileLoader(o.file, o.sheet, columns), logger)

	limits := config.ExplorerConfig{DefaultLimit: 10, MaxLimit: o.maxLimit}
	if limits.DefaultLimit > limits.MaxLimit {
		limits.DefaultLimit = limits.MaxLimit
	}
	return services.NewExplorer(store, limits), nil
}

func newRankCmd(opts *rootOptions) *cobra.Command {
	var q services.Query

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank shows by total performances or total gross",
		Long: `Rank shows within a date window.

Bottom rankings leave out shows whose total is zero in the window.

Example: marquee rank --start 2019-01-01 --end 2019-12-31 --metric gross --direction bottom --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, err := opts.explorer()
			if err != nil {
				return err
			}
			view, err := explorer.Explore(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRanking(view))
			return nil
		},
	}

	addWindowFlags(cmd, &q)
	cmd.Flags().StringVar(&q.Metric, "metric", "", "Ranking metric: performances|gross (default performances)")
	cmd.Flags().StringVar(&q.Direction, "direction", "", "Ranking direction: top|bottom (default top)")
	cmd.Flags().StringVar(&q.Limit, "limit", "", "Number of shows to rank (default 10)")

	return cmd
}

func newShowsCmd(opts *rootOptions) *cobra.Command {
	var q services.Query

	cmd := &cobra.Command{
		Use:   "shows",
		Short: "List the shows with at least one week in the date window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, err := opts.explorer()
			if err != nil {
				return err
			}
			view, err := explorer.Explore(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderShows(view))
			return nil
		},
	}

	addWindowFlags(cmd, &q)
	return cmd
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var q services.Query

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize weekly grosses and performances in the date window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, err := opts.explorer()
			if err != nil {
				return err
			}
			view, err := explorer.Explore(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSummary(view))
			return nil
		},
	}

	addWindowFlags(cmd, &q)
	cmd.Flags().StringVar(&q.Show, "show", "", "Restrict the summary to one show")
	return cmd
}

func addWindowFlags(cmd *cobra.Command, q *services.Query) {
	cmd.Flags().StringVar(&q.Start, "start", "", "First week, YYYY-MM-DD (default: earliest week in the data)")
	cmd.Flags().StringVar(&q.End, "end", "", "Last week, YYYY-MM-DD (default: latest week in the data)")
}
