package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Xrenya/activity-tracker/internal/bootstrap"
	"github.com/Xrenya/activity-tracker/internal/modules/activity/dto"
	"github.com/Xrenya/activity-tracker/internal/platform/config"
	"github.com/Xrenya/activity-tracker/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	days       string
	activities string
	port       int
	debug      bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Daily activity tracker dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, &flags)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML config file")
	pf.StringVar(&flags.days, "days", "", "days CSV path (day_id;date)")
	pf.StringVar(&flags.activities, "activities", "", "activities CSV path (day_id;time;name;track_id;activity)")
	pf.IntVar(&flags.port, "port", 0, "dashboard port")
	pf.BoolVar(&flags.debug, "debug", false, "debug logging")

	root.AddCommand(newServeCmd(&flags))
	root.AddCommand(newSummaryCmd(&flags))
	root.AddCommand(newIndexCmd(&flags))
	root.AddCommand(newTUICmd(&flags))
	return root
}

// loadConfig applies command-line flags on top of the file and environment.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("days") {
		cfg.DaysPath = flags.days
	}
	if cmd.Flags().Changed("activities") {
		cfg.ActivitiesPath = flags.activities
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = flags.port
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = flags.debug
	}
	return cfg, cfg.Validate()
}

func loadApp(cmd *cobra.Command, flags *globalFlags, opts ...bootstrap.Option) (*bootstrap.App, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, cfg.Debug)
	return bootstrap.New(cmd.Context(), cfg, logger, opts...)
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
}

func runServe(cmd *cobra.Command, flags *globalFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	app, err := loadApp(cmd, flags)
	if err != nil {
		return err
	}
	defer app.Close()
	return app.Serve(ctx)
}

func newSummaryCmd(flags *globalFlags) *cobra.Command {
	var category, trackID string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print minute totals per category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			summary, err := app.Activity.Summary(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "records=%d track_ids=%d unmatched_days=%d total_minutes=%.2f\n\n",
				summary.Records, summary.TrackIDs, summary.UnmatchedDays, summary.TotalMinutes)

			overall, err := app.Activity.OverallTotals(ctx, category)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintf(tw, "%s\tMINUTES\n", overall.Category)
			printTotals(tw, overall.Totals)
			_ = tw.Flush()

			if trackID == "" {
				return nil
			}
			track, err := app.Activity.TrackTotals(ctx, dto.FilterInput{TrackID: trackID, Category: category})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "\ntrack %s", trackID)
			if track.Fallback {
				_, _ = fmt.Fprint(out, " (no matching rows, showing all records)")
			}
			_, _ = fmt.Fprintln(out)
			tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			printTotals(tw, track.Totals)
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "top-1", "prediction level: top-1|top-2")
	cmd.Flags().StringVar(&trackID, "track-id", "", "also print totals for one tracking id")
	return cmd
}

func printTotals(tw *tabwriter.Writer, totals []dto.CategoryTotalOutput) {
	for _, t := range totals {
		_, _ = fmt.Fprintf(tw, "%s\t%.2f\n", t.Category, t.TotalMinutes)
	}
}

func newIndexCmd(flags *globalFlags) *cobra.Command {
	var dbPath, category string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Project joined records into a SQLite index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.IndexPath = dbPath
			}
			app, err := bootstrap.New(cmd.Context(), cfg, logging.New(cfg.LogLevel, cfg.Debug), bootstrap.WithIndex())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.Activity.Reindex(cmd.Context(), category)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d records into %s\n", out.Records, cfg.IndexPath)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			printTotals(tw, out.Totals)
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite path (defaults to the configured index path)")
	cmd.Flags().StringVar(&category, "category", "top-1", "prediction level reported after indexing")
	return cmd
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}
