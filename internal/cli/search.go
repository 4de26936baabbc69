package cli

import (
	"context"
	"fmt"
	"github.com/maxaizer/sam-finder/internal/config"
	"github.com/maxaizer/sam-finder/internal/console"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	"github.com/spf13/cobra"
	"io"
	"time"
)

type searchOptions struct {
	postedFrom   string
	postedTo     string
	deadlineFrom string
	deadlineTo   string
	limit        int
}

var searchFlags searchOptions

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search and print the result",
	Long: `Run one search against SAM.gov with the given date filters and print
the outcome with the returned opportunities. Dates use YYYY-MM-DD.

Example:
  sam-finder search --posted-from 2024-05-01 --posted-to 2024-05-31
  sam-finder search --deadline-to 2024-07-01 --limit 25`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSearch(cmd.Context(), appConfig, searchFlags, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchFlags.postedFrom, "posted-from", "", "earliest posted date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchFlags.postedTo, "posted-to", "", "latest posted date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchFlags.deadlineFrom, "deadline-from", "", "earliest response deadline (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchFlags.deadlineTo, "deadline-to", "", "latest response deadline (YYYY-MM-DD)")
	searchCmd.Flags().IntVar(&searchFlags.limit, "limit", 0, "number of records to request (overrides config)")
}

func runSearch(ctx context.Context, cfg *config.Config, opts searchOptions, out io.Writer) error {

	filters, err := opts.filters()
	if err != nil {
		return err
	}

	if opts.limit != 0 {
		cfg.Sam.Limit = opts.limit
	}

	application, err := newApp(cfg)
	if err != nil {
		return fmt.Errorf("can't create application: %w", err)
	}

	application.form.SetFilters(filters)
	notification := application.form.Search(ctx)

	printer := console.NewPrinter(out)
	printer.Notification(notification)

	if summary := application.searcher.Last(); summary != nil {
		printer.Opportunities(summary.Opportunities)
	}

	if notification.Kind == models.KindError {
		return errReported
	}
	return nil
}

func (o searchOptions) filters() (models.DateFilterSet, error) {
	var filters models.DateFilterSet
	var err error

	flags := []struct {
		name   string
		value  string
		target **time.Time
	}{
		{"posted-from", o.postedFrom, &filters.PostedFrom},
		{"posted-to", o.postedTo, &filters.PostedTo},
		{"deadline-from", o.deadlineFrom, &filters.DeadlineFrom},
		{"deadline-to", o.deadlineTo, &filters.DeadlineTo},
	}

	for _, flag := range flags {
		if flag.value == "" {
			continue
		}
		if *flag.target, err = parseDate(flag.value); err != nil {
			return models.DateFilterSet{}, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", flag.name, flag.value)
		}
	}
	return filters, nil
}

func parseDate(value string) (*time.Time, error) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
