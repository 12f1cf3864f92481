package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"retail-bi/internal/analytics"
	"retail-bi/internal/filter"
	"retail-bi/internal/visuals"

	"github.com/spf13/cobra"
)

var (
	viewParams filter.Params
	viewYear   int
	viewCharts bool
)

var viewCmd = &cobra.Command{
	Use:       "view <page>",
	Short:     "Print one page view as JSON",
	Args:      cobra.ExactArgs(1),
	ValidArgs: pageNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := analytics.ParsePage(args[0])
		if err != nil {
			return err
		}
		st, err := viewParams.State()
		if err != nil {
			return err
		}
		year := cfg.DashboardYear
		if cmd.Flags().Changed("year") {
			year = viewYear
		}

		view, err := analytics.Render(data, page, st, year, time.Now())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("failed to encode view: %w", err)
		}
		if viewCharts {
			for _, chart := range visuals.PageCharts(view) {
				fmt.Fprintln(out, chart)
			}
		}
		return nil
	},
}

func pageNames() []string {
	names := make([]string, len(analytics.Pages))
	for i, p := range analytics.Pages {
		names[i] = string(p)
	}
	return names
}

func init() {
	f := viewCmd.Flags()
	f.StringVar(&viewParams.From, "from", "", "inclusive lower date bound (YYYY-MM-DD)")
	f.StringVar(&viewParams.To, "to", "", "inclusive upper date bound (YYYY-MM-DD)")
	f.StringSliceVar(&viewParams.Locations, "locations", nil, "location codes")
	f.StringSliceVar(&viewParams.Customers, "customers", nil, "customer codes")
	f.StringSliceVar(&viewParams.Products, "products", nil, "product codes")
	f.StringSliceVar(&viewParams.Stores, "stores", nil, "store codes")
	f.StringVar(&viewParams.Granularity, "granularity", "month", "time buckets: day, month, quarter or year")
	f.IntVar(&viewYear, "year", 0, "dashboard year (default: DASHBOARD_YEAR, else the latest year in the data)")
	f.BoolVar(&viewCharts, "charts", false, "also print Mermaid charts")
}
