package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/indicator-dashboard/internal/catalog"
	"github.com/indicator-dashboard/internal/deviation"
	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/pkg/utils"
	"github.com/indicator-dashboard/internal/series"
)

const (
	formatCSV  = "csv"
	formatJSON = "json"
)

type options struct {
	catalogPath string
	indicator   string
	selection   string
	format      string
	tail        int
	noNoise     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "seriesgen",
		Short: "Generate synthetic indicator series",
		Long: `Generate the same weekly indicator series the dashboard API serves.

Examples:
  seriesgen list
  seriesgen series --indicator GDP --selection Construction --tail 12
  seriesgen series --indicator "Level of wages" --format json --no-noise
  seriesgen deviation --indicator GDP --selection Construction
  seriesgen attrition --file employees.csv --benchmark market.csv`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Path to catalog YAML (default: embedded catalog)")

	root.AddCommand(newListCmd(opts), newSeriesCmd(opts), newDeviationCmd(opts), newAttritionCmd())
	return root
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog indicators with their generation rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(opts.catalogPath)
			if err != nil {
				return err
			}
			return writeList(cmd.OutOrStdout(), cat, series.DefaultRegistry())
		},
	}
}

func newSeriesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the series of one indicator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatCSV && opts.format != formatJSON {
				return fmt.Errorf("unknown format %q (csv|json)", opts.format)
			}
			if opts.tail < 0 || opts.tail > series.SeriesLength {
				return fmt.Errorf("--tail must be between 0 and %d", series.SeriesLength)
			}

			res, err := generate(opts)
			if err != nil {
				return err
			}
			return writeSeries(cmd.OutOrStdout(), res, opts)
		},
	}
	addIndicatorFlags(cmd, opts)
	cmd.Flags().StringVar(&opts.format, "format", formatCSV, "Output format: csv, json")
	cmd.Flags().IntVar(&opts.tail, "tail", 0, "Print only the last n weeks (0 - whole series)")
	cmd.Flags().BoolVar(&opts.noNoise, "no-noise", false, "Disable proportional noise")
	return cmd
}

func newDeviationCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deviation",
		Short: "Print the recent-weeks deviation of one indicator",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := generate(opts)
			if err != nil {
				return err
			}
			if res.IsGeo() {
				return fmt.Errorf("%q is a map indicator, it has no time series", opts.indicator)
			}

			d, err := deviation.CalculateSeries(res.Series)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		},
	}
	addIndicatorFlags(cmd, opts)
	return cmd
}

func addIndicatorFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.indicator, "indicator", "", "Indicator name")
	cmd.Flags().StringVar(&opts.selection, "selection", "", "Dashboard selection used as seed")
	_ = cmd.MarkFlagRequired("indicator")
}

func generate(opts *options) (*domain.SeriesResult, error) {
	var genOpts []series.Option
	if opts.noNoise {
		genOpts = append(genOpts, series.WithoutNoise())
	}
	return series.NewGenerator(genOpts...).Generate(opts.indicator, utils.NewRand(opts.selection))
}

func writeList(w io.Writer, cat *catalog.Catalog, reg *series.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDICATOR\tDISTRIBUTION\tSHOCK\tPLOT")
	for _, name := range cat.AllIndicators() {
		dist, shock := "-", "-"
		if spec, ok := reg.Lookup(name); ok {
			dist, shock = string(spec.Distribution), string(spec.Shock)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, dist, shock, cat.PlotType(name))
	}
	return tw.Flush()
}

func writeSeries(w io.Writer, res *domain.SeriesResult, opts *options) error {
	if opts.format == formatJSON {
		if !res.IsGeo() && opts.tail > 0 {
			res.Series = tailSeries(res.Series, opts.tail)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	cw := csv.NewWriter(w)
	if res.IsGeo() {
		_ = cw.Write([]string{"lat", "lon"})
		for _, p := range res.Points {
			_ = cw.Write([]string{formatFloat(p.Lat), formatFloat(p.Lon)})
		}
	} else {
		ts := res.Series
		if opts.tail > 0 {
			ts = tailSeries(ts, opts.tail)
		}
		_ = cw.Write([]string{"date", "value"})
		for i, d := range ts.Dates {
			_ = cw.Write([]string{d.Format(time.DateOnly), formatFloat(ts.Values[i])})
		}
	}
	cw.Flush()
	return cw.Error()
}

func tailSeries(ts *domain.TimeSeries, n int) *domain.TimeSeries {
	points := series.Tail(ts, n)
	out := &domain.TimeSeries{
		Dates:  make([]time.Time, len(points)),
		Values: make([]float64, len(points)),
	}
	for i, p := range points {
		out.Dates[i] = p.Date
		out.Values[i] = p.Value
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
