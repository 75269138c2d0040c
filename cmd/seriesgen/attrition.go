package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/indicator-dashboard/internal/workforce"
)

func newAttritionCmd() *cobra.Command {
	var companyPath, benchmarkPath string

	cmd := &cobra.Command{
		Use:   "attrition",
		Short: "Print yearly attrition from an employee export (';' separated, start_date/end_date)",
		RunE: func(cmd *cobra.Command, args []string) error {
			company, err := readEmployment(companyPath)
			if err != nil {
				return err
			}

			var benchmark []workforce.AttritionRate
			if benchmarkPath != "" {
				records, err := readEmployment(benchmarkPath)
				if err != nil {
					return err
				}
				benchmark = workforce.Attrition(records)
			}

			return writeAttrition(cmd.OutOrStdout(), workforce.Attrition(company), benchmark)
		},
	}
	cmd.Flags().StringVar(&companyPath, "file", "", "Company employee export")
	cmd.Flags().StringVar(&benchmarkPath, "benchmark", "", "Benchmark employee export")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readEmployment(path string) ([]workforce.EmploymentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := workforce.ParseEmploymentCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func writeAttrition(w io.Writer, company, benchmark []workforce.AttritionRate) error {
	byYear := make(map[int]float64, len(benchmark))
	for _, r := range benchmark {
		byYear[r.Year] = r.Rate
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tHEADCOUNT\tTERMINATIONS\tRATE\tBENCHMARK")
	for _, r := range company {
		bench := "-"
		if rate, ok := byYear[r.Year]; ok {
			bench = fmt.Sprintf("%.4f", rate)
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.4f\t%s\n", r.Year, r.Headcount, r.Terminations, r.Rate, bench)
	}
	return tw.Flush()
}
