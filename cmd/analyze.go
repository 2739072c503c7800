package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/rentsignal/internal/model"
	"github.com/sells-group/rentsignal/internal/neighborhood"
)

var (
	analyzeFormat string
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [neighborhood...]",
	Short: "Print neighborhood price trends and recommendations",
	Long:  "Analyzes the named neighborhoods, or every known neighborhood when none are given, and prints one row per neighborhood.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initAnalyzer(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		var results []neighborhood.Result
		if len(args) == 0 {
			results, err = a.AnalyzeAll()
			if err != nil {
				return err
			}
		} else {
			for _, name := range args {
				r, err := a.Analyze(name)
				if err != nil {
					return err
				}
				results = append(results, r)
			}
		}

		out := io.Writer(os.Stdout)
		if analyzeOutput != "" {
			f, err := os.Create(analyzeOutput)
			if err != nil {
				return eris.Wrap(err, "analyze: create output")
			}
			defer f.Close() //nolint:errcheck
			out = f
		}

		return writeResults(out, analyzeFormat, results, cfg.Datasets.TimePointSpecs())
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", "output format: table, json or yaml")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}

// writeResults renders results in the requested format.
func writeResults(out io.Writer, format string, results []neighborhood.Result, tps [model.NumTimePoints]model.TimePointSpec) error {
	switch strings.ToLower(format) {
	case "", "table":
		formatResultsTable(out, results, tps)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return eris.Wrap(err, "analyze: encode json")
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return eris.Wrap(err, "analyze: encode yaml")
		}
		return eris.Wrap(enc.Close(), "analyze: close yaml encoder")
	default:
		return eris.Errorf("analyze: unknown format %q", format)
	}
}

func formatResultsTable(out io.Writer, results []neighborhood.Result, tps [model.NumTimePoints]model.TimePointSpec) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := []string{"NEIGHBORHOOD", "RECOMMENDATION", "ZIPS"}
	for _, tp := range tps {
		header = append(header, "RENT "+strings.ToUpper(tp.Label))
	}
	for _, tp := range tps {
		header = append(header, "STR "+strings.ToUpper(tp.Label))
	}
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, r := range results {
		row := []string{r.Name, r.Category.Label(), fmt.Sprintf("%d", len(r.ZipCodes))}
		for _, p := range r.Series.Rental {
			row = append(row, formatPrice(p))
		}
		for _, p := range r.Series.Listing {
			row = append(row, formatPrice(p))
		}
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func formatPrice(p model.Price) string {
	if !p.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", p.Value)
}
