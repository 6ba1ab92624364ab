package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	profileadapter "datasense/adapters/profile"
	"datasense/adapters/tabular"
	"datasense/domain/interpret"
	"datasense/domain/table"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datasense-cli",
		Short: "Offline column profiling and statistics over CSV/TSV/xlsx files",
	}

	rootCmd.AddCommand(newProfileCmd(), newCalcCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [file]",
		Short: "Infer column types and print per-column statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(args[0])
			if err != nil {
				return err
			}

			analyzer := profileadapter.NewAnalyzer()
			for _, col := range analyzer.Analyze(t) {
				fmt.Printf("%-24s %-8s missing=%d", col.Name, col.Type, col.Stats.MissingCount)
				if col.Stats.Mean != nil {
					fmt.Printf(" mean=%.4g median=%.4g stddev=%.4g min=%.4g max=%.4g",
						*col.Stats.Mean, *col.Stats.Median, *col.Stats.StdDev,
						*col.Stats.NumMin, *col.Stats.NumMax)
				}
				if col.Stats.DateMin != "" {
					fmt.Printf(" from=%s to=%s", col.Stats.DateMin, col.Stats.DateMax)
				}
				if len(col.Stats.UniqueValues) > 0 {
					fmt.Printf(" unique=%d", len(col.Stats.UniqueValues))
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newCalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc [file] [operation] [column]",
		Short: "Run one statistical operation over a column",
		Long: `Run one statistical operation over a column.

Supported operations: SUM, AVERAGE, MEDIAN, MODE, MIN, MAX, COUNT,
COUNTA, COUNTUNIQUE, STDEV, VAR.

Example: datasense-cli calc sales.csv AVERAGE revenue`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(args[0])
			if err != nil {
				return err
			}

			op, known := interpret.ParseOperation(args[1])
			if !known {
				return fmt.Errorf("unsupported operation %q", args[1])
			}

			column, ok := t.HasColumn(args[2])
			if !ok {
				return fmt.Errorf("column %q not found", args[2])
			}

			result := profileadapter.NewCalculator().Calculate(t, column, op)
			if result.IsMissing() {
				fmt.Println("no determinate result")
				return nil
			}
			fmt.Println(result.Key())
			return nil
		},
	}
}

func loadTable(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch {
	case strings.HasSuffix(strings.ToLower(path), ".xlsx"):
		return tabular.ParseWorkbook(data)
	case strings.HasSuffix(strings.ToLower(path), ".tsv"):
		return tabular.ParseDelimited(string(data), '\t'), nil
	default:
		return tabular.ParseDelimited(string(data), ','), nil
	}
}
