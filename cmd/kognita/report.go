package main

import (
	"fmt"
	"time"

	"github.com/Rtur2003/Kognita/internal/analyzer"
	"github.com/Rtur2003/Kognita/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the usage report for the last N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir()
			if err != nil {
				return err
			}
			log := newLogger(false)
			st, err := openStore(dir, log)
			if err != nil {
				return err
			}
			defer st.Close()

			an := analyzer.New(st, log)
			now := time.Now()
			totals, total, err := an.CategoryTotals(now.AddDate(0, 0, -days), now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, report.Render(totals, total, analyzer.Persona(totals, total)))

			if tips := analyzer.Suggestions(totals, total); len(tips) > 0 {
				fmt.Fprintln(out, "\nSuggestions:")
				for i, tip := range tips {
					fmt.Fprintf(out, "  %d. %s\n", i+1, tip)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 1, "reporting window in days")
	return cmd
}
