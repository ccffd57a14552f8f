package cli

import (
	"fmt"
	"strconv"
	"strings"

	"callclassifier/internal/classify"
	"callclassifier/internal/domain"
	"callclassifier/internal/lexicon"
	"callclassifier/internal/storage/sqlite"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored calls and aggregate statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			db, err := a.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := sqlite.ListCalls(db, limit)
			if err != nil {
				return fmt.Errorf("listing calls: %w", err)
			}
			stats, err := sqlite.HistoryStats(db)
			if err != nil {
				return fmt.Errorf("computing stats: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No calls stored yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(out, formatHistoryLine(e))
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, FormatHistoryStats(stats))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of calls to list (0 for all)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the stored report of one call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid call id %q", args[0])
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			db, err := a.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			entry, err := sqlite.GetCall(db, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), entry.Result.Report)
			return nil
		},
	}
	cmd.AddCommand(showCmd)
	return cmd
}

func formatHistoryLine(e domain.HistoryEntry) string {
	c := e.Result.Classification
	return fmt.Sprintf("#%d  %s  %-18s %6s%%  %-8s %s",
		e.ID,
		e.ClassifiedAt.Format("2006-01-02 15:04"),
		strings.ToUpper(string(c.PrimaryCategory)),
		c.Confidence(),
		e.Result.Analysis.Sentiment,
		e.Result.Strategy,
	)
}

func FormatHistoryStats(s domain.HistoryStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total calls: %d\n", s.TotalCalls)
	fmt.Fprintf(&b, "Average confidence: %s%%\n", domain.FormatScore(s.AvgConfidence))
	fmt.Fprintf(&b, "Unique categories: %d\n", s.UniqueCategories)
	fmt.Fprintf(&b, "Most common sentiment: %s\n", s.CommonSentiment)
	b.WriteString("Categories:\n")
	for _, c := range lexicon.Categories() {
		if n := s.CategoryCounts[c]; n > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", classify.DepartmentName(c), n)
		}
	}
	return b.String()
}
