package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"callclassifier/internal/batch"
	"callclassifier/internal/classify"
	"callclassifier/internal/domain"
	"callclassifier/internal/lexicon"
	"callclassifier/internal/report"
	"callclassifier/internal/storage/sqlite"

	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	var csvPath string
	var save bool

	cmd := &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Classify several transcripts separated by ---",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			transcripts := batch.SplitTranscripts(blob)
			if len(transcripts) == 0 {
				return fmt.Errorf("no transcripts found (separate calls with %s)", batch.Separator)
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()
			items, summary, err := batch.Run(cmd.Context(), a.Engine, transcripts, batch.Options{
				Workers: a.Config.BatchWorkers,
				Progress: func(done, total int) {
					fmt.Fprintf(stderr, "Processing call %d/%d\n", done, total)
				},
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, it := range items {
				fmt.Fprintln(out, it.Line())
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, FormatBatchSummary(summary))

			if csvPath != "" {
				if err := writeBatchCSV(csvPath, items); err != nil {
					return err
				}
				fmt.Fprintf(stderr, "CSV written to %s\n", csvPath)
			}
			if save {
				db, err := a.OpenDB()
				if err != nil {
					return err
				}
				defer db.Close()
				now := time.Now().In(a.Config.Location)
				saved := 0
				for _, it := range items {
					if !it.OK() {
						continue
					}
					if _, err := sqlite.InsertCall(db, it.Result, now); err != nil {
						return fmt.Errorf("saving call %d: %w", it.Index+1, err)
					}
					saved++
				}
				fmt.Fprintf(stderr, "Saved %d call(s) to history\n", saved)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write results as CSV to this path")
	cmd.Flags().BoolVar(&save, "save", false, "store every result in the call history")
	return cmd
}

func writeBatchCSV(path string, items []batch.Item) error {
	rows := make([]report.BatchRow, 0, len(items))
	for _, it := range items {
		if it.OK() {
			rows = append(rows, report.BatchRow{CallNumber: it.Index + 1, Result: it.Result})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := report.WriteBatchCSV(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// FormatBatchSummary renders the totals printed after a batch run. Categories
// are listed in lexicon order, sentiments by count.
func FormatBatchSummary(s batch.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total calls: %d (succeeded %d, failed %d)\n", s.Total, s.Succeeded, s.Failed)
	if s.Succeeded == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "Average confidence: %s%%\n", domain.FormatScore(s.AvgConfidence))
	fmt.Fprintf(&b, "Most common sentiment: %s\n", s.CommonSentiment)
	b.WriteString("Categories:\n")
	for _, c := range lexicon.Categories() {
		if n := s.CategoryCounts[c]; n > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", classify.DepartmentName(c), n)
		}
	}
	b.WriteString("Sentiment:\n")
	for _, sentiment := range sortedSentiments(s.SentimentCounts) {
		fmt.Fprintf(&b, "  %s: %d\n", sentiment, s.SentimentCounts[sentiment])
	}
	return b.String()
}

func sortedSentiments(counts map[domain.Sentiment]int) []domain.Sentiment {
	out := make([]domain.Sentiment, 0, len(counts))
	for s := range counts {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
