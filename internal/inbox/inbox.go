// Package inbox classifies transcript files dropped into a directory, either
// once or on a cron schedule.
package inbox

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"callclassifier/internal/batch"
	"callclassifier/internal/config"
	"callclassifier/internal/engine"
	"callclassifier/internal/report"
	"callclassifier/internal/storage/sqlite"

	"github.com/robfig/cron/v3"
)

const processedDirName = "processed"

// Notifier receives one message per processed file.
type Notifier interface {
	NotifyBatch(ctx context.Context, source string, lines []string) error
}

// Result tracks what one inbox pass did.
type Result struct {
	Files          int
	Classified     int
	Failed         int
	Stored         int
	ReportsWritten int
	Errors         []string
}

// ProcessInbox classifies every *.txt file in cfg.InboxDir, stores and
// reports each call, then moves the file to the processed subdirectory.
// db and notifier may be nil.
func ProcessInbox(ctx context.Context, cfg config.Config, db *sql.DB, eng engine.Engine, notifier Notifier) (Result, error) {
	var result Result
	files, err := pendingFiles(cfg.InboxDir)
	if err != nil {
		return result, err
	}
	if len(files) == 0 {
		return result, nil
	}
	if err := os.MkdirAll(filepath.Join(cfg.InboxDir, processedDirName), 0o755); err != nil {
		return result, fmt.Errorf("creating processed dir: %w", err)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		name := filepath.Base(path)
		lines, err := processFile(ctx, cfg, db, eng, path, &result)
		if err != nil {
			log.Printf("inbox file=%s error: %v", name, err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		result.Files++

		if notifier != nil {
			if err := notifier.NotifyBatch(ctx, name, lines); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: notify: %v", name, err))
			}
		}
		if err := os.Rename(path, filepath.Join(cfg.InboxDir, processedDirName, name)); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: move: %v", name, err))
		}
	}
	return result, nil
}

func processFile(ctx context.Context, cfg config.Config, db *sql.DB, eng engine.Engine, path string, result *Result) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	transcripts := batch.SplitTranscripts(string(data))
	if len(transcripts) == 0 {
		log.Printf("inbox file=%s has no transcripts", filepath.Base(path))
		return nil, nil
	}

	items, _, err := batch.Run(ctx, eng, transcripts, batch.Options{Workers: cfg.BatchWorkers})
	if err != nil {
		return nil, err
	}

	now := time.Now().In(location(cfg))
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, it.Line())
		if !it.OK() {
			result.Failed++
			continue
		}
		result.Classified++

		if db != nil {
			if _, err := sqlite.InsertCall(db, it.Result, now); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s call %d: store: %v", filepath.Base(path), it.Index+1, err))
			} else {
				result.Stored++
			}
		}
		if cfg.ReportOutputDir != "" {
			name := fmt.Sprintf("%s_call%d", base, it.Index+1)
			if _, err := report.WriteReportFile(it.Result.Report, cfg.ReportOutputDir, name, now); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s call %d: report: %v", filepath.Base(path), it.Index+1, err))
			} else {
				result.ReportsWritten++
			}
		}
	}
	return lines, nil
}

func pendingFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func location(cfg config.Config) *time.Location {
	if cfg.Location == nil {
		return time.Local
	}
	return cfg.Location
}

// FormatSummary returns a human-readable summary of a Result.
func FormatSummary(r Result) string {
	if r.Files == 0 && len(r.Errors) == 0 {
		return "Inbox empty, nothing to classify."
	}
	msg := fmt.Sprintf("Processed %d file(s): %d call(s) classified", r.Files, r.Classified)
	if r.Failed > 0 {
		msg += fmt.Sprintf(", %d failed", r.Failed)
	}
	msg += fmt.Sprintf(", %d stored, %d report(s) written", r.Stored, r.ReportsWritten)
	if len(r.Errors) > 0 {
		msg += fmt.Sprintf("\nWarnings:\n%s", strings.Join(r.Errors, "\n"))
	}
	return msg
}

// ParseSchedule parses a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
func ParseSchedule(schedule string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(strings.TrimSpace(schedule))
}

// Run processes the inbox on cfg.InboxSchedule until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, db *sql.DB, eng engine.Engine, notifier Notifier) error {
	sched, err := ParseSchedule(cfg.InboxSchedule)
	if err != nil {
		return fmt.Errorf("invalid inbox_schedule '%s': %w", cfg.InboxSchedule, err)
	}
	log.Printf("Inbox scheduled (cron: %s) dir=%s strategy=%s", cfg.InboxSchedule, cfg.InboxDir, eng.Name())

	for {
		now := time.Now().In(location(cfg))
		next := sched.Next(now)
		wait := next.Sub(now)
		log.Printf("Next inbox pass at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Second))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("Inbox scheduler stopped")
			return ctx.Err()
		case <-timer.C:
		}

		result, err := ProcessInbox(ctx, cfg, db, eng, notifier)
		if err != nil {
			log.Printf("Inbox error: %v", err)
		}
		log.Printf("Inbox pass complete: %s", FormatSummary(result))
	}
}
