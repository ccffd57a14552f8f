// Package batch classifies many transcripts with a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"

	"callclassifier/internal/domain"
	"callclassifier/internal/engine"

	"golang.org/x/sync/errgroup"
)

// Separator splits a pasted blob into individual transcripts.
const Separator = "---"

const defaultWorkers = 4

// SplitTranscripts splits blob on Separator, trims each piece and drops the
// empty ones. Order is preserved.
func SplitTranscripts(blob string) []string {
	out := []string{}
	for _, part := range strings.Split(blob, Separator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type Options struct {
	Workers int
	// Progress, when set, is called after each call finishes with the number
	// done so far and the batch size. Calls are serialized.
	Progress func(done, total int)
}

// Item is the outcome for one transcript. Exactly one of Result or Err is
// meaningful.
type Item struct {
	Index  int
	Result domain.CallResult
	Err    error
}

func (it Item) OK() bool { return it.Err == nil }

// Line is the one-line summary printed per call, numbered from 1.
func (it Item) Line() string {
	if !it.OK() {
		return fmt.Sprintf("Call %d: ERROR (%v)", it.Index+1, it.Err)
	}
	c := it.Result.Classification
	return fmt.Sprintf("Call %d: %s (%s%% confidence)", it.Index+1, strings.ToUpper(string(c.PrimaryCategory)), c.Confidence())
}

type Summary struct {
	Total           int
	Succeeded       int
	Failed          int
	CategoryCounts  map[domain.Category]int
	SentimentCounts map[domain.Sentiment]int
	AvgConfidence   float64
	CommonSentiment domain.Sentiment
}

// Run processes every transcript and returns the items in input order. A
// failed call is recorded on its item and does not stop the others; only a
// cancelled context makes Run return an error.
func Run(ctx context.Context, eng engine.Engine, transcripts []string, opts Options) ([]Item, Summary, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = defaultWorkers
	}

	items := make([]Item, len(transcripts))
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, transcript := range transcripts {
		i, transcript := i, transcript
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				items[i] = Item{Index: i, Err: err}
				return err
			}
			res, err := engine.Process(gctx, eng, transcript)
			if err != nil {
				log.Printf("batch call=%d failed: %v", i+1, err)
			}
			items[i] = Item{Index: i, Result: res, Err: err}

			mu.Lock()
			done++
			if opts.Progress != nil {
				opts.Progress(done, len(transcripts))
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, Summarize(items), fmt.Errorf("batch cancelled: %w", err)
	}

	summary := Summarize(items)
	log.Printf("batch done total=%d succeeded=%d failed=%d", summary.Total, summary.Succeeded, summary.Failed)
	return items, summary, nil
}

// Summarize aggregates the successful items. The most common sentiment goes
// to the one seen first when counts tie.
func Summarize(items []Item) Summary {
	s := Summary{
		Total:           len(items),
		CategoryCounts:  map[domain.Category]int{},
		SentimentCounts: map[domain.Sentiment]int{},
	}
	var confidenceSum float64
	var firstSeen []domain.Sentiment
	for _, it := range items {
		if !it.OK() {
			s.Failed++
			continue
		}
		s.Succeeded++
		s.CategoryCounts[it.Result.Classification.PrimaryCategory]++
		sentiment := it.Result.Analysis.Sentiment
		if s.SentimentCounts[sentiment] == 0 {
			firstSeen = append(firstSeen, sentiment)
		}
		s.SentimentCounts[sentiment]++
		confidenceSum += it.Result.Classification.ConfidenceScore
	}
	if s.Succeeded > 0 {
		s.AvgConfidence = math.Round(confidenceSum/float64(s.Succeeded)*100) / 100
	}
	for _, sentiment := range firstSeen {
		if s.CommonSentiment == "" || s.SentimentCounts[sentiment] > s.SentimentCounts[s.CommonSentiment] {
			s.CommonSentiment = sentiment
		}
	}
	return s
}
