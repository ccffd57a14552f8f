package engine

import (
	"context"
	"log"
	"sync"

	"callclassifier/internal/domain"
	"callclassifier/internal/integrations/llm"
)

// LLM sends each stage to a language model and falls back to the keyword
// engine for any call the model fails on.
type LLM struct {
	client   llm.Client
	review   bool
	fallback Keyword

	mu    sync.Mutex
	usage llm.LLMUsage
	// info caches customer details returned alongside the analysis, keyed by
	// transcript, so ExtractCustomerInfo does not repeat the request.
	info map[string]domain.CustomerInfoRecord
}

func NewLLM(client llm.Client, review bool) *LLM {
	return &LLM{client: client, review: review, info: map[string]domain.CustomerInfoRecord{}}
}

func (e *LLM) Name() string { return "llm:" + e.client.Provider() }

// Usage returns the tokens spent so far.
func (e *LLM) Usage() llm.LLMUsage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.usage
}

func (e *LLM) Analyze(ctx context.Context, transcript string) (domain.AnalysisRecord, error) {
	a, info, usage, err := llm.AnalyzeCall(ctx, e.client, transcript)
	e.addUsage(usage)
	if err != nil {
		log.Printf("llm analyze failed, using keyword fallback: %v", err)
		info, _ = e.fallback.ExtractCustomerInfo(ctx, transcript)
		e.remember(transcript, info)
		return e.fallback.Analyze(ctx, transcript)
	}
	e.remember(transcript, info)
	return a, nil
}

func (e *LLM) Classify(ctx context.Context, transcript string, a *domain.AnalysisRecord) (domain.ClassificationRecord, error) {
	rec, usage, err := llm.ClassifyCall(ctx, e.client, transcript, a)
	e.addUsage(usage)
	if err != nil {
		log.Printf("llm classify failed, using keyword fallback: %v", err)
		return e.fallback.Classify(ctx, transcript, a)
	}
	if !e.review {
		return rec, nil
	}

	suggested, usage, err := llm.ReviewClassification(ctx, e.client, transcript, rec)
	e.addUsage(usage)
	if err != nil {
		log.Printf("llm review failed, keeping %s: %v", rec.PrimaryCategory, err)
		return rec, nil
	}
	if suggested != "" {
		rec = llm.Reclassify(rec, suggested)
	}
	return rec, nil
}

func (e *LLM) ExtractCustomerInfo(ctx context.Context, transcript string) (domain.CustomerInfoRecord, error) {
	e.mu.Lock()
	info, ok := e.info[transcript]
	delete(e.info, transcript)
	e.mu.Unlock()
	if ok {
		return info, nil
	}

	_, info, usage, err := llm.AnalyzeCall(ctx, e.client, transcript)
	e.addUsage(usage)
	if err != nil {
		log.Printf("llm customer info failed, using keyword fallback: %v", err)
		return e.fallback.ExtractCustomerInfo(ctx, transcript)
	}
	return info, nil
}

func (e *LLM) remember(transcript string, info domain.CustomerInfoRecord) {
	e.mu.Lock()
	e.info[transcript] = info
	e.mu.Unlock()
}

func (e *LLM) addUsage(u llm.LLMUsage) {
	e.mu.Lock()
	e.usage.Add(u)
	e.mu.Unlock()
}
