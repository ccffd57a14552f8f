// Package engine runs the classification pipeline behind one interface, so the
// keyword core and the LLM path are interchangeable.
package engine

import (
	"context"
	"fmt"

	"callclassifier/internal/config"
	"callclassifier/internal/domain"
	"callclassifier/internal/integrations/llm"
	"callclassifier/internal/report"
)

type Engine interface {
	Name() string
	Analyze(ctx context.Context, transcript string) (domain.AnalysisRecord, error)
	Classify(ctx context.Context, transcript string, analysis *domain.AnalysisRecord) (domain.ClassificationRecord, error)
	ExtractCustomerInfo(ctx context.Context, transcript string) (domain.CustomerInfoRecord, error)
}

// New picks the engine named by cfg.ClassifierStrategy.
func New(cfg config.Config) (Engine, error) {
	switch cfg.ClassifierStrategy {
	case config.StrategyKeyword, "":
		return Keyword{}, nil
	case config.StrategyLLM:
		client, err := llm.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewLLM(client, cfg.LLMReview), nil
	default:
		return nil, fmt.Errorf("unknown classifier strategy %q", cfg.ClassifierStrategy)
	}
}

// Process runs every stage for one transcript and renders its report.
func Process(ctx context.Context, eng Engine, transcript string) (domain.CallResult, error) {
	a, err := eng.Analyze(ctx, transcript)
	if err != nil {
		return domain.CallResult{}, fmt.Errorf("analyze: %w", err)
	}
	c, err := eng.Classify(ctx, transcript, &a)
	if err != nil {
		return domain.CallResult{}, fmt.Errorf("classify: %w", err)
	}
	info, err := eng.ExtractCustomerInfo(ctx, transcript)
	if err != nil {
		return domain.CallResult{}, fmt.Errorf("extract customer info: %w", err)
	}
	return domain.CallResult{
		Transcript:     transcript,
		Strategy:       eng.Name(),
		Analysis:       a,
		Classification: c,
		CustomerInfo:   info,
		Report:         report.Render(a, c, info),
	}, nil
}
