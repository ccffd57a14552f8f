package engine

import (
	"context"

	"callclassifier/internal/analysis"
	"callclassifier/internal/classify"
	"callclassifier/internal/domain"
)

// Keyword is the deterministic lexicon engine. It never returns an error.
type Keyword struct{}

func (Keyword) Name() string { return "keyword" }

func (Keyword) Analyze(_ context.Context, transcript string) (domain.AnalysisRecord, error) {
	return analysis.Analyze(transcript), nil
}

func (Keyword) Classify(_ context.Context, transcript string, a *domain.AnalysisRecord) (domain.ClassificationRecord, error) {
	return classify.Classify(transcript, a), nil
}

func (Keyword) ExtractCustomerInfo(_ context.Context, transcript string) (domain.CustomerInfoRecord, error) {
	return analysis.ExtractCustomerInfo(transcript), nil
}
