package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"callclassifier/internal/analysis"
	"callclassifier/internal/classify"
	"callclassifier/internal/domain"
	"callclassifier/internal/lexicon"
)

type analysisResponse struct {
	Sentiment         string   `json:"sentiment"`
	KeyTopics         []string `json:"key_topics"`
	UrgencyLevel      string   `json:"urgency_level"`
	MentionedServices []string `json:"mentioned_services"`
	IssuesReported    []string `json:"issues_reported"`
	Requests          []string `json:"requests"`
	SentimentMarkers  []string `json:"sentiment_markers"`
}

type classificationResponse struct {
	PrimaryCategory string         `json:"primary_category"`
	Confidence      float64        `json:"confidence"`
	Scores          map[string]int `json:"scores"`
	Reasoning       string         `json:"reasoning"`
}

type reviewResponse struct {
	Correct           bool   `json:"correct"`
	SuggestedCategory string `json:"suggested_category"`
	Reason            string `json:"reason"`
}

// AnalyzeCall runs the analysis task: sentiment, topics, urgency and the
// customer details. Duration is always estimated from the word count.
func AnalyzeCall(ctx context.Context, c Client, transcript string) (domain.AnalysisRecord, domain.CustomerInfoRecord, LLMUsage, error) {
	systemPrompt, userPrompt := buildAnalysisPrompts(transcript)
	log.Printf("llm analyze provider=%s model=%s chars=%d", c.Provider(), c.Model(), len(transcript))

	text, usage, err := c.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return domain.AnalysisRecord{}, domain.CustomerInfoRecord{}, usage, err
	}
	var resp analysisResponse
	if err := decodeJSON(text, &resp); err != nil {
		return domain.AnalysisRecord{}, domain.CustomerInfoRecord{}, usage, fmt.Errorf("parsing LLM analysis response: %w", err)
	}

	sentiment, ok := normalizeSentiment(resp.Sentiment)
	if !ok {
		return domain.AnalysisRecord{}, domain.CustomerInfoRecord{}, usage, fmt.Errorf("LLM returned unknown sentiment %q", resp.Sentiment)
	}
	urgency, ok := normalizeUrgency(resp.UrgencyLevel)
	if !ok {
		return domain.AnalysisRecord{}, domain.CustomerInfoRecord{}, usage, fmt.Errorf("LLM returned unknown urgency %q", resp.UrgencyLevel)
	}
	topics := cleanList(resp.KeyTopics)
	if len(topics) == 0 {
		topics = []string{domain.GeneralTopic}
	}

	record := domain.AnalysisRecord{
		Sentiment:        sentiment,
		DurationEstimate: analysis.EstimateDuration(transcript),
		KeyTopics:        topics,
		UrgencyLevel:     urgency,
	}
	info := domain.CustomerInfoRecord{
		MentionedServices: cleanList(resp.MentionedServices),
		IssuesReported:    cleanList(resp.IssuesReported),
		Requests:          cleanList(resp.Requests),
		SentimentMarkers:  cleanList(resp.SentimentMarkers),
	}
	return record, info, usage, nil
}

// ClassifyCall runs the classification task. The answer must name one of the
// fixed categories; scores for categories the model left out are zero.
func ClassifyCall(ctx context.Context, c Client, transcript string, a *domain.AnalysisRecord) (domain.ClassificationRecord, LLMUsage, error) {
	systemPrompt, userPrompt := buildClassificationPrompts(transcript, a)
	log.Printf("llm classify provider=%s model=%s chars=%d", c.Provider(), c.Model(), len(transcript))

	text, usage, err := c.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return domain.ClassificationRecord{}, usage, err
	}
	var resp classificationResponse
	if err := decodeJSON(text, &resp); err != nil {
		return domain.ClassificationRecord{}, usage, fmt.Errorf("parsing LLM classification response: %w", err)
	}

	primary := domain.Category(normalizeTextToken(resp.PrimaryCategory))
	if !lexicon.IsCategory(primary) {
		return domain.ClassificationRecord{}, usage, fmt.Errorf("LLM returned unknown category %q", resp.PrimaryCategory)
	}
	return buildClassification(primary, resp.Confidence, resp.Scores), usage, nil
}

// ReviewClassification asks the backend to double-check a classification.
// It returns the category the reviewer suggests, or "" when the original
// stands.
func ReviewClassification(ctx context.Context, c Client, transcript string, rec domain.ClassificationRecord) (domain.Category, LLMUsage, error) {
	systemPrompt, userPrompt := buildReviewPrompts(transcript, rec)
	log.Printf("llm review provider=%s model=%s category=%s", c.Provider(), c.Model(), rec.PrimaryCategory)

	text, usage, err := c.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", usage, err
	}
	var resp reviewResponse
	if err := decodeJSON(text, &resp); err != nil {
		return "", usage, fmt.Errorf("parsing review response: %w", err)
	}
	if resp.Correct {
		return "", usage, nil
	}
	suggested := domain.Category(normalizeTextToken(resp.SuggestedCategory))
	if !lexicon.IsCategory(suggested) || suggested == rec.PrimaryCategory {
		return "", usage, nil
	}
	log.Printf("llm review reclassified from=%s to=%s reason=%q", rec.PrimaryCategory, suggested, resp.Reason)
	return suggested, usage, nil
}

// Reclassify moves a record to another category. Its score is raised so it
// still leads all_scores; other scores and the confidence are kept.
func Reclassify(rec domain.ClassificationRecord, to domain.Category) domain.ClassificationRecord {
	description, _ := lexicon.Description(to)
	scores := make(domain.CategoryScores, len(rec.AllScores))
	copy(scores, rec.AllScores)
	leadWith(scores, to)
	rec.AllScores = scores
	rec.PrimaryCategory = to
	rec.CategoryDescription = description
	rec.Recommendation = classify.Recommendation(to)
	return rec
}

func buildClassification(primary domain.Category, confidence float64, raw map[string]int) domain.ClassificationRecord {
	scores := make(domain.CategoryScores, 0, len(lexicon.CategoryKeywordTable))
	normalized := make(map[string]int, len(raw))
	for k, v := range raw {
		normalized[normalizeTextToken(k)] = v
	}
	for _, c := range lexicon.Categories() {
		hits := normalized[string(c)]
		if hits < 0 {
			hits = 0
		}
		scores = append(scores, domain.CategoryScore{Category: c, Hits: hits})
	}
	leadWith(scores, primary)

	// Models answer either as a fraction or as a percentage.
	if confidence > 0 && confidence <= 1 {
		confidence *= 100
	}
	confidence = math.Max(0, math.Min(confidence, 100))
	confidence = math.RoundToEven(confidence*100) / 100

	description, _ := lexicon.Description(primary)
	return domain.ClassificationRecord{
		PrimaryCategory:     primary,
		CategoryDescription: description,
		ConfidenceScore:     confidence,
		AllScores:           scores,
		Recommendation:      classify.Recommendation(primary),
	}
}

// leadWith raises the primary category's score just enough that it is the
// first maximum of scores, the same shape the keyword classifier produces.
func leadWith(scores domain.CategoryScores, primary domain.Category) {
	idx := -1
	for i, cs := range scores {
		if cs.Category == primary {
			idx = i
		}
	}
	if idx < 0 {
		return
	}
	need := scores[idx].Hits
	for i, cs := range scores {
		switch {
		case i < idx && cs.Hits >= need:
			need = cs.Hits + 1
		case i > idx && cs.Hits > need:
			need = cs.Hits
		}
	}
	scores[idx].Hits = need
}

func decodeJSON(responseText string, out any) error {
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	if err := json.Unmarshal([]byte(responseText), out); err != nil {
		truncated := responseText
		if len(truncated) > 512 {
			truncated = truncated[:512] + fmt.Sprintf("... [truncated, total_length=%d]", len(responseText))
		}
		return fmt.Errorf("%w (response: %s)", err, truncated)
	}
	return nil
}
