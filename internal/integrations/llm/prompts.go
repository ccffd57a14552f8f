package llm

import (
	"fmt"
	"strings"

	"callclassifier/internal/domain"
	"callclassifier/internal/lexicon"
)

const analysisSystemPrompt = `You are a customer call analyst for a telecom contact center.
You read call transcripts and extract structured facts about the customer and the call.
Respond with a single JSON object and nothing else.`

const classificationSystemPrompt = `You are a call routing specialist for a telecom contact center.
You assign every call to exactly one department from a fixed list.
Respond with a single JSON object and nothing else.`

const reviewSystemPrompt = `You are a senior call routing reviewer.
You check whether a call was routed to the right department.
Respond with a single JSON object and nothing else.`

func buildAnalysisPrompts(transcript string) (string, string) {
	var b strings.Builder
	b.WriteString("Analyze the following customer call transcript.\n\n")
	b.WriteString("Return JSON with these fields:\n")
	b.WriteString(`- "sentiment": one of "Positive", "Negative", "Neutral"` + "\n")
	b.WriteString(fmt.Sprintf(`- "key_topics": list drawn from %s`+"\n", groupLabels(lexicon.Topics)))
	b.WriteString(`- "urgency_level": one of "High", "Medium", "Low"` + "\n")
	b.WriteString(fmt.Sprintf(`- "mentioned_services": list drawn from %s`+"\n", groupLabels(lexicon.Services)))
	b.WriteString(fmt.Sprintf(`- "issues_reported": list drawn from %s`+"\n", groupLabels(lexicon.Issues)))
	b.WriteString(fmt.Sprintf(`- "requests": list drawn from %s`+"\n", groupLabels(lexicon.Requests)))
	b.WriteString(fmt.Sprintf(`- "sentiment_markers": list drawn from %s`+"\n", groupLabels(lexicon.SentimentMarkers)))
	b.WriteString("\nUse empty lists when nothing applies.\n\n")
	writeTranscript(&b, transcript)
	return analysisSystemPrompt, b.String()
}

func buildClassificationPrompts(transcript string, a *domain.AnalysisRecord) (string, string) {
	var b strings.Builder
	b.WriteString("Classify the following customer call into one department.\n\n")
	b.WriteString("Departments:\n")
	for _, cd := range lexicon.CategoryDescriptions {
		fmt.Fprintf(&b, "- %s: %s\n", cd.Category, cd.Description)
	}
	if a != nil {
		b.WriteString("\nPrior analysis of the call:\n")
		fmt.Fprintf(&b, "- sentiment: %s\n", a.Sentiment)
		fmt.Fprintf(&b, "- urgency: %s\n", a.UrgencyLevel)
		fmt.Fprintf(&b, "- topics: %s\n", strings.Join(a.KeyTopics, ", "))
	}
	b.WriteString("\nReturn JSON with these fields:\n")
	b.WriteString(`- "primary_category": one department key from the list above` + "\n")
	b.WriteString(`- "confidence": number from 0 to 100` + "\n")
	b.WriteString(`- "scores": object mapping every department key to a relevance score from 0 to 10` + "\n")
	b.WriteString(`- "reasoning": one short sentence` + "\n\n")
	writeTranscript(&b, transcript)
	return classificationSystemPrompt, b.String()
}

func buildReviewPrompts(transcript string, rec domain.ClassificationRecord) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "The call below was routed to %q (%s) with %s%% confidence.\n\n", rec.PrimaryCategory, rec.CategoryDescription, rec.Confidence())
	b.WriteString("Allowed departments:\n")
	for _, c := range lexicon.Categories() {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	b.WriteString("\nReturn JSON with these fields:\n")
	b.WriteString(`- "correct": true if the routing is right` + "\n")
	b.WriteString(`- "suggested_category": the better department key when "correct" is false, otherwise ""` + "\n")
	b.WriteString(`- "reason": one short sentence` + "\n\n")
	writeTranscript(&b, transcript)
	return reviewSystemPrompt, b.String()
}

func writeTranscript(b *strings.Builder, transcript string) {
	b.WriteString("Transcript:\n<<<\n")
	b.WriteString(strings.TrimSpace(transcript))
	b.WriteString("\n>>>\n")
}

func groupLabels(groups []lexicon.Group) string {
	labels := make([]string, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, fmt.Sprintf("%q", g.Label))
	}
	return "[" + strings.Join(labels, ", ") + "]"
}
