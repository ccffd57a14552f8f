package llm

import (
	"strings"

	"callclassifier/internal/domain"
)

func normalizeTextToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

func normalizeSentiment(s string) (domain.Sentiment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return domain.SentimentPositive, true
	case "negative":
		return domain.SentimentNegative, true
	case "neutral", "mixed":
		return domain.SentimentNeutral, true
	default:
		return "", false
	}
}

func normalizeUrgency(s string) (domain.Urgency, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "critical", "urgent":
		return domain.UrgencyHigh, true
	case "medium", "moderate":
		return domain.UrgencyMedium, true
	case "low", "none":
		return domain.UrgencyLow, true
	default:
		return "", false
	}
}

// cleanList trims entries, drops blanks and duplicates, and never returns nil.
func cleanList(items []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
