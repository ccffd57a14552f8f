// Package analysis extracts heuristic signals from a call transcript.
// Every extractor is independent, matches lowercased substrings, and never
// fails: empty input yields the low-signal defaults.
package analysis

import (
	"strings"

	"callclassifier/internal/domain"
	"callclassifier/internal/lexicon"
)

const (
	mediumCallWords = 100
	longCallWords   = 300
)

func Analyze(transcript string) domain.AnalysisRecord {
	return domain.AnalysisRecord{
		Sentiment:        DetectSentiment(transcript),
		DurationEstimate: EstimateDuration(transcript),
		KeyTopics:        ExtractTopics(transcript),
		UrgencyLevel:     AssessUrgency(transcript),
	}
}

func DetectSentiment(transcript string) domain.Sentiment {
	text := strings.ToLower(transcript)
	negative := lexicon.CountHits(text, lexicon.NegativeWords)
	positive := lexicon.CountHits(text, lexicon.PositiveWords)

	switch {
	case negative > positive:
		return domain.SentimentNegative
	case positive > negative:
		return domain.SentimentPositive
	default:
		return domain.SentimentNeutral
	}
}

// EstimateDuration buckets the call by whitespace-delimited word count.
func EstimateDuration(transcript string) domain.Duration {
	words := len(strings.Fields(transcript))
	switch {
	case words < mediumCallWords:
		return domain.DurationShort
	case words < longCallWords:
		return domain.DurationMedium
	default:
		return domain.DurationLong
	}
}

func ExtractTopics(transcript string) []string {
	topics := lexicon.Match(strings.ToLower(transcript), lexicon.Topics)
	if len(topics) == 0 {
		return []string{domain.GeneralTopic}
	}
	return topics
}

// AssessUrgency checks urgent keywords before the generic problem words.
func AssessUrgency(transcript string) domain.Urgency {
	text := strings.ToLower(transcript)
	if lexicon.ContainsAny(text, lexicon.UrgentWords) {
		return domain.UrgencyHigh
	}
	if lexicon.ContainsAny(text, lexicon.ProblemWords) {
		return domain.UrgencyMedium
	}
	return domain.UrgencyLow
}
