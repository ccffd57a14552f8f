package analysis

import (
	"strings"

	"callclassifier/internal/domain"
	"callclassifier/internal/lexicon"
)

func ExtractCustomerInfo(transcript string) domain.CustomerInfoRecord {
	return domain.CustomerInfoRecord{
		MentionedServices: ExtractServices(transcript),
		IssuesReported:    ExtractIssues(transcript),
		Requests:          ExtractRequests(transcript),
		SentimentMarkers:  ExtractSentimentMarkers(transcript),
	}
}

func ExtractServices(transcript string) []string {
	return lexicon.Match(strings.ToLower(transcript), lexicon.Services)
}

func ExtractIssues(transcript string) []string {
	return lexicon.Match(strings.ToLower(transcript), lexicon.Issues)
}

func ExtractRequests(transcript string) []string {
	return lexicon.Match(strings.ToLower(transcript), lexicon.Requests)
}

// ExtractSentimentMarkers returns explanatory sentences rather than labels.
func ExtractSentimentMarkers(transcript string) []string {
	return lexicon.Match(strings.ToLower(transcript), lexicon.SentimentMarkers)
}
