// Package classify scores a transcript against the category lexicon and picks
// the department the call should be routed to.
package classify

import (
	"math"
	"strings"

	"callclassifier/internal/domain"
	"callclassifier/internal/lexicon"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classify counts keyword hits per category and picks the highest score.
// Ties go to the category declared first in the lexicon, so an empty
// transcript classifies as the first category with zero confidence.
// The analysis record is accepted for context but does not affect scoring.
func Classify(transcript string, _ *domain.AnalysisRecord) domain.ClassificationRecord {
	text := strings.ToLower(transcript)

	scores := make(domain.CategoryScores, 0, len(lexicon.CategoryKeywordTable))
	best, total := 0, 0
	for i, ck := range lexicon.CategoryKeywordTable {
		hits := lexicon.CountHits(text, ck.Keywords)
		scores = append(scores, domain.CategoryScore{Category: ck.Category, Hits: hits})
		total += hits
		if hits > scores[best].Hits {
			best = i
		}
	}

	primary := scores[best].Category
	description, _ := lexicon.Description(primary)

	return domain.ClassificationRecord{
		PrimaryCategory:     primary,
		CategoryDescription: description,
		ConfidenceScore:     Confidence(scores[best].Hits, total),
		AllScores:           scores,
		Recommendation:      Recommendation(primary),
	}
}

// Confidence is the winner's share of all hits as a percentage, capped at 100
// and rounded to two decimals. A zero total is treated as one.
func Confidence(winner, total int) float64 {
	if total < 1 {
		total = 1
	}
	pct := math.Min(float64(winner)/float64(total)*100, 100)
	return math.RoundToEven(pct*100) / 100
}

// DepartmentName turns a category key such as "technical_support" into
// "Technical Support".
func DepartmentName(c domain.Category) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(c), "_", " "))
}

func Recommendation(c domain.Category) string {
	return "This call should be routed to the " + DepartmentName(c) + " department"
}
