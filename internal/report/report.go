// Package report renders classification results as text, CSV and JSON.
package report

import (
	"fmt"
	"strings"

	"callclassifier/internal/analysis"
	"callclassifier/internal/classify"
	"callclassifier/internal/domain"
)

// GenerateReport recomputes analysis, classification and customer info for
// transcript and renders the fixed-format text report.
func GenerateReport(transcript string) string {
	a := analysis.Analyze(transcript)
	c := classify.Classify(transcript, &a)
	info := analysis.ExtractCustomerInfo(transcript)
	return Render(a, c, info)
}

func Render(a domain.AnalysisRecord, c domain.ClassificationRecord, info domain.CustomerInfoRecord) string {
	department := classify.DepartmentName(c.PrimaryCategory)

	var b strings.Builder
	b.WriteString("\nCUSTOMER CALL CLASSIFICATION REPORT\n")
	b.WriteString("====================================\n\n")

	b.WriteString("CLASSIFICATION RESULT:\n")
	fmt.Fprintf(&b, "- Primary Category: %s\n", strings.ToUpper(string(c.PrimaryCategory)))
	fmt.Fprintf(&b, "- Category Description: %s\n", c.CategoryDescription)
	fmt.Fprintf(&b, "- Confidence Score: %s%%\n", c.Confidence())
	fmt.Fprintf(&b, "- Department Recommendation: %s\n\n", c.Recommendation)

	b.WriteString("ANALYSIS SUMMARY:\n")
	fmt.Fprintf(&b, "- Sentiment: %s\n", a.Sentiment)
	fmt.Fprintf(&b, "- Urgency Level: %s\n", a.UrgencyLevel)
	fmt.Fprintf(&b, "- Estimated Call Duration: %s\n\n", a.DurationEstimate)

	b.WriteString("KEY INFORMATION:\n")
	fmt.Fprintf(&b, "- Mentioned Services: %s\n", joinOr(info.MentionedServices, "None identified"))
	fmt.Fprintf(&b, "- Issues Reported: %s\n", joinOr(info.IssuesReported, "None reported"))
	fmt.Fprintf(&b, "- Customer Requests: %s\n\n", joinOr(info.Requests, "No specific requests"))

	b.WriteString("SENTIMENT INDICATORS:\n")
	if len(info.SentimentMarkers) == 0 {
		b.WriteString("  - Neutral tone detected\n")
	}
	for _, marker := range info.SentimentMarkers {
		fmt.Fprintf(&b, "  - %s\n", marker)
	}
	b.WriteString("\n")

	b.WriteString("ACTION ITEMS:\n")
	fmt.Fprintf(&b, "- Priority Level: %s%%\n", c.Confidence())
	fmt.Fprintf(&b, "- Next Steps: Route to %s department for further handling\n", department)
	return b.String()
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
