package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"callclassifier/internal/domain"
)

var summaryHeader = []string{"Category", "Confidence", "Sentiment", "Urgency", "Duration"}

var batchHeader = []string{"Call #", "Category", "Confidence", "Sentiment", "Urgency"}

// BatchRow is one successfully processed call of a batch.
type BatchRow struct {
	CallNumber int
	Result     domain.CallResult
}

// FormatCSV renders the single-call export: a header line and one data line
// without a trailing newline.
func FormatCSV(a domain.AnalysisRecord, c domain.ClassificationRecord) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(summaryHeader); err != nil {
		return "", err
	}
	row := []string{
		string(c.PrimaryCategory),
		c.Confidence(),
		string(a.Sentiment),
		string(a.UrgencyLevel),
		string(a.DurationEstimate),
	}
	if err := w.Write(row); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func WriteBatchCSV(out io.Writer, rows []BatchRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(batchHeader); err != nil {
		return err
	}
	for _, r := range rows {
		c := r.Result.Classification
		a := r.Result.Analysis
		err := w.Write([]string{
			fmt.Sprintf("%d", r.CallNumber),
			strings.ToUpper(string(c.PrimaryCategory)),
			c.Confidence() + "%",
			string(a.Sentiment),
			string(a.UrgencyLevel),
		})
		if err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

type jsonCustomerInfo struct {
	MentionedServices []string `json:"mentioned_services"`
	IssuesReported    []string `json:"issues_reported"`
	Requests          []string `json:"requests"`
}

type jsonExport struct {
	Classification domain.ClassificationRecord `json:"classification"`
	Analysis       domain.AnalysisRecord       `json:"analysis"`
	CustomerInfo   jsonCustomerInfo            `json:"customer_info"`
}

// FormatJSON renders the structured export. Sentiment markers are left out;
// they only appear in the text report.
func FormatJSON(r domain.CallResult) ([]byte, error) {
	return json.MarshalIndent(jsonExport{
		Classification: r.Classification,
		Analysis:       r.Analysis,
		CustomerInfo: jsonCustomerInfo{
			MentionedServices: r.CustomerInfo.MentionedServices,
			IssuesReported:    r.CustomerInfo.IssuesReported,
			Requests:          r.CustomerInfo.Requests,
		},
	}, "", "  ")
}

// WriteReportFile stores a text report as <name>_<YYYYMMDD_HHMMSS>.txt in
// outputDir and returns the path.
func WriteReportFile(content, outputDir, name string, at time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_%s.txt", sanitizeFilename(name), at.Format("20060102_150405"))
	path := filepath.Join(outputDir, filename)
	return path, os.WriteFile(path, []byte(content), 0644)
}

func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_")
	s = strings.TrimLeft(replacer.Replace(strings.TrimSpace(s)), ".")
	if s == "" {
		return "call"
	}
	return s
}
