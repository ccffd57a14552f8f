package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"callclassifier/internal/analysis"
	"callclassifier/internal/classify"
	"callclassifier/internal/domain"
)

func resultFor(transcript string) domain.CallResult {
	a := analysis.Analyze(transcript)
	return domain.CallResult{
		Transcript:     transcript,
		Analysis:       a,
		Classification: classify.Classify(transcript, &a),
		CustomerInfo:   analysis.ExtractCustomerInfo(transcript),
		Report:         GenerateReport(transcript),
	}
}

func TestFormatCSV(t *testing.T) {
	r := resultFor("I was charged twice. I want a refund.")
	got, err := FormatCSV(r.Analysis, r.Classification)
	if err != nil {
		t.Fatalf("FormatCSV failed: %v", err)
	}
	want := "Category,Confidence,Sentiment,Urgency,Duration\nbilling,50.0,Neutral,Low,Short (< 5 minutes)"
	if got != want {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteBatchCSV(t *testing.T) {
	rows := []BatchRow{
		{CallNumber: 1, Result: resultFor("wifi signal problem")},
		{CallNumber: 3, Result: resultFor("")},
	}
	var buf bytes.Buffer
	if err := WriteBatchCSV(&buf, rows); err != nil {
		t.Fatalf("WriteBatchCSV failed: %v", err)
	}
	want := "Call #,Category,Confidence,Sentiment,Urgency\n" +
		"1,TECHNICAL_SUPPORT,75.0%,Negative,Medium\n" +
		"3,BILLING,0.0%,Neutral,Low\n"
	if buf.String() != want {
		t.Fatalf("unexpected batch csv:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatJSONOmitsSentimentMarkers(t *testing.T) {
	r := resultFor("Thanks! I was charged twice and I want a refund.")
	data, err := FormatJSON(r)
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "sentiment_markers") {
		t.Fatalf("expected sentiment markers to be omitted, got %s", out)
	}
	if !strings.Contains(out, `"confidence_score": 50.0,`) {
		t.Fatalf("expected confidence with a fractional digit, got %s", out)
	}
	if strings.Index(out, `"billing"`) > strings.Index(out, `"fraud"`) {
		t.Fatalf("expected all_scores in declaration order, got %s", out)
	}

	var decoded struct {
		Classification domain.ClassificationRecord `json:"classification"`
		Analysis       domain.AnalysisRecord       `json:"analysis"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(decoded.Classification.AllScores) != 8 {
		t.Fatalf("expected 8 scores after decode, got %d", len(decoded.Classification.AllScores))
	}
	if decoded.Classification.PrimaryCategory != r.Classification.PrimaryCategory {
		t.Fatalf("expected primary %s, got %s", r.Classification.PrimaryCategory, decoded.Classification.PrimaryCategory)
	}
	if decoded.Classification.ConfidenceScore != 50 {
		t.Fatalf("expected confidence 50 after decode, got %v", decoded.Classification.ConfidenceScore)
	}
	if decoded.Analysis.Sentiment != r.Analysis.Sentiment {
		t.Fatalf("expected sentiment %s, got %s", r.Analysis.Sentiment, decoded.Analysis.Sentiment)
	}
}

func TestWriteReportFileSanitizesName(t *testing.T) {
	outDir := t.TempDir()
	at := time.Date(2026, 2, 20, 9, 30, 0, 0, time.UTC)

	path, err := WriteReportFile("hello report\n", outDir, "../calls/billing call", at)
	if err != nil {
		t.Fatalf("WriteReportFile failed: %v", err)
	}
	if filepath.Dir(path) != outDir {
		t.Fatalf("expected report inside %s, got %s", outDir, path)
	}
	base := filepath.Base(path)
	if base != "_calls_billing_call_20260220_093000.txt" {
		t.Fatalf("unexpected file name: %s", base)
	}
	if data, err := os.ReadFile(path); err != nil || string(data) != "hello report\n" {
		t.Fatalf("unexpected report content err=%v content=%q", err, string(data))
	}

	path, err = WriteReportFile("x", outDir, "  ", at)
	if err != nil {
		t.Fatalf("WriteReportFile failed: %v", err)
	}
	if filepath.Base(path) != "call_20260220_093000.txt" {
		t.Fatalf("expected fallback name, got %s", filepath.Base(path))
	}
}
