package classify

import (
	"reflect"
	"testing"

	"callclassifier/internal/analysis"
	"callclassifier/internal/domain"
	"callclassifier/internal/lexicon"
	"callclassifier/internal/samples"
)

func hits(s domain.CategoryScores) []int {
	out := make([]int, 0, len(s))
	for _, cs := range s {
		out = append(out, cs.Hits)
	}
	return out
}

func TestClassifyTieGoesToFirstDeclared(t *testing.T) {
	got := Classify("I was charged twice. I want a refund.", nil)

	if got.PrimaryCategory != lexicon.Billing {
		t.Fatalf("expected billing to win the tie, got %s", got.PrimaryCategory)
	}
	if got.AllScores.Get(lexicon.Billing) != 1 || got.AllScores.Get(lexicon.Refund) != 1 {
		t.Fatalf("expected billing=1 refund=1, got %v", hits(got.AllScores))
	}
	if got.ConfidenceScore != 50.0 {
		t.Fatalf("expected confidence 50.0, got %v", got.ConfidenceScore)
	}
	if got.Recommendation != "This call should be routed to the Billing department" {
		t.Fatalf("unexpected recommendation: %q", got.Recommendation)
	}
}

func TestClassifyEmptyTranscript(t *testing.T) {
	got := Classify("", nil)

	if got.PrimaryCategory != lexicon.Billing {
		t.Fatalf("expected first declared category, got %s", got.PrimaryCategory)
	}
	if got.ConfidenceScore != 0 {
		t.Fatalf("expected confidence 0, got %v", got.ConfidenceScore)
	}
	if got.AllScores.Total() != 0 {
		t.Fatalf("expected all scores to be zero, got %v", hits(got.AllScores))
	}
	if got.CategoryDescription != "Billing, payments, invoices, and pricing inquiries" {
		t.Fatalf("unexpected description: %q", got.CategoryDescription)
	}
}

func TestClassifyAlwaysReportsAllCategories(t *testing.T) {
	for _, transcript := range []string{"", "fraud fraud", "new plan upgrade offer", "\x00\xff garbage"} {
		got := Classify(transcript, nil)
		if len(got.AllScores) != 8 {
			t.Fatalf("%q: expected 8 scores, got %d", transcript, len(got.AllScores))
		}
		for i, c := range lexicon.Categories() {
			if got.AllScores[i].Category != c {
				t.Fatalf("%q: score %d is %s, want %s", transcript, i, got.AllScores[i].Category, c)
			}
			if got.AllScores[i].Hits < 0 {
				t.Fatalf("%q: negative score for %s", transcript, c)
			}
		}
		if got.ConfidenceScore < 0 || got.ConfidenceScore > 100 {
			t.Fatalf("%q: confidence out of range: %v", transcript, got.ConfidenceScore)
		}
		if got.AllScores.Get(got.PrimaryCategory) != maxHits(got.AllScores) {
			t.Fatalf("%q: primary %s is not the maximum", transcript, got.PrimaryCategory)
		}
	}
}

func maxHits(s domain.CategoryScores) int {
	m := 0
	for _, cs := range s {
		if cs.Hits > m {
			m = cs.Hits
		}
	}
	return m
}

func TestClassifySampleCalls(t *testing.T) {
	tests := []struct {
		id         int
		want       domain.Category
		confidence float64
		scores     []int
	}{
		{1, lexicon.TechnicalSupport, 50.0, []int{0, 3, 0, 3, 0, 0, 0, 0}},
		{2, lexicon.Retention, 50.0, []int{1, 0, 1, 1, 5, 2, 0, 0}},
		{3, lexicon.Refund, 42.86, []int{2, 0, 1, 1, 0, 0, 3, 0}},
		{4, lexicon.Sales, 50.0, []int{0, 0, 1, 0, 1, 2, 0, 0}},
		{5, lexicon.AccountManagement, 40.0, []int{1, 1, 4, 3, 0, 1, 0, 0}},
		{6, lexicon.Refund, 50.0, []int{1, 0, 1, 0, 0, 0, 2, 0}},
		// account_management and fraud tie; account_management is declared first.
		{7, lexicon.AccountManagement, 42.86, []int{0, 0, 3, 0, 0, 1, 0, 3}},
		{8, lexicon.CustomerService, 66.67, []int{0, 1, 0, 2, 0, 0, 0, 0}},
	}
	for _, tc := range tests {
		s, ok := samples.ByID(tc.id)
		if !ok {
			t.Fatalf("sample %d missing", tc.id)
		}
		a := analysis.Analyze(s.Transcript)
		got := Classify(s.Transcript, &a)
		if got.PrimaryCategory != tc.want {
			t.Fatalf("sample %d: expected %s, got %s", tc.id, tc.want, got.PrimaryCategory)
		}
		if got.ConfidenceScore != tc.confidence {
			t.Fatalf("sample %d: expected confidence %v, got %v", tc.id, tc.confidence, got.ConfidenceScore)
		}
		if !reflect.DeepEqual(hits(got.AllScores), tc.scores) {
			t.Fatalf("sample %d: expected scores %v, got %v", tc.id, tc.scores, hits(got.AllScores))
		}
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		winner, total int
		want          float64
	}{
		{0, 0, 0},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{3, 3, 100},
		{1, 7, 14.29},
		// Halves round to even.
		{1, 32, 3.12},
		{3, 32, 9.38},
		{5, 32, 15.62},
		{7, 32, 21.88},
	}
	for _, tc := range tests {
		if got := Confidence(tc.winner, tc.total); got != tc.want {
			t.Fatalf("Confidence(%d, %d) = %v, want %v", tc.winner, tc.total, got, tc.want)
		}
	}
}

func TestClassifyRoundsHalfToEven(t *testing.T) {
	transcript := "bill payment invoice charge cost connection network wifi signal account change update modify " +
		"complaint help support service cancel leave switch competitor upgrade package buy purchase " +
		"refund credit compensation fraud security suspicious identity"

	got := Classify(transcript, nil)
	if got.PrimaryCategory != lexicon.Billing {
		t.Fatalf("expected billing, got %s", got.PrimaryCategory)
	}
	if w, total := got.AllScores.Get(lexicon.Billing), got.AllScores.Total(); w != 5 || total != 32 {
		t.Fatalf("expected 5 of 32 hits, got %d of %d", w, total)
	}
	if got.ConfidenceScore != 15.62 {
		t.Fatalf("expected confidence 15.62, got %v", got.ConfidenceScore)
	}
}

func TestDepartmentName(t *testing.T) {
	tests := map[domain.Category]string{
		lexicon.TechnicalSupport:  "Technical Support",
		lexicon.AccountManagement: "Account Management",
		lexicon.Fraud:             "Fraud",
	}
	for c, want := range tests {
		if got := DepartmentName(c); got != want {
			t.Fatalf("DepartmentName(%s) = %q, want %q", c, got, want)
		}
	}
}
