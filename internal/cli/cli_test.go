package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"callclassifier/internal/batch"
	"callclassifier/internal/domain"
	"callclassifier/internal/lexicon"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "missing-config.yaml"))
	for _, key := range []string{
		"CLASSIFIER_STRATEGY", "LLM_PROVIDER", "LLM_MODEL", "LLM_REVIEW", "SLACK_BOT_TOKEN", "SLACK_CHANNEL_ID",
		"BATCH_WORKERS", "EXTERNAL_HTTP_TIMEOUT_SECONDS", "INBOX_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("DB_PATH", filepath.Join(dir, "calls.db"))
	t.Setenv("REPORT_OUTPUT_DIR", filepath.Join(dir, "reports"))
	t.Setenv("INBOX_DIR", filepath.Join(dir, "inbox"))
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestClassifyFromStdinText(t *testing.T) {
	isolateEnv(t)
	out, _, err := runCLI(t, "I was charged twice. I want a refund.", "classify")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if !strings.Contains(out, "- Primary Category: BILLING\n") || !strings.Contains(out, "- Confidence Score: 50.0%\n") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestClassifyFormats(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "call.txt")
	if err := os.WriteFile(path, []byte("my wifi is not working"), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	out, _, err := runCLI(t, "", "classify", path, "--format", "csv")
	if err != nil {
		t.Fatalf("classify csv failed: %v", err)
	}
	if !strings.HasPrefix(out, "Category,Confidence,Sentiment,Urgency,Duration\n") {
		t.Fatalf("unexpected csv:\n%s", out)
	}

	out, _, err = runCLI(t, "", "classify", path, "--format", "json")
	if err != nil {
		t.Fatalf("classify json failed: %v", err)
	}
	if !strings.Contains(out, `"primary_category": "technical_support"`) {
		t.Fatalf("unexpected json:\n%s", out)
	}

	if _, _, err := runCLI(t, "", "classify", path, "--format", "xml"); err == nil {
		t.Fatal("expected unknown format error")
	}
}

func TestClassifyRejectsEmptyInput(t *testing.T) {
	isolateEnv(t)
	if _, _, err := runCLI(t, "   \n", "classify", "-"); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty transcript error, got %v", err)
	}
}

func TestClassifyNotifyNeedsSlack(t *testing.T) {
	isolateEnv(t)
	if _, _, err := runCLI(t, "my bill", "classify", "--notify"); err == nil || !strings.Contains(err.Error(), "slack_bot_token") {
		t.Fatalf("expected slack config error, got %v", err)
	}
}

func TestClassifySaveThenHistory(t *testing.T) {
	isolateEnv(t)
	if _, errOut, err := runCLI(t, "my bill is wrong", "classify", "--save"); err != nil {
		t.Fatalf("classify --save failed: %v", err)
	} else if !strings.Contains(errOut, "Saved as call #1") {
		t.Fatalf("expected save confirmation, got %q", errOut)
	}

	out, _, err := runCLI(t, "", "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "#1  ") || !strings.Contains(out, "BILLING") || !strings.Contains(out, "Total calls: 1\n") {
		t.Fatalf("unexpected history:\n%s", out)
	}

	out, _, err = runCLI(t, "", "history", "show", "1")
	if err != nil {
		t.Fatalf("history show failed: %v", err)
	}
	if !strings.HasPrefix(out, "\nCUSTOMER CALL CLASSIFICATION REPORT\n") {
		t.Fatalf("unexpected stored report:\n%s", out)
	}

	if _, _, err := runCLI(t, "", "history", "show", "99"); err == nil {
		t.Fatal("expected missing call error")
	}
}

func TestHistoryEmpty(t *testing.T) {
	isolateEnv(t)
	out, _, err := runCLI(t, "", "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if out != "No calls stored yet.\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestBatchCommand(t *testing.T) {
	dir := isolateEnv(t)
	csvPath := filepath.Join(dir, "batch.csv")

	out, errOut, err := runCLI(t, "my bill\n---\n\n---\nmy wifi is not working", "batch", "--csv", csvPath)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if !strings.HasPrefix(out, "Call 1: BILLING (100.0% confidence)\nCall 2: TECHNICAL_SUPPORT (") {
		t.Fatalf("unexpected batch output:\n%s", out)
	}
	if !strings.Contains(out, "Total calls: 2 (succeeded 2, failed 0)\n") {
		t.Fatalf("expected summary, got:\n%s", out)
	}
	if !strings.Contains(errOut, "Processing call 2/2") {
		t.Fatalf("expected progress on stderr, got %q", errOut)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.HasPrefix(string(data), "Call #,Category,Confidence,Sentiment,Urgency\n1,BILLING,100.0%,") {
		t.Fatalf("unexpected csv:\n%s", data)
	}

	if _, _, err := runCLI(t, "---", "batch"); err == nil {
		t.Fatal("expected error for blob without transcripts")
	}
}

func TestSamplesCommands(t *testing.T) {
	isolateEnv(t)
	out, _, err := runCLI(t, "", "samples")
	if err != nil {
		t.Fatalf("samples failed: %v", err)
	}
	if !strings.HasPrefix(out, "1. Technical Support - Network Issue [technical_support]\n") {
		t.Fatalf("unexpected listing:\n%s", out)
	}

	out, _, err = runCLI(t, "", "samples", "run")
	if err != nil {
		t.Fatalf("samples run failed: %v", err)
	}
	if !strings.Contains(out, "3. Billing - Overcharge Issue: expected billing, predicted refund (42.86%) MISS\n") {
		t.Fatalf("unexpected sample 3 line:\n%s", out)
	}
	if !strings.HasSuffix(out, "6/8 samples matched their label\n") {
		t.Fatalf("unexpected accuracy line:\n%s", out)
	}

	if _, _, err := runCLI(t, "", "samples", "run", "--id", "42"); err == nil {
		t.Fatal("expected unknown sample error")
	}
}

func TestInboxOnce(t *testing.T) {
	dir := isolateEnv(t)
	inboxDir := filepath.Join(dir, "inbox")
	if err := os.MkdirAll(inboxDir, 0o755); err != nil {
		t.Fatalf("mkdir inbox: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inboxDir, "calls.txt"), []byte("I want a refund\n---\nmy bill"), 0o644); err != nil {
		t.Fatalf("write inbox file: %v", err)
	}

	out, _, err := runCLI(t, "", "inbox", "--once")
	if err != nil {
		t.Fatalf("inbox --once failed: %v", err)
	}
	if out != "Processed 1 file(s): 2 call(s) classified, 2 stored, 2 report(s) written\n" {
		t.Fatalf("unexpected summary: %q", out)
	}
}

func TestConfigFlagSetsConfigPath(t *testing.T) {
	dir := isolateEnv(t)
	cfgPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(cfgPath, []byte("classifier_strategy: \"neural\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, "my bill", "--config", cfgPath, "classify"); err == nil || !strings.Contains(err.Error(), "classifier_strategy") {
		t.Fatalf("expected config from --config to be used, got %v", err)
	}
}

func TestFormatBatchSummary(t *testing.T) {
	got := FormatBatchSummary(batch.Summary{
		Total:           3,
		Succeeded:       2,
		Failed:          1,
		AvgConfidence:   75,
		CommonSentiment: domain.SentimentNegative,
		CategoryCounts:  map[domain.Category]int{lexicon.Refund: 1, lexicon.Billing: 1},
		SentimentCounts: map[domain.Sentiment]int{domain.SentimentNegative: 2},
	})
	want := "Total calls: 3 (succeeded 2, failed 1)\n" +
		"Average confidence: 75.0%\n" +
		"Most common sentiment: Negative\n" +
		"Categories:\n  Billing: 1\n  Refund: 1\n" +
		"Sentiment:\n  Negative: 2\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
