package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
	for _, key := range []string{
		"CLASSIFIER_STRATEGY", "LLM_PROVIDER", "LLM_MODEL", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "LLM_REVIEW",
		"DB_PATH", "REPORT_OUTPUT_DIR", "BATCH_WORKERS", "EXTERNAL_HTTP_TIMEOUT_SECONDS",
		"SLACK_BOT_TOKEN", "SLACK_CHANNEL_ID", "INBOX_DIR", "INBOX_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("TIMEZONE", "UTC")
}

func TestLoadDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ClassifierStrategy != StrategyKeyword {
		t.Fatalf("unexpected strategy default: %q", cfg.ClassifierStrategy)
	}
	if cfg.DBPath != "./calls.db" {
		t.Fatalf("unexpected db path default: %q", cfg.DBPath)
	}
	if cfg.ReportOutputDir != "./reports" {
		t.Fatalf("unexpected report output dir default: %q", cfg.ReportOutputDir)
	}
	if cfg.BatchWorkers != 4 {
		t.Fatalf("unexpected batch workers default: %d", cfg.BatchWorkers)
	}
	if cfg.ExternalHTTPTimeoutSeconds != defaultExternalHTTPTimeoutSeconds {
		t.Fatalf("unexpected external HTTP timeout default: %d", cfg.ExternalHTTPTimeoutSeconds)
	}
	if cfg.InboxSchedule != "*/5 * * * *" {
		t.Fatalf("unexpected inbox schedule default: %q", cfg.InboxSchedule)
	}
	if cfg.Location == nil || cfg.Location.String() != "UTC" {
		t.Fatalf("unexpected location: %v", cfg.Location)
	}
	if cfg.SlackConfigured() || cfg.UsesLLM() {
		t.Fatalf("expected slack and llm to be off by default: %+v", cfg)
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	isolateConfig(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
classifier_strategy: "llm"
llm_provider: "anthropic"
anthropic_api_key: "yaml-anthropic"
db_path: "/tmp/yaml.db"
batch_workers: 2
slack_bot_token: "xoxb-yaml"
slack_channel_id: "C123"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("DB_PATH", "/tmp/env.db")
	t.Setenv("BATCH_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.UsesLLM() || cfg.AnthropicAPIKey != "yaml-anthropic" {
		t.Fatalf("expected llm strategy from yaml, got %+v", cfg)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("expected env override for db path, got %q", cfg.DBPath)
	}
	if cfg.BatchWorkers != 8 {
		t.Fatalf("expected env override for batch workers, got %d", cfg.BatchWorkers)
	}
	if !cfg.SlackConfigured() {
		t.Fatal("expected slack to be configured")
	}
	if cfg.LLMReview {
		t.Fatal("expected llm review to default off")
	}
}

func TestLoadReviewFlagFromEnv(t *testing.T) {
	isolateConfig(t)
	t.Setenv("LLM_REVIEW", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.LLMReview {
		t.Fatal("expected LLM_REVIEW=true to enable review")
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown strategy", map[string]string{"CLASSIFIER_STRATEGY": "neural"}, "classifier_strategy"},
		{"llm without key", map[string]string{"CLASSIFIER_STRATEGY": "llm"}, "anthropic_api_key"},
		{"openai without key", map[string]string{"CLASSIFIER_STRATEGY": "llm", "LLM_PROVIDER": "openai"}, "openai_api_key"},
		{"bad provider", map[string]string{"CLASSIFIER_STRATEGY": "llm", "LLM_PROVIDER": "cohere"}, "llm_provider"},
		{"partial slack", map[string]string{"SLACK_BOT_TOKEN": "xoxb"}, "slack_channel_id"},
		{"bad workers", map[string]string{"BATCH_WORKERS": "-1"}, "batch_workers"},
		{"non-numeric workers", map[string]string{"BATCH_WORKERS": "many"}, "BATCH_WORKERS"},
		{"bad review flag", map[string]string{"LLM_REVIEW": "sometimes"}, "LLM_REVIEW"},
		{"short timeout", map[string]string{"EXTERNAL_HTTP_TIMEOUT_SECONDS": "2"}, "external_http_timeout_seconds"},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}, "invalid timezone"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolateConfig(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	isolateConfig(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("batch_workers: [oops"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", cfgPath)

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "Error parsing") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
