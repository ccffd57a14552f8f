package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultExternalHTTPTimeout = 90 * time.Second
const defaultExternalHTTPTimeoutSeconds = int(defaultExternalHTTPTimeout / time.Second)

const (
	StrategyKeyword = "keyword"
	StrategyLLM     = "llm"
)

type Config struct {
	ClassifierStrategy string `yaml:"classifier_strategy"`

	LLMProvider     string `yaml:"llm_provider"`
	LLMModel        string `yaml:"llm_model"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	LLMReview       bool   `yaml:"llm_review"`

	DBPath                     string `yaml:"db_path"`
	ReportOutputDir            string `yaml:"report_output_dir"`
	BatchWorkers               int    `yaml:"batch_workers"`
	ExternalHTTPTimeoutSeconds int    `yaml:"external_http_timeout_seconds"`

	SlackBotToken  string `yaml:"slack_bot_token"`
	SlackChannelID string `yaml:"slack_channel_id"`

	InboxDir      string `yaml:"inbox_dir"`
	InboxSchedule string `yaml:"inbox_schedule"`
	Timezone      string `yaml:"timezone"`

	Location *time.Location `yaml:"-"` // computed from Timezone, not from YAML
}

// LoadConfig loads configuration and exits the process on any error.
func LoadConfig() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("%v", err)
	}
	return cfg
}

// Load reads config.yaml (or CONFIG_PATH) if present, applies environment
// overrides and defaults, then validates the result.
func Load() (Config, error) {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("Error parsing %s: %w", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	envOverride(&cfg.ClassifierStrategy, "CLASSIFIER_STRATEGY")
	envOverride(&cfg.LLMProvider, "LLM_PROVIDER")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	if err := envOverrideBool(&cfg.LLMReview, "LLM_REVIEW"); err != nil {
		return cfg, err
	}
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.ReportOutputDir, "REPORT_OUTPUT_DIR")
	if err := envOverrideInt(&cfg.BatchWorkers, "BATCH_WORKERS"); err != nil {
		return cfg, err
	}
	if err := envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS"); err != nil {
		return cfg, err
	}
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")
	envOverride(&cfg.InboxDir, "INBOX_DIR")
	envOverride(&cfg.InboxSchedule, "INBOX_SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")

	if cfg.ClassifierStrategy == "" {
		cfg.ClassifierStrategy = StrategyKeyword
	}
	cfg.ClassifierStrategy = strings.ToLower(strings.TrimSpace(cfg.ClassifierStrategy))
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "anthropic"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./calls.db"
	}
	if cfg.ReportOutputDir == "" {
		cfg.ReportOutputDir = "./reports"
	}
	if cfg.BatchWorkers == 0 {
		cfg.BatchWorkers = 4
	}
	if cfg.ExternalHTTPTimeoutSeconds == 0 {
		cfg.ExternalHTTPTimeoutSeconds = defaultExternalHTTPTimeoutSeconds
	}
	if cfg.InboxDir == "" {
		cfg.InboxDir = "./inbox"
	}
	if cfg.InboxSchedule == "" {
		cfg.InboxSchedule = "*/5 * * * *"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	switch cfg.ClassifierStrategy {
	case StrategyKeyword:
	case StrategyLLM:
		switch cfg.LLMProvider {
		case "anthropic":
			if cfg.AnthropicAPIKey == "" {
				return cfg, fmt.Errorf("anthropic_api_key is required when classifier_strategy=llm and llm_provider=anthropic")
			}
		case "openai":
			if cfg.OpenAIAPIKey == "" {
				return cfg, fmt.Errorf("openai_api_key is required when classifier_strategy=llm and llm_provider=openai")
			}
		default:
			return cfg, fmt.Errorf("llm_provider must be 'anthropic' or 'openai', got '%s'", cfg.LLMProvider)
		}
	default:
		return cfg, fmt.Errorf("classifier_strategy must be 'keyword' or 'llm', got '%s'", cfg.ClassifierStrategy)
	}

	if (cfg.SlackBotToken == "") != (cfg.SlackChannelID == "") {
		return cfg, fmt.Errorf("slack_bot_token and slack_channel_id must be set together")
	}

	if strings.EqualFold(cfg.Timezone, "Local") {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return cfg, fmt.Errorf("invalid timezone '%s': %w", cfg.Timezone, err)
		}
		cfg.Location = loc
	}

	if cfg.BatchWorkers < 1 {
		return cfg, fmt.Errorf("invalid batch_workers '%d': must be >= 1", cfg.BatchWorkers)
	}
	if cfg.ExternalHTTPTimeoutSeconds < 5 {
		return cfg, fmt.Errorf("invalid external_http_timeout_seconds '%d': must be >= 5", cfg.ExternalHTTPTimeoutSeconds)
	}

	return cfg, nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}

func envOverrideBool(field *bool, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}

func (c Config) SlackConfigured() bool {
	return c.SlackBotToken != "" && c.SlackChannelID != ""
}

func (c Config) UsesLLM() bool {
	return c.ClassifierStrategy == StrategyLLM
}
