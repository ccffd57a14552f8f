package app

import (
	"database/sql"
	"fmt"
	"log"

	"callclassifier/internal/config"
	"callclassifier/internal/engine"
	"callclassifier/internal/httpx"
	slackbot "callclassifier/internal/integrations/slack"
	"callclassifier/internal/storage/sqlite"
)

// App holds what every command needs once configuration is loaded.
type App struct {
	Config   config.Config
	Engine   engine.Engine
	Notifier *slackbot.Notifier
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	appliedHTTPTimeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)
	log.Printf(
		"Config loaded. Strategy=%s LLMProvider=%s LLMModel=%s LLMReview=%t DB=%s ReportDir=%s BatchWorkers=%d Slack=%t Inbox=%s InboxSchedule=%q Timezone=%s ExternalHTTPTimeout=%s",
		cfg.ClassifierStrategy,
		cfg.LLMProvider,
		cfg.LLMModel,
		cfg.LLMReview,
		cfg.DBPath,
		cfg.ReportOutputDir,
		cfg.BatchWorkers,
		cfg.SlackConfigured(),
		cfg.InboxDir,
		cfg.InboxSchedule,
		cfg.Timezone,
		appliedHTTPTimeout,
	)

	eng, err := engine.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("building %s engine: %w", cfg.ClassifierStrategy, err)
	}
	return &App{
		Config:   cfg,
		Engine:   eng,
		Notifier: slackbot.NewNotifier(cfg),
	}, nil
}

// OpenDB opens the call history database. Callers close it.
func (a *App) OpenDB() (*sql.DB, error) {
	db, err := sqlite.InitDB(a.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("Failed to init database: %w", err)
	}
	log.Printf("Database initialized at %s", a.Config.DBPath)
	return db, nil
}
