package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketScout/internal/collector"
	"MarketScout/internal/config"
	"MarketScout/internal/credentials"
	"MarketScout/internal/logger"
	"MarketScout/internal/notifier"
	"MarketScout/internal/pipeline"
	"MarketScout/internal/recorder"
	"MarketScout/internal/scheduler"
)

func main() {
	logger.Init()
	log := logger.L()
	log.Info().Msg("MarketScout starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	envFile := ".env"
	if v := os.Getenv("ENV_FILE"); v != "" {
		envFile = v
	}
	creds, err := credentials.Load(envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load credentials")
	}

	// Init collector
	col, err := collector.New(creds,
		collector.WithBaseURL(cfg.DataSource.BaseURL),
		collector.WithHTTPClient(collector.NewHTTPClient(time.Duration(cfg.HTTP.TimeoutSec)*time.Second, cfg.Proxy)),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init collector")
	}

	// Init recorder
	rec, err := recorder.Open(cfg.Database.Driver, cfg.Database.SQLitePath, cfg.Database.PostgresURL)
	if err != nil {
		log.Warn().Err(err).Str("driver", cfg.Database.Driver).Msg("init recorder failed, using noop")
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	// Init notifier
	var n notifier.Notifier = notifier.NewNoopNotifier()
	if cfg.Telegram.BotToken != "" {
		n = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	p := pipeline.New(col, rec, n, cfg.DataSource.Symbols, cfg.Database.HistoryLimit)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Schedule.Cron == "" {
		report := p.Run(ctx)
		log.Info().Interface("market_data", report.Collected).Msg("market data collected")
		return
	}

	sched := scheduler.NewScheduler(ctx, p)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, collecting now")
		go sched.RunNow()
	}

	log.Info().Str("cron", cfg.Schedule.Cron).Msg("MarketScout is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping...")
}
