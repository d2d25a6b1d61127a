package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tradepulse/momentum-scanner/internal/aggregator"
	"github.com/tradepulse/momentum-scanner/internal/config"
	"github.com/tradepulse/momentum-scanner/internal/feed"
	"github.com/tradepulse/momentum-scanner/internal/logger"
	"github.com/tradepulse/momentum-scanner/internal/models"
	"github.com/tradepulse/momentum-scanner/internal/server"
	"github.com/tradepulse/momentum-scanner/internal/telegram"
	"github.com/tradepulse/momentum-scanner/internal/watchlist"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Optional .env for credentials that should stay out of the config file.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	symbols, err := watchlist.LoadSymbols(cfg.Scanner.SymbolsFile)
	if err != nil {
		logger.Fatal("Failed to load watchlist: %v", err)
	}
	if len(symbols) == 0 {
		logger.Fatal("Watchlist %s is empty; nothing to scan", cfg.Scanner.SymbolsFile)
	}
	logger.Info("Loaded %d watchlist symbols", len(symbols))

	accessToken := os.Getenv("SCANNER_ACCESS_TOKEN")
	if accessToken == "" {
		accessToken, err = watchlist.LoadAccessToken(cfg.Feed.AccessTokenFile)
		if err != nil {
			logger.Fatal("Failed to load access token: %v", err)
		}
	}

	agg, err := aggregator.New(cfg.DetectionConfig())
	if err != nil {
		logger.Fatal("Failed to create aggregator: %v", err)
	}
	agg.SetSymbolCount(len(symbols))

	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		telegramClient, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		logger.Info("Telegram client initialized successfully")
	} else {
		logger.Debug("Telegram notifications disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	if cfg.Telegram.Enabled && telegramClient != nil {
		telegramClient.ListenForCommands(ctx)
	}

	if cfg.Server.Enabled {
		httpServer := &http.Server{
			Addr:    cfg.Server.ListenAddr,
			Handler: server.New(agg).Router(),
		}
		go func() {
			logger.Info("Dashboard listening on %s", cfg.Server.ListenAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server failed: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			_ = httpServer.Shutdown(context.Background())
		}()
	}

	feedClient := feed.NewClient(feed.ClientConfig{
		URL:            cfg.Feed.URL,
		ClientID:       cfg.Feed.ClientID,
		AccessToken:    accessToken,
		BufferSize:     cfg.Feed.BufferSize,
		ReconnectDelay: cfg.Feed.ReconnectDelay,
		PingInterval:   cfg.Feed.PingInterval,
	}, agg.SetConnected)

	logger.Info("Starting scanner (lookback: %ds, threshold: %.2f%%, symbols: %d)",
		cfg.Scanner.LookbackSeconds, cfg.Scanner.ThresholdPercent, len(symbols))

	// Single writer: every tick funnels through this loop into the aggregator.
	for tick := range feedClient.Subscribe(ctx, symbols) {
		alert := agg.Ingest(tick)
		if alert == nil {
			continue
		}

		logger.Info("Momentum alert: %s %s at %.2f", alert.Symbol, alert.MovePercent, alert.LastPrice)

		if telegramClient != nil {
			go func(a models.Alert) {
				if err := telegramClient.SendAlert(a); err != nil {
					logger.Warn("Failed to send Telegram alert: %v", err)
				}
			}(*alert)
		}
	}

	logger.Info("Service stopped")
}
