package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Aditya-myst/hookflow/internal/adapter/repo"
	"github.com/Aditya-myst/hookflow/internal/http/handlers"
	httpapi "github.com/Aditya-myst/hookflow/internal/http/httpapi"
	"github.com/Aditya-myst/hookflow/internal/infra"
	"github.com/Aditya-myst/hookflow/internal/ledger"
	"github.com/Aditya-myst/hookflow/internal/middleware"
	"github.com/Aditya-myst/hookflow/internal/orchestrator"
	"github.com/Aditya-myst/hookflow/internal/paypal"
	"github.com/Aditya-myst/hookflow/internal/providers/gemini"
	"github.com/Aditya-myst/hookflow/internal/webhook"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	clerkKey, err := middleware.ParsePublicKey(cfg.ClerkJWTPublicKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid CLERK_JWT_PUBLIC_KEY")
	}

	if err := infra.RunMigrations(cfg, "file://migrations"); err != nil {
		logger.Fatal().Err(err).Msg("database migration failed")
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	accounts := repo.NewAccountRepository(dbpool)
	templates := repo.NewHookTemplateRepository(dbpool)
	usage := repo.NewUsageRepository(dbpool)

	completer, err := gemini.NewClient(ctx, gemini.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init gemini client")
	}

	app := &handlers.App{
		Logger:   logger,
		Accounts: accounts,
		Usage:    usage,
		Ledger:   ledger.New(accounts, logger),
		Gen:      orchestrator.New(completer, templates, logger),
	}

	if cfg.PayPalClientID != "" && cfg.PayPalClientSecret != "" {
		payments, err := paypal.NewClient(paypal.Options{
			ClientID:     cfg.PayPalClientID,
			ClientSecret: cfg.PayPalClientSecret,
			BaseURL:      cfg.PayPalBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init paypal client")
		}
		app.Payments = payments
	} else {
		logger.Warn().Msg("paypal credentials not set, payment verification disabled")
	}

	if cfg.ClerkWebhookSecret != "" {
		hooks, err := webhook.NewProcessor(cfg.ClerkWebhookSecret, accounts, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init clerk webhook processor")
		}
		app.Webhooks = hooks
	} else {
		logger.Warn().Msg("CLERK_WEBHOOK_SECRET not set, webhook processing disabled")
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		ClerkPublicKey:  clerkKey,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
