package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/DmtrPpl/vat-bot/internal/adapter/http"
	"github.com/DmtrPpl/vat-bot/internal/adapter/http/handler"
	memoryRepo "github.com/DmtrPpl/vat-bot/internal/adapter/repository/memory"
	redisRepo "github.com/DmtrPpl/vat-bot/internal/adapter/repository/redis"
	"github.com/DmtrPpl/vat-bot/internal/adapter/telegram"
	"github.com/DmtrPpl/vat-bot/internal/classifier"
	"github.com/DmtrPpl/vat-bot/internal/domain"
	"github.com/DmtrPpl/vat-bot/internal/infrastructure/config"
	"github.com/DmtrPpl/vat-bot/internal/infrastructure/idgen"
	"github.com/DmtrPpl/vat-bot/internal/infrastructure/logger"
	redisInfra "github.com/DmtrPpl/vat-bot/internal/infrastructure/redis"
	"github.com/DmtrPpl/vat-bot/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	defaults := domain.Settings{
		DefaultCurrency: cfg.DefaultCurrency,
		VATRatePercent:  decimal.NewFromFloat(cfg.VATRatePercent),
	}

	// Session store: Redis when configured, process memory otherwise.
	var sessions usecase.SessionRepository
	healthHandler := handler.NewHealthHandler(nil)
	if cfg.RedisURL != "" {
		redisClient, err := redisInfra.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		sessions = redisRepo.New(redisClient, cfg.SessionTTL)
		healthHandler = handler.NewHealthHandler(redisClient)
		log.Info().Msg("using redis session store")
	} else {
		sessions = memoryRepo.New()
		log.Info().Msg("using in-memory session store")
	}

	// Classifier: OpenAI when a key is configured, otherwise every line
	// falls through to the type-based defaults.
	var cls classifier.Classifier = classifier.Noop{}
	if cfg.OpenAIAPIKey != "" {
		cls = classifier.NewOpenAIClassifier(
			openai.NewClient(cfg.OpenAIAPIKey),
			cfg.OpenAIModel,
			cfg.ClassifierTimeout,
			log,
		)
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, classifier disabled")
	}

	if cfg.TelegramToken == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set, replies cannot be delivered")
	}

	idGen := idgen.NewULIDGenerator()
	ingestUC := usecase.NewIngestUseCase(sessions, cls, idGen, defaults, log)
	reportUC := usecase.NewReportUseCase(sessions, defaults)

	sender := telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramToken, cfg.TelegramTimeout, log)
	bot := telegram.NewBot(ingestUC, reportUC, sender, log)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WebhookHandler: handler.NewWebhookHandler(bot, cfg.WebhookSecret, log),
		LedgerHandler:  handler.NewLedgerHandler(ingestUC, reportUC),
		HealthHandler:  healthHandler,
		Logger:         log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
