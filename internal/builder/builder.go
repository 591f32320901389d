package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/storefront-ai/internal/api"
	assistantapi "github.com/futig/storefront-ai/internal/api/assistant"
	"github.com/futig/storefront-ai/internal/config"
	"github.com/futig/storefront-ai/internal/integration/completion"
	"github.com/futig/storefront-ai/internal/pkg/formatter"
	"github.com/futig/storefront-ai/internal/pkg/validator"
	"github.com/futig/storefront-ai/internal/repository"
	"github.com/futig/storefront-ai/internal/telegram"
	"github.com/futig/storefront-ai/internal/usecase/assistant"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	assistantUC, db, err := buildAssistant(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	inputValidator := validator.NewValidator(cfg.InputCfg)

	// Setup API handlers
	assistantHandler := assistantapi.NewHandler(assistantUC, inputValidator, formatter.NewFactory())

	// Setup router
	router := api.SetupRouter(assistantHandler, cfg.RequestTimeout, logger)
	logger.Info("HTTP router configured")

	// WriteTimeout covers the whole chat pipeline
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot wires the same assistant behind the Telegram chat channel
func BuildTelegramBot() (*TelegramApp, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.TelegramCfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	assistantUC, db, err := buildAssistant(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, assistantUC, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &TelegramApp{
		bot:    bot,
		db:     db,
		logger: logger,
	}, nil
}

// buildAssistant opens the catalog database and assembles the assistant use case
func buildAssistant(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*assistant.AssistantUsecase, *pgxpool.Pool, error) {
	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	catalogRepo := repository.NewCatalogPostgres(db)
	categoryCache := repository.NewCategoryCache(catalogRepo, cfg.CatalogCfg.CategoryCacheTTL)
	logger.Info("Repositories initialized")

	completionConnector := newCompletionConnector(cfg, logger)

	// Initialize use cases
	assistantUC := assistant.NewUsecase(
		completionConnector,
		catalogRepo,
		categoryCache,
		cfg.CatalogCfg.ResultLimit,
		logger,
	)
	logger.Info("Use cases initialized")

	return assistantUC, db, nil
}

func newCompletionConnector(cfg *config.Config, logger *zap.Logger) assistant.CompletionConnector {
	if cfg.EnableMocks {
		logger.Info("Using mock completion connector")
		return completion.NewMockConnector(logger)
	}

	logger.Info("Using completion backend",
		zap.String("provider", cfg.CompletionCfg.Provider),
		zap.String("url", cfg.CompletionCfg.Url),
		zap.String("model", cfg.CompletionCfg.Model),
	)

	if cfg.CompletionCfg.Provider == config.ProviderOpenAI {
		return completion.NewOpenAIConnector(cfg.CompletionCfg, logger)
	}
	return completion.NewConnector(cfg.CompletionCfg, logger)
}
