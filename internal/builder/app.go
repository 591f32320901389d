package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futig/storefront-ai/internal/telegram"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// App is the HTTP server process
type App struct {
	server *http.Server
	db     *pgxpool.Pool
	logger *zap.Logger
}

// Run serves HTTP until SIGINT/SIGTERM or a server error
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	if err := waitForShutdown(a.logger, errChan); err != nil {
		a.logger.Error("Server error", zap.Error(err))
		a.closeDB()
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		return err
	}

	a.closeDB()
	a.logger.Info("Application stopped gracefully")
	return nil
}

func (a *App) closeDB() {
	if a.db != nil {
		a.logger.Info("Closing database connections")
		a.db.Close()
	}
}

// TelegramApp is the Telegram bot process
type TelegramApp struct {
	bot    telegram.Bot
	db     *pgxpool.Pool
	logger *zap.Logger
}

// Run polls Telegram until SIGINT/SIGTERM
func (a *TelegramApp) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.logger.Info("Starting telegram bot")
	if err := a.bot.Start(ctx); err != nil {
		a.db.Close()
		return err
	}

	_ = waitForShutdown(a.logger, nil)
	cancel()

	err := a.bot.Stop()
	if err != nil {
		a.logger.Error("Error stopping bot", zap.Error(err))
	}

	a.db.Close()
	a.logger.Info("Telegram bot stopped gracefully")
	return err
}

// waitForShutdown blocks until a termination signal or an error on errChan; errChan may be nil
func waitForShutdown(logger *zap.Logger, errChan <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		return nil
	}
}
