package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/storefront-ai/internal/config"
	"github.com/futig/storefront-ai/internal/telegram/handlers"
	"github.com/futig/storefront-ai/internal/telegram/keyboard"
	"github.com/futig/storefront-ai/internal/telegram/middleware"
	"github.com/futig/storefront-ai/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// API is the subset of *tgbotapi.BotAPI the bot needs
type API interface {
	handlers.Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot routes Telegram updates to command, callback and free-text handlers
type Bot struct {
	api       API
	cfg       *config.TelegramConfig
	sender    *handlers.MessageSender
	commands  map[string]handlers.Handler
	callbacks map[string]handlers.Handler
	text      handlers.Handler
	unknown   handlers.Handler
	process   func(tgbotapi.Update)
	rateLimit *middleware.RateLimiterMiddleware
	logger    *zap.Logger
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

func New(api API, cfg *config.TelegramConfig, logger *zap.Logger) *Bot {
	b := &Bot{
		api:       api,
		cfg:       cfg,
		sender:    handlers.NewMessageSender(api, logger),
		commands:  make(map[string]handlers.Handler),
		callbacks: make(map[string]handlers.Handler),
		rateLimit: middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, logger, api),
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
	b.unknown = handlers.NewUnknownCommandHandler(b.sender)

	// Rate limiter is outermost
	b.process = middleware.Chain(b.handleUpdate,
		b.rateLimit,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewRecoveryMiddleware(logger, api),
	)

	return b
}

// Sender returns the message sender shared by the handlers
func (b *Bot) Sender() *handlers.MessageSender {
	return b.sender
}

// RegisterCommand registers a handler for /command; the handler receives the command arguments as text
func (b *Bot) RegisterCommand(command string, handler handlers.Handler) {
	b.commands[command] = handler
	b.logger.Debug("command handler registered", zap.String("command", command))
}

// RegisterCallback registers a handler for inline button callbacks with the given action
func (b *Bot) RegisterCallback(action string, handler handlers.Handler) {
	b.callbacks[action] = handler
	b.logger.Debug("callback handler registered", zap.String("action", action))
}

// SetTextHandler sets the handler for plain messages
func (b *Bot) SetTextHandler(handler handlers.Handler) {
	b.text = handler
}

// Start begins long polling and returns immediately
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx, updates)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops polling and waits for in-flight updates up to the shutdown timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
		b.rateLimit.Stop()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(b.cfg.ShutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", b.cfg.ShutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.process(u)
			}(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger.With(zap.Int("update_id", update.UpdateID)))

	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}
	if message.From != nil {
		msg.UserID = message.From.ID
	}

	handler := b.text
	if message.IsCommand() {
		command := message.Command()
		ctxzap.Info(ctx, "command received",
			zap.String("command", command),
			zap.Int64("user_id", msg.UserID),
		)

		msg.Text = message.CommandArguments()
		var ok bool
		if handler, ok = b.commands[command]; !ok {
			handler = b.unknown
		}
	}

	if handler == nil {
		ctxzap.Warn(ctx, "no handler for message")
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)
		b.sendError(msg.ChatID, render.ErrGeneric)
	}
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	data, err := keyboard.ParseCallback(query.Data)
	if err != nil {
		ctxzap.Warn(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.sender.AnswerCallback(query.ID, render.ErrCallbackData)
		return
	}

	handler, ok := b.callbacks[data.Action]
	if !ok || query.Message == nil {
		ctxzap.Warn(ctx, "no handler for callback", zap.String("action", data.Action))
		b.sender.AnswerCallback(query.ID, render.ErrCallbackData)
		return
	}

	ctxzap.Info(ctx, "callback query received",
		zap.String("action", data.Action),
		zap.String("value", data.Value),
		zap.Int64("user_id", query.From.ID),
	)

	// Answer right away, completion calls can outlive Telegram's callback deadline
	b.sender.AnswerCallback(query.ID, render.MsgWorking)

	msg := &handlers.Message{
		ChatID:        query.Message.Chat.ID,
		UserID:        query.From.ID,
		MessageID:     query.Message.MessageID,
		CallbackID:    query.ID,
		CallbackValue: data.Value,
	}
	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "callback handler error",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)
		b.sendError(msg.ChatID, render.ErrGeneric)
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	// MessageSender already logs send failures
	_ = b.sender.Send(chatID, text, nil)
}
