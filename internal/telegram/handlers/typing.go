package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram clears the typing action after 5 seconds
const typingInterval = 4 * time.Second

// startTyping shows the typing indicator until the returned stop func is called or ctx ends
func startTyping(ctx context.Context, api Sender, chatID int64, logger *zap.Logger) (stop func()) {
	send := func() {
		if _, err := api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
			logger.Warn("failed to send typing action",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
		}
	}
	send()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				send()
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() { close(done) }
}
