package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram rejects messages longer than 4096 characters
const maxMessageLen = 4096

// MessageSender provides centralized message sending functionality
type MessageSender struct {
	api    Sender
	logger *zap.Logger
}

func NewMessageSender(api Sender, logger *zap.Logger) *MessageSender {
	return &MessageSender{
		api:    api,
		logger: logger,
	}
}

// Send sends a message to the specified chat; markup may be nil
func (s *MessageSender) Send(chatID int64, text string, markup any) error {
	if runes := []rune(text); len(runes) > maxMessageLen {
		text = string(runes[:maxMessageLen-1]) + "…"
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	if _, err := s.api.Send(msg); err != nil {
		s.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return err
	}

	return nil
}

// AnswerCallback acknowledges a button click so the client stops the spinner
func (s *MessageSender) AnswerCallback(callbackID, text string) {
	if _, err := s.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		s.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
