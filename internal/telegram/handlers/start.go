package handlers

import (
	"context"

	"github.com/futig/storefront-ai/internal/telegram/render"
)

// NewStaticHandler replies with a fixed text, used for /start and /help
func NewStaticHandler(sender *MessageSender, text string) Handler {
	return HandlerFunc(func(_ context.Context, msg *Message) error {
		return sender.Send(msg.ChatID, text, nil)
	})
}

// NewUnknownCommandHandler answers commands nobody registered
func NewUnknownCommandHandler(sender *MessageSender) Handler {
	return NewStaticHandler(sender, render.ErrUnknownCommand)
}
