package handlers

import (
	"context"
)

// Message represents a normalized Telegram message or button click
type Message struct {
	ChatID    int64
	UserID    int64
	MessageID int
	// Text is the message text, or the command arguments for commands
	Text       string
	CallbackID string
	// CallbackValue is the value part of "action:value" callback data
	CallbackValue string
}

// Handler processes one kind of update: a command, a callback action or free text
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// HandlerFunc adapts a plain function to Handler
type HandlerFunc func(ctx context.Context, msg *Message) error

func (f HandlerFunc) Handle(ctx context.Context, msg *Message) error {
	return f(ctx, msg)
}
