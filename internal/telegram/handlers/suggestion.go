package handlers

import (
	"context"
	"strings"

	"github.com/futig/storefront-ai/internal/telegram/keyboard"
	"github.com/futig/storefront-ai/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SuggestionHandler answers free-text shopping requests
type SuggestionHandler struct {
	api       Sender
	sender    *MessageSender
	assistant AssistantUsecase
	logger    *zap.Logger
}

func NewSuggestionHandler(api Sender, sender *MessageSender, assistant AssistantUsecase, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		api:       api,
		sender:    sender,
		assistant: assistant,
		logger:    logger,
	}
}

func (h *SuggestionHandler) Handle(ctx context.Context, msg *Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return h.sender.Send(msg.ChatID, render.MsgHelp, nil)
	}

	stop := startTyping(ctx, h.api, msg.ChatID, h.logger)
	suggestion, err := h.assistant.SuggestProducts(ctx, text)
	stop()

	if err != nil {
		ctxzap.Error(ctx, "product suggestion failed", zap.Error(err))
		return h.sender.Send(msg.ChatID, render.ClassifyError(err, render.ErrSuggestion), nil)
	}

	ctxzap.Info(ctx, "products suggested",
		zap.Int("total_matches", suggestion.TotalMatches),
		zap.Int("presented", len(suggestion.Products)),
	)

	var markup any
	if kb := keyboard.ReviewKeyboard(suggestion.Products); kb != nil {
		markup = kb
	}
	return h.sender.Send(msg.ChatID, render.Suggestion(suggestion), markup)
}
