package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/futig/storefront-ai/internal/pkg/logger"
	"github.com/futig/storefront-ai/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ReviewHandler summarizes product reviews, from /review <id> or a review button
type ReviewHandler struct {
	api       Sender
	sender    *MessageSender
	assistant AssistantUsecase
	logger    *zap.Logger
}

func NewReviewHandler(api Sender, sender *MessageSender, assistant AssistantUsecase, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		api:       api,
		sender:    sender,
		assistant: assistant,
		logger:    logger,
	}
}

func (h *ReviewHandler) Handle(ctx context.Context, msg *Message) error {
	productID := msg.CallbackValue
	if productID == "" {
		productID = strings.TrimSpace(msg.Text)
	}
	if productID == "" {
		return h.sender.Send(msg.ChatID, render.MsgReviewUsage, nil)
	}

	ctx = logger.AddFields(ctx, zap.String("product_id", productID))

	stop := startTyping(ctx, h.api, msg.ChatID, h.logger)
	analysis, err := h.assistant.SummarizeReviews(ctx, productID)
	stop()

	if err != nil {
		if errors.Is(err, entity.ErrNoReviews) {
			return h.sender.Send(msg.ChatID, render.MsgNoReviews, nil)
		}
		ctxzap.Error(ctx, "review analysis failed", zap.Error(err))
		return h.sender.Send(msg.ChatID, render.ClassifyError(err, render.ErrReview), nil)
	}

	return h.sender.Send(msg.ChatID, render.ReviewAnalysis(analysis), nil)
}
