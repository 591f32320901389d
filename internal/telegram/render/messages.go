package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/futig/storefront-ai/internal/entity"
)

const (
	MsgWelcome = `👋 Hi! I'm the store assistant.

Tell me what you are looking for, for example "best smartphones under 50000" or "a Samsung TV with good reviews", and I'll pick matching products from the catalog.`

	MsgHelp = `🤖 Commands:

/start - Show the welcome message
/help - Show this help
/review <product id> - Summarize the reviews of a product

Any other message is treated as a shopping request.`

	MsgReviewUsage   = "Send /review followed by a product id, e.g. /review 6f1c5a0e-0d4b-4c8e-9a51-1f0a2b3c4d5e"
	MsgNoReviews     = "📭 This product has no reviews yet."
	MsgWorking       = "⏳ Looking into it..."
	MsgRateLimited   = "⚠️ Too many requests. Please wait a little."
	MsgRateLimitHard = "🛑 You are sending requests too often. Please wait a minute."
)

const (
	ErrGeneric            = "❌ Something went wrong. Please try again."
	ErrUnknownCommand     = "❌ Unknown command. Use /help"
	ErrSuggestion         = "❌ I couldn't process your request. Please try rephrasing your question or try again later."
	ErrReview             = "❌ Review analysis failed. Please try again later."
	ErrTimeout            = "⏱ The assistant took too long to answer. Please try again."
	ErrServiceUnavailable = "🔌 The assistant is temporarily unavailable. Please try again later."
	ErrCallbackData       = "❌ Invalid button"
)

// Suggestion renders the assistant reply followed by the presented products
func Suggestion(s *entity.ProductSuggestion) string {
	var b strings.Builder
	b.WriteString(s.Response)

	if len(s.Products) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\n\n🛒 Top %d of %d matches:\n", len(s.Products), s.TotalMatches)
	for i, p := range s.Products {
		fmt.Fprintf(&b, "%d. %s - $%.2f, ⭐ %.1f (%d reviews)\n", i+1, p.Name, p.Price, p.Rating, p.NumReviews)
		if p.MatchReason != "" {
			fmt.Fprintf(&b, "   %s\n", p.MatchReason)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// ReviewAnalysis renders a review summary as a chat message
func ReviewAnalysis(a *entity.ReviewAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s (%d reviews)\n", a.ProductName, a.ReviewCount)

	if a.Summary != nil {
		writeList(&b, "\n👍 Pros:\n", a.Summary.Pros)
		writeList(&b, "\n👎 Cons:\n", a.Summary.Cons)
		fmt.Fprintf(&b, "\nSentiment: %.1f/5", a.Summary.SentimentScore)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title)
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}

// ClassifyError maps transport failures to a user message, falling back to fallback
func ClassifyError(err error, fallback string) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrServiceUnavailable
	}

	if err != nil && strings.Contains(err.Error(), "connection refused") {
		return ErrServiceUnavailable
	}

	return fallback
}
