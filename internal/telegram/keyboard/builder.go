package keyboard

import (
	"fmt"

	"github.com/futig/storefront-ai/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects callback data longer than 64 bytes
const maxCallbackDataLen = 64

// button labels are cut to keep the keyboard readable on phones
const maxLabelLen = 40

// ReviewKeyboard offers a review summary button per presented product.
// Returns nil when there is nothing to offer.
func ReviewKeyboard(products []entity.CandidateProduct) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range products {
		if p.NumReviews == 0 {
			continue
		}
		data := EncodeCallback(ActionReview, p.ID)
		if len(data) > maxCallbackDataLen {
			continue
		}
		label := fmt.Sprintf("⭐ Reviews: %s", shorten(p.Name, maxLabelLen))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}

	if len(rows) == 0 {
		return nil
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
