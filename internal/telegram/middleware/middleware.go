package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Middleware wraps update processing
type Middleware interface {
	Handle(update tgbotapi.Update, next func(tgbotapi.Update))
}

// Chain applies middlewares in order, the first one being outermost
func Chain(final func(tgbotapi.Update), mws ...Middleware) func(tgbotapi.Update) {
	h := final
	for i := len(mws) - 1; i >= 0; i-- {
		mw, next := mws[i], h
		h = func(u tgbotapi.Update) { mw.Handle(u, next) }
	}
	return h
}

// Sender is the subset of *tgbotapi.BotAPI the middlewares use
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

func updateIDs(update tgbotapi.Update) (userID, chatID int64) {
	switch {
	case update.Message != nil:
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
		if update.CallbackQuery.Message != nil {
			chatID = update.CallbackQuery.Message.Chat.ID
		}
	}
	return userID, chatID
}
