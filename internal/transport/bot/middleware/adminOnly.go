package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AdminOnly drops updates from anyone but adminID.
func AdminOnly(adminID int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		if allowed(update, adminID) {
			return ctx.Next(update)
		}

		return nil
	}
}

func allowed(update telego.Update, adminID int64) bool {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID == adminID
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID == adminID
	default:
		return false
	}
}
