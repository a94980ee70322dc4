package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"gb_market/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnWidgets, th.CommandEqual("widgets"))
	adminGroup.HandleMessage(h.OnPause, th.CommandEqual("pause"))
	adminGroup.HandleMessage(h.OnResume, th.CommandEqual("resume"))
	adminGroup.HandleMessage(h.OnUnmount, th.CommandEqual("unmount"))

	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(adminID))

	cbGroup.HandleCallbackQuery(h.OnWidgetCallback, th.CallbackDataPrefix(callbackPrefix))
}
