package handler

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"gb_market/internal/transport/bot/view"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	text := renderStatus(h.scheduler.IsRunning(), h.scheduler.Len(), len(h.board.List()), h.sinks)

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) OnWidgets(ctx *th.Context, msg telego.Message) error {
	widgets := h.board.List()

	params := &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: msg.Chat.ID},
		Text:      renderWidgets(widgets),
		ParseMode: telego.ModeHTML,
	}

	if len(widgets) > 0 {
		params.ReplyMarkup = widgetKeyboard(widgets)
	}

	_, err := ctx.Bot().SendMessage(ctx, params)

	return err
}

func (h *Handler) OnPause(ctx *th.Context, msg telego.Message) error {
	return h.onAction(ctx, msg, actionPause)
}

func (h *Handler) OnResume(ctx *th.Context, msg telego.Message) error {
	return h.onAction(ctx, msg, actionResume)
}

func (h *Handler) OnUnmount(ctx *th.Context, msg telego.Message) error {
	return h.onAction(ctx, msg, actionUnmount)
}

func (h *Handler) onAction(ctx *th.Context, msg telego.Message, a action) error {
	id, ok := commandArg(msg.Text)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.MissingArgument, a))
	}

	return h.sendHTML(ctx, msg.Chat.ID, h.apply(ctx, a, id))
}

// apply runs a widget action and returns the reply text.
func (h *Handler) apply(ctx context.Context, a action, id string) string {
	var err error

	switch a {
	case actionPause:
		_, err = h.board.Pause(ctx, id)
	case actionResume:
		_, err = h.board.Resume(ctx, id)
	case actionUnmount:
		err = h.board.Unmount(ctx, id)
	}

	if err != nil {
		logger(ctx).Info("bot action failed", "action", a, "error", err)
		return fmt.Sprintf(view.ActionFailed, err.Error())
	}

	return fmt.Sprintf(view.ActionDone, id, a)
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}
