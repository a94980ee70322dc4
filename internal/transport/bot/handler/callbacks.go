package handler

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
)

// OnWidgetCallback handles the inline buttons of /widgets and refreshes the list.
func (h *Handler) OnWidgetCallback(ctx *th.Context, query telego.CallbackQuery) error {
	a, id, ok := parseCallback(query.Data)
	if !ok {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
		return nil
	}

	result := h.apply(ctx, a, id)

	_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).WithText(result))

	if query.Message == nil {
		return nil
	}

	widgets := h.board.List()

	params := &telego.EditMessageTextParams{
		ChatID:    tu.ID(query.Message.GetChat().ID),
		MessageID: query.Message.GetMessageID(),
		Text:      renderWidgets(widgets),
		ParseMode: telego.ModeHTML,
	}

	if len(widgets) > 0 {
		params.ReplyMarkup = widgetKeyboard(widgets)
	}

	// Telegram rejects edits that change nothing.
	if _, err := ctx.Bot().EditMessageText(ctx, params); err != nil {
		logger(ctx).Debug("edit widget list", "error", err)
	}

	return nil
}
