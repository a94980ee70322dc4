package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"gb_market/internal/domain/entity"
	"gb_market/internal/transport/bot/view"
)

const callbackPrefix = "widget:"

func renderStatus(running bool, subscriptions, widgets int, sinks []string) string {
	state := "🔴 stopped"
	if running {
		state = "🟢 running"
	}

	sinkList := "none"
	if len(sinks) > 0 {
		sinkList = strings.Join(sinks, ", ")
	}

	return fmt.Sprintf(view.StatusTemplate, state, subscriptions, widgets, sinkList)
}

func renderWidgets(widgets []entity.Widget) string {
	if len(widgets) == 0 {
		return view.WidgetsEmpty
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(view.WidgetsHeader, len(widgets)))

	for i, w := range widgets {
		state := "▶️"
		if w.Paused {
			state = "⏸"
		}

		sb.WriteString(fmt.Sprintf(view.WidgetTemplate, i+1, w.ID, w.Kind, state))
	}

	return sb.String()
}

// widgetKeyboard has one row of actions per widget.
func widgetKeyboard(widgets []entity.Widget) *telego.InlineKeyboardMarkup {
	rows := make([][]telego.InlineKeyboardButton, 0, len(widgets))

	for _, w := range widgets {
		var buttons []telego.InlineKeyboardButton

		switch {
		case w.Kind == entity.WidgetFlashDeals || w.Kind == entity.WidgetGroupNegotiation:
		case w.Paused:
			buttons = append(buttons, tu.InlineKeyboardButton("▶️ "+w.Kind.String()).
				WithCallbackData(callbackData(actionResume, w.ID)))
		default:
			buttons = append(buttons, tu.InlineKeyboardButton("⏸ "+w.Kind.String()).
				WithCallbackData(callbackData(actionPause, w.ID)))
		}

		buttons = append(buttons, tu.InlineKeyboardButton("✖️ unmount").
			WithCallbackData(callbackData(actionUnmount, w.ID)))

		rows = append(rows, tu.InlineKeyboardRow(buttons...))
	}

	return tu.InlineKeyboard(rows...)
}

type action string

const (
	actionPause   action = "pause"
	actionResume  action = "resume"
	actionUnmount action = "unmount"
)

func callbackData(a action, id string) string {
	return callbackPrefix + string(a) + ":" + id
}

func parseCallback(data string) (action, string, bool) {
	rest, ok := strings.CutPrefix(data, callbackPrefix)
	if !ok {
		return "", "", false
	}

	a, id, ok := strings.Cut(rest, ":")
	if !ok || id == "" {
		return "", "", false
	}

	switch action(a) {
	case actionPause, actionResume, actionUnmount:
		return action(a), id, true
	}

	return "", "", false
}

// commandArg returns the first argument after the command.
func commandArg(text string) (string, bool) {
	parts := strings.Fields(text)
	if len(parts) < 2 { //nolint:mnd
		return "", false
	}

	return parts[1], true
}
