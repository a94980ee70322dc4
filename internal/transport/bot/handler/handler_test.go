package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gb_market/internal/domain/entity"
)

type fakeBoard struct {
	widgets []entity.Widget
	calls   []string
	err     error
}

func (f *fakeBoard) List() []entity.Widget { return f.widgets }

func (f *fakeBoard) Pause(_ context.Context, id string) (entity.Widget, error) {
	f.calls = append(f.calls, "pause "+id)
	return entity.Widget{ID: id, Paused: true}, f.err
}

func (f *fakeBoard) Resume(_ context.Context, id string) (entity.Widget, error) {
	f.calls = append(f.calls, "resume "+id)
	return entity.Widget{ID: id}, f.err
}

func (f *fakeBoard) Unmount(_ context.Context, id string) error {
	f.calls = append(f.calls, "unmount "+id)
	return f.err
}

func TestParseCallback(t *testing.T) {
	cases := []struct {
		data   string
		action action
		id     string
		ok     bool
	}{
		{callbackData(actionPause, "abc"), actionPause, "abc", true},
		{callbackData(actionUnmount, "x1"), actionUnmount, "x1", true},
		{"widget:explode:abc", "", "", false},
		{"widget:pause:", "", "", false},
		{"catalog_page:2", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.data, func(t *testing.T) {
			rq := require.New(t)

			a, id, ok := parseCallback(tc.data)
			rq.Equal(tc.ok, ok)
			rq.Equal(tc.action, a)
			rq.Equal(tc.id, id)
		})
	}
}

func TestCommandArg(t *testing.T) {
	rq := require.New(t)

	id, ok := commandArg("/pause  d1abc ")
	rq.True(ok)
	rq.Equal("d1abc", id)

	_, ok = commandArg("/pause")
	rq.False(ok)
}

func TestRender(t *testing.T) {
	rq := require.New(t)

	rq.Contains(renderStatus(true, 3, 2, []string{"telegram", "redis"}), "telegram, redis")
	rq.Contains(renderStatus(false, 0, 0, nil), "none")

	rq.Contains(renderWidgets(nil), "No widgets")

	widgets := []entity.Widget{
		{ID: "a", Kind: entity.WidgetPriceDrops, MountedAt: time.Now()},
		{ID: "b", Kind: entity.WidgetFlashDeals, MountedAt: time.Now()},
		{ID: "c", Kind: entity.WidgetMarketPulse, Paused: true},
	}

	text := renderWidgets(widgets)
	rq.Contains(text, "<code>a</code> price_drops")
	rq.Contains(text, "⏸")

	kb := widgetKeyboard(widgets)
	rq.Len(kb.InlineKeyboard, 3)
	rq.Len(kb.InlineKeyboard[0], 2)
	rq.Equal(callbackData(actionPause, "a"), kb.InlineKeyboard[0][0].CallbackData)
	rq.Len(kb.InlineKeyboard[1], 1)
	rq.Equal(callbackData(actionResume, "c"), kb.InlineKeyboard[2][0].CallbackData)
}

func TestApply(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	board := &fakeBoard{}
	h := New(board, nil, nil)

	rq.Contains(h.apply(ctx, actionPause, "a"), "✅")
	rq.Contains(h.apply(ctx, actionUnmount, "a"), "unmount")

	board.err = errors.New("widget not found: z")
	rq.Contains(h.apply(ctx, actionResume, "z"), "widget not found")

	rq.Equal([]string{"pause a", "unmount a", "resume z"}, board.calls)
}
