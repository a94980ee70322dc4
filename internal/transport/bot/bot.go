package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"gb_market/internal/transport/bot/handler"
	"gb_market/pkg/contextx"
	"gb_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const longPollingTimeout = 60

// Bot is the admin control bot. Only AdminID may issue commands.
type Bot struct {
	bot     *telego.Bot
	adminID int64
	handler *handler.Handler
}

func New(bot *telego.Bot, adminID int64, h *handler.Handler) *Bot {
	return &Bot{
		bot:     bot,
		adminID: adminID,
		handler: h,
	}
}

// Run polls updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: longPollingTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to get updates: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("failed to create bot handler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminID)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("bot handler stopped", logx.Error(err))
		}
	}()

	logger(ctx).Info("admin bot started", slog.Int64("admin-id", b.adminID))

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("botHandler.Stop", logx.Error(err))
	}

	logger(ctx).Info("admin bot stopped")

	return nil
}
