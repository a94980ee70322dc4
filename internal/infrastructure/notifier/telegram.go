package notifier

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// MessageSender is the part of *telego.Bot the sink needs.
type MessageSender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

type TelegramSink struct {
	bot    MessageSender
	chatID int64
}

type BotOptions struct {
	// HTTPClient replaces the default fasthttp transport.
	HTTPClient *http.Client
	Logger     telego.Logger
}

func NewTelegramBot(token string, opts BotOptions) (*telego.Bot, error) {
	var botOpts []telego.BotOption

	if opts.HTTPClient != nil {
		botOpts = append(botOpts, telego.WithHTTPClient(opts.HTTPClient))
	}

	if opts.Logger != nil {
		botOpts = append(botOpts, telego.WithLogger(opts.Logger))
	}

	bot, err := telego.NewBot(token, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return bot, nil
}

func NewTelegramSink(bot MessageSender, chatID int64) *TelegramSink {
	return &TelegramSink{
		bot:    bot,
		chatID: chatID,
	}
}

func (s *TelegramSink) Name() string {
	return "telegram"
}

func (s *TelegramSink) Send(ctx context.Context, ev Event) error {
	msg := tu.Message(
		tu.ID(s.chatID),
		ev.Text(),
	).WithParseMode(telego.ModeHTML)

	if _, err := s.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain message to the notification chat.
func (s *TelegramSink) SendText(ctx context.Context, text string) error {
	if _, err := s.bot.SendMessage(ctx, tu.Message(tu.ID(s.chatID), text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
