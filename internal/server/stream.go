package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"gb_market/internal/domain"
	"gb_market/pkg/errcodes"
	"gb_market/pkg/logx"
)

const (
	streamWriteTimeout = 5 * time.Second
	streamReadLimit    = 512
)

type StreamOptions struct {
	Interval time.Duration
	Clock    clock.Clock
	// AllowedOrigins empty means any origin.
	AllowedOrigins []string
}

func (o StreamOptions) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(o.AllowedOrigins) == 0 {
				return true
			}

			return slices.Contains(o.AllowedOrigins, r.Header.Get("Origin"))
		},
	}
}

// getV1WidgetStream pushes a snapshot right away and then every interval until
// the client goes away or the widget is unmounted.
func (s WidgetServer) getV1WidgetStream(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	id := r.PathValue("id")

	if _, _, err := s.board.Snapshot(id); err != nil {
		return fmt.Errorf("board.Snapshot: %w", err)
	}

	conn, err := s.stream.upgrader().Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		logger(ctx).Warn("websocket upgrade failed", logx.Error(err))
		return nil
	}
	defer conn.Close()

	log := logger(ctx).With(slog.String(logx.FieldWidgetID, id))
	log.Info("stream opened")

	closed := make(chan struct{})

	go func() {
		defer close(closed)

		conn.SetReadLimit(streamReadLimit)

		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	clk := s.stream.Clock
	if clk == nil {
		clk = clock.New()
	}

	ticker := clk.Ticker(s.stream.Interval)
	defer ticker.Stop()

	for {
		widget, data, err := s.board.Snapshot(id)
		if err != nil {
			reason := "widget unavailable"
			if domain.HasCode(err, errcodes.WidgetNotFound) {
				reason = "widget unmounted"
			}

			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
				time.Now().Add(streamWriteTimeout))
			log.Info("stream closed", slog.String("reason", reason))

			return nil
		}

		payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(newRESTSnapshot(widget, data))
		if err != nil {
			return fmt.Errorf("jsoniter.Marshal: %w", err)
		}

		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))

		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			if !errors.Is(err, websocket.ErrCloseSent) {
				log.Info("stream write failed", logx.Error(err))
			}

			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			log.Info("stream closed by client")
			return nil
		case <-ticker.C:
		}
	}
}
