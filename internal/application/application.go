package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/hibiken/asynq"
	"github.com/mymmrac/telego"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gb_market/internal/config"
	"gb_market/internal/domain/entity"
	"gb_market/internal/domain/service/board"
	"gb_market/internal/domain/value"
	"gb_market/internal/infrastructure/notifier"
	"gb_market/internal/server"
	"gb_market/internal/transport/bot"
	"gb_market/internal/transport/bot/handler"
	"gb_market/internal/worker"
	"gb_market/pkg/application/connectors"
	"gb_market/pkg/application/modules"
	"gb_market/pkg/contextx"
	"gb_market/pkg/httpx"
	"gb_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run wires every component and blocks until ctx is done or a module fails.
func Run(ctx context.Context, cfg config.Config) error { //nolint:funlen
	// 1. Catalog
	catalog, err := loadCatalog(cfg.Simulation)
	if err != nil {
		return err
	}

	// 2. Scheduler
	sched := worker.NewScheduler(clock.New()).WithResolution(cfg.Simulation.Resolution)

	// 3. Notifications
	var (
		sinks     []notifier.Sink
		telegram  *telego.Bot
		tgSink    *notifier.TelegramSink
		redisConn *connectors.Redis
	)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("zap.NewProduction: %w", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if cfg.Bot.Enabled() {
		masker := logx.NewSensitiveDataMasker()

		telegram, err = notifier.NewTelegramBot(cfg.Bot.Token, notifier.BotOptions{
			HTTPClient: &http.Client{
				Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport,
					httpx.WithSensitiveDataMasker(masker),
					httpx.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLength),
				),
			},
			Logger: zapLogger.Sugar().Named("telego"),
		})
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		if cfg.Bot.ChatID != 0 {
			tgSink = notifier.NewTelegramSink(telegram, cfg.Bot.ChatID)
		}
	}

	if cfg.Redis.Enabled() {
		redisConn = &connectors.Redis{
			Address:            cfg.Redis.Address,
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}
		defer redisConn.Close(ctx)

		if cfg.Notify.Channel != "" {
			sinks = append(sinks, notifier.NewRedisSink(redisConn.Client(ctx), cfg.Notify.Channel))
		}
	}

	queued := tgSink != nil && cfg.Notify.ViaQueue && redisConn != nil

	switch {
	case queued:
		queue := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DatabaseNumber,
		})
		defer queue.Close()

		sinks = append(sinks, notifier.NewQueueSink(queue, cfg.Notify.Queue))
	case tgSink != nil:
		sinks = append(sinks, tgSink)
	}

	dispatcher := notifier.NewDispatcher(notifier.DispatcherOptions{
		Rate:       cfg.Notify.Rate,
		Burst:      cfg.Notify.Burst,
		Buffer:     cfg.Notify.Buffer,
		MinUrgency: entity.Urgency(cfg.Notify.MinUrgency),
	}, sinks...)

	// 4. Widgets
	widgets := board.DefaultWidgets(catalog)
	widgets.Mock.Latency = cfg.Simulation.FetchLatency

	if cfg.Notify.Enabled {
		widgets.OnPriceDrop = dispatcher.PriceDropListener()
		widgets.OnFlashDeal = dispatcher.FlashDealListener()
	}

	widgetBoard := board.New(board.Config{
		IdleTTL: cfg.Simulation.WidgetIdleTTL,
		Seed:    cfg.Simulation.Seed,
	}, sched, widgets).WithLogger(logger(ctx))
	defer widgetBoard.Close(context.WithoutCancel(ctx))

	// 5. HTTP
	srv := server.NewServer(server.NewWidgetServer(widgetBoard, server.StreamOptions{
		Interval:       cfg.Simulation.StreamInterval,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}))

	httpServer := &http.Server{
		Addr: cfg.HTTP.ListenAddress,
		Handler: srv.Router(server.RouterOptions{
			Logger:            logger(ctx),
			LogFieldMaxLength: cfg.HTTP.LogFieldMaxLength,
		}),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	// 6. Modules
	g, ctx := errgroup.WithContext(ctx)

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("scheduler.Start: %w", err)
	}
	defer sched.Stop()

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeAddress,
		Ready:         sched.IsRunning,
	}.Run(ctx, g)
	modules.MetricServer{ListenAddress: cfg.HTTP.MetricsAddress}.Run(ctx, g)

	if cfg.Notify.Enabled {
		g.Go(func() error { return dispatcher.Run(ctx) })
	}

	if queued {
		modules.AsynqServer{
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisAddress:  cfg.Redis.Address,
			RedisDB:       cfg.Redis.DatabaseNumber,
			Logger:        zapLogger.Sugar().Named("asynq"),
		}.Run(ctx, g, modules.AsynqQueues{cfg.Notify.Queue: 1}, modules.AsynqHandler{
			Pattern: notifier.TaskSend,
			Handle:  notifier.TaskHandler(tgSink),
		})
	}

	if telegram != nil && cfg.Bot.AdminID != 0 {
		adminBot := bot.New(telegram, cfg.Bot.AdminID, handler.New(widgetBoard, sched, dispatcher.Sinks()))

		g.Go(func() error { return adminBot.Run(ctx) })
	}

	logger(ctx).Info("application started",
		slog.String("http", cfg.HTTP.ListenAddress),
		slog.Any("sinks", dispatcher.Sinks()),
		slog.Bool("notify", cfg.Notify.Enabled),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	return nil
}

func loadCatalog(cfg config.Simulation) (value.Catalog, error) {
	if cfg.CatalogFile == "" {
		return value.DefaultCatalog(), nil
	}

	catalog, err := value.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return value.Catalog{}, fmt.Errorf("value.LoadCatalog: %w", err)
	}

	return catalog, nil
}
