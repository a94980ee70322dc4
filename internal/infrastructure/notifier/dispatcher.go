package notifier

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"gb_market/internal/domain/entity"
	"gb_market/pkg/logx"
	"gb_market/pkg/metrics"
)

type Sink interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

type DispatcherOptions struct {
	// Rate is the sustained number of events per second, Burst the bucket size.
	Rate       float64
	Burst      int
	Buffer     int
	MinUrgency entity.Urgency
}

// Dispatcher decouples widget listeners from slow sinks. Publish never blocks;
// events that do not fit the buffer are dropped.
type Dispatcher struct {
	sinks      []Sink
	limiter    *rate.Limiter
	events     chan Event
	minUrgency entity.Urgency
	now        func() time.Time
}

func NewDispatcher(opts DispatcherOptions, sinks ...Sink) *Dispatcher {
	limit := rate.Limit(opts.Rate)
	if opts.Rate <= 0 {
		limit = rate.Inf
	}

	return &Dispatcher{
		sinks:      sinks,
		limiter:    rate.NewLimiter(limit, max(opts.Burst, 1)),
		events:     make(chan Event, max(opts.Buffer, 1)),
		minUrgency: opts.MinUrgency,
		now:        time.Now,
	}
}

func (d *Dispatcher) Sinks() []string {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.Name())
	}

	return names
}

// Publish queues ev and reports whether it was accepted.
func (d *Dispatcher) Publish(ctx context.Context, ev Event) bool {
	if d.minUrgency != "" && !AtLeast(ev.Urgency, d.minUrgency) {
		return false
	}

	select {
	case d.events <- ev:
		return true
	default:
		metrics.Notifications.WithLabelValues("dispatcher", "dropped").Inc()
		logger(ctx).Warn("notification dropped, buffer full", slog.String(logx.FieldRecordID, ev.ID))

		return false
	}
}

func (d *Dispatcher) PriceDropListener() func(context.Context, entity.PriceUpdate) {
	return func(ctx context.Context, u entity.PriceUpdate) {
		d.Publish(ctx, FromPriceUpdate(u))
	}
}

func (d *Dispatcher) FlashDealListener() func(context.Context, entity.FlashDeal) {
	return func(ctx context.Context, deal entity.FlashDeal) {
		d.Publish(ctx, FromFlashDeal(deal, d.now()))
	}
}

// Run delivers queued events until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) error {
	logger(ctx).Info("notification dispatcher started", slog.Any("sinks", d.Sinks()))

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("notification dispatcher stopped")
			return nil
		case ev := <-d.events:
			// Wait only fails once ctx is done.
			if err := d.limiter.Wait(ctx); err != nil {
				logger(ctx).Info("notification dispatcher stopped")
				return nil
			}

			d.deliver(ctx, ev)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, ev Event) {
	for _, sink := range d.sinks {
		log := logger(ctx).With(
			slog.String(logx.FieldSink, sink.Name()),
			slog.String(logx.FieldEventKind, string(ev.Kind)),
			slog.String(logx.FieldRecordID, ev.ID),
		)

		if err := sink.Send(ctx, ev); err != nil {
			metrics.Notifications.WithLabelValues(sink.Name(), "error").Inc()
			log.Error("notification failed", logx.Error(err))

			continue
		}

		metrics.Notifications.WithLabelValues(sink.Name(), "sent").Inc()
		log.Debug("notification sent")
	}
}
