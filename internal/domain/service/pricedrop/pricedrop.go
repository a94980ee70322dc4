package pricedrop

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"

	"gb_market/internal/domain/entity"
	"gb_market/internal/domain/value"
	"gb_market/internal/worker"
	"gb_market/pkg/contextx"
	"gb_market/pkg/logx"
	"gb_market/pkg/metrics"
	"gb_market/pkg/randx"
	"gb_market/pkg/ringx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Config struct {
	Capacity                 int
	MinInterval, MaxInterval time.Duration
	// Old prices are drawn from [MinPrice, MaxPrice).
	MinPrice, MaxPrice int64
	MinDrop, MaxDrop   int
	MaxBuyerCount      int
}

func DefaultConfig() Config {
	return Config{
		Capacity:      10,
		MinInterval:   3 * time.Second,
		MaxInterval:   7 * time.Second,
		MinPrice:      500,
		MaxPrice:      2500,
		MinDrop:       5,
		MaxDrop:       25,
		MaxBuyerCount: 200,
	}
}

// NewUpdate builds one synthetic price drop.
func NewUpdate(cfg Config, catalog value.Catalog, src randx.Source, now time.Time) entity.PriceUpdate {
	seller := randx.Pick(src, catalog.Sellers)
	oldPrice := cfg.MinPrice + int64(src.IntN(int(cfg.MaxPrice-cfg.MinPrice)))
	drop := randx.Between(src, cfg.MinDrop, cfg.MaxDrop)

	return entity.PriceUpdate{
		ID:            xid.New().String(),
		ProductName:   randx.Pick(src, catalog.Products),
		SellerID:      seller.ID,
		SellerName:    seller.Name,
		OldPrice:      oldPrice,
		NewPrice:      entity.DiscountedPrice(oldPrice, drop),
		DropPercent:   drop,
		ChangePercent: -float64(drop),
		BuyerCount:    1 + src.IntN(cfg.MaxBuyerCount),
		Urgency:       entity.UrgencyFor(drop),
		CreatedAt:     now,
	}
}

// Widget is the price drop tracker: a newest-first feed filled on a random
// interval. Pausing stops generation and keeps the feed.
type Widget struct {
	cfg      Config
	catalog  value.Catalog
	src      randx.Source
	listener func(context.Context, entity.PriceUpdate)

	mu      sync.Mutex
	updates *ringx.Recent[entity.PriceUpdate]
	ticks   worker.TickSource
	sub     *worker.Subscription
	paused  bool
	stopped bool
}

func New(cfg Config, catalog value.Catalog, src randx.Source) *Widget {
	return &Widget{
		cfg:     cfg,
		catalog: catalog,
		src:     randx.Locked(src),
		updates: ringx.NewRecent[entity.PriceUpdate](cfg.Capacity),
	}
}

// WithListener registers a push callback for every new update.
func (w *Widget) WithListener(fn func(context.Context, entity.PriceUpdate)) *Widget {
	w.listener = fn
	return w
}

func (w *Widget) Kind() entity.WidgetKind {
	return entity.WidgetPriceDrops
}

func (w *Widget) Mount(ctx context.Context, ticks worker.TickSource) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ticks != nil || w.stopped {
		return
	}

	w.ticks = ticks
	w.subscribe()

	logger(ctx).Debug("price drops mounted")
}

// subscribe must be called with w.mu held.
func (w *Widget) subscribe() {
	w.sub = w.ticks.Jittered("price-drops.generate", w.nextInterval, w.generate)
}

func (w *Widget) nextInterval() time.Duration {
	return randx.Duration(w.src, w.cfg.MinInterval, w.cfg.MaxInterval)
}

func (w *Widget) Unmount() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sub.Cancel()
	w.sub = nil
	w.stopped = true
}

func (w *Widget) Pause(context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped || w.paused {
		return
	}

	w.sub.Cancel()
	w.sub = nil
	w.paused = true
}

func (w *Widget) Resume(context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped || !w.paused {
		return
	}

	w.paused = false

	if w.ticks != nil {
		w.subscribe()
	}
}

func (w *Widget) Paused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.paused
}

func (w *Widget) Snapshot() entity.PriceDropFeed {
	w.mu.Lock()
	defer w.mu.Unlock()

	return entity.PriceDropFeed{
		Updates: w.updates.Items(),
		Paused:  w.paused,
	}
}

func (w *Widget) View() any {
	return w.Snapshot()
}

func (w *Widget) generate(ctx context.Context, now time.Time) {
	w.mu.Lock()

	if w.stopped || w.paused {
		w.mu.Unlock()
		return
	}

	update := NewUpdate(w.cfg, w.catalog, w.src, now)
	w.updates.Push(update)

	w.mu.Unlock()

	metrics.RecordsGenerated.WithLabelValues(w.Kind().String()).Inc()

	logger(ctx).Debug("price drop generated",
		slog.String(logx.FieldRecordID, update.ID),
		slog.Int("drop", update.DropPercent),
	)

	if w.listener != nil {
		w.listener(ctx, update)
	}
}
