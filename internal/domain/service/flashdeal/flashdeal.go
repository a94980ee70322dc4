package flashdeal

import (
	"context"
	"log/slog"
	"sync"
	"time"

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
	SeedCount      int
	Capacity       int
	GenerateEvery  time.Duration
	GenerateChance float64
	DecayEvery     time.Duration
	JoinChance     float64
	// JoinCutoff is the remaining time in seconds below which nobody joins.
	JoinCutoff int

	MinDurationSec, MaxDurationSec int
	MinPrice, MaxPrice             int64
	MinDiscount, MaxDiscount       int
	MinBuyers, MaxBuyers           int
}

func DefaultConfig() Config {
	return Config{
		SeedCount:      3,
		Capacity:       5,
		GenerateEvery:  8 * time.Second,
		GenerateChance: 0.3,
		DecayEvery:     time.Second,
		JoinChance:     0.2,
		JoinCutoff:     30,
		MinDurationSec: 120,
		MaxDurationSec: 900,
		MinPrice:       200,
		MaxPrice:       2000,
		MinDiscount:    20,
		MaxDiscount:    60,
		MinBuyers:      20,
		MaxBuyers:      100,
	}
}

// Widget keeps a rolling list of flash deals and counts them down. The
// current deal is the most recently promoted one still alive.
type Widget struct {
	cfg      Config
	gen      Generator
	src      randx.Source
	listener func(context.Context, entity.FlashDeal)

	mu      sync.Mutex
	deals   *ringx.Recent[entity.FlashDeal]
	current string
	seeded  bool
	stopped bool
	subs    []*worker.Subscription
}

func New(cfg Config, catalog value.Catalog, src randx.Source) *Widget {
	src = randx.Locked(src)

	return &Widget{
		cfg:   cfg,
		gen:   NewGenerator(cfg, catalog, src),
		src:   src,
		deals: ringx.NewRecent[entity.FlashDeal](cfg.Capacity),
	}
}

// WithListener registers a callback for every newly generated deal.
func (w *Widget) WithListener(fn func(context.Context, entity.FlashDeal)) *Widget {
	w.listener = fn
	return w
}

// Seed replaces the initial deals produced on mount. The first one becomes current.
func (w *Widget) Seed(deals ...entity.FlashDeal) *Widget {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.deals.Reset(deals)
	w.current = ""

	if len(deals) > 0 {
		w.current = deals[0].ID
	}

	w.seeded = true

	return w
}

func (w *Widget) Kind() entity.WidgetKind {
	return entity.WidgetFlashDeals
}

func (w *Widget) Mount(ctx context.Context, ticks worker.TickSource) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.subs != nil || w.stopped {
		return
	}

	if !w.seeded {
		seeds := make([]entity.FlashDeal, 0, w.cfg.SeedCount)
		for range w.cfg.SeedCount {
			seeds = append(seeds, w.gen.NewDeal())
		}

		w.deals.Reset(seeds)

		if len(seeds) > 0 {
			w.current = seeds[0].ID
		}

		w.seeded = true

		metrics.RecordsGenerated.WithLabelValues(w.Kind().String()).Add(float64(len(seeds)))
	}

	w.subs = []*worker.Subscription{
		ticks.Every("flash-deals.generate", w.cfg.GenerateEvery, w.generate),
		ticks.Every("flash-deals.decay", w.cfg.DecayEvery, w.decay),
	}

	logger(ctx).Debug("flash deals mounted", slog.Int("deals", w.deals.Len()))
}

func (w *Widget) Unmount() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, sub := range w.subs {
		sub.Cancel()
	}

	w.subs = nil
	w.stopped = true
}

func (w *Widget) Snapshot() entity.FlashDealBoard {
	w.mu.Lock()
	defer w.mu.Unlock()

	board := entity.FlashDealBoard{
		Deals: w.deals.Items(),
	}

	for i := range board.Deals {
		if board.Deals[i].ID == w.current {
			current := board.Deals[i]
			board.Current = &current

			break
		}
	}

	return board
}

func (w *Widget) View() any {
	return w.Snapshot()
}

func (w *Widget) generate(ctx context.Context, _ time.Time) {
	if !randx.Chance(w.src, w.cfg.GenerateChance) {
		return
	}

	w.mu.Lock()

	if w.stopped {
		w.mu.Unlock()
		return
	}

	deal := w.gen.NewDeal()

	w.deals.Push(deal)
	w.current = deal.ID

	w.mu.Unlock()

	metrics.RecordsGenerated.WithLabelValues(w.Kind().String()).Inc()

	logger(ctx).Debug("flash deal generated",
		slog.String(logx.FieldRecordID, deal.ID),
		slog.Int("discount", deal.DiscountPercent),
	)

	if w.listener != nil {
		w.listener(ctx, deal)
	}
}

func (w *Widget) decay(_ context.Context, _ time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}

	w.deals.Each(func(deal *entity.FlashDeal) {
		*deal = Decay(*deal, w.cfg.JoinChance, w.cfg.JoinCutoff, w.src)
	})

	expired := w.deals.Retain(func(deal entity.FlashDeal) bool {
		return !deal.Expired()
	})

	if expired > 0 {
		metrics.DealsExpired.Add(float64(expired))
	}
}
