package pulse

import (
	"context"
	"sync"
	"time"

	"github.com/rs/xid"

	"gb_market/internal/domain/entity"
	"gb_market/internal/domain/value"
	"gb_market/internal/worker"
	"gb_market/pkg/contextx"
	"gb_market/pkg/metrics"
	"gb_market/pkg/randx"
	"gb_market/pkg/ringx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const timestampLayout = "15:04:05"

type Config struct {
	WindowSize       int
	ActivityCapacity int
	Every            time.Duration
	ActivityChance   float64

	MinBuyers, MaxBuyers int
	MinPrice, MaxPrice   int
	MinOffers, MaxOffers int
}

func DefaultConfig() Config {
	return Config{
		WindowSize:       10,
		ActivityCapacity: 5,
		Every:            2 * time.Second,
		ActivityChance:   0.3,
		MinBuyers:        100,
		MaxBuyers:        600,
		MinPrice:         800,
		MaxPrice:         1500,
		MinOffers:        5,
		MaxOffers:        50,
	}
}

func NewPoint(cfg Config, src randx.Source, at time.Time) entity.MarketPulsePoint {
	return entity.MarketPulsePoint{
		Timestamp:        at.Format(timestampLayout),
		TotalBuyers:      randx.Between(src, cfg.MinBuyers, cfg.MaxBuyers),
		AveragePrice:     int64(randx.Between(src, cfg.MinPrice, cfg.MaxPrice)),
		CompetitionLevel: randx.Between(src, 0, 100),
		OfferCount:       randx.Between(src, cfg.MinOffers, cfg.MaxOffers),
	}
}

func NewActivity(catalog value.Catalog, src randx.Source, at time.Time) entity.MarketActivity {
	tpl := randx.Pick(src, catalog.Activities)

	return entity.MarketActivity{
		ID:        xid.New().String(),
		Type:      tpl.Type,
		Message:   tpl.Message,
		Category:  randx.Pick(src, catalog.Categories),
		Impact:    tpl.Impact,
		Timestamp: at,
	}
}

// TrendOf compares the two newest points; zero with fewer than two.
func TrendOf(points []entity.MarketPulsePoint) entity.Trend {
	if len(points) < 2 { //nolint:mnd
		return entity.Trend{}
	}

	newest, prev := points[len(points)-1], points[len(points)-2]

	return entity.Trend{
		BuyerDelta: newest.TotalBuyers - prev.TotalBuyers,
		PriceDelta: newest.AveragePrice - prev.AveragePrice,
	}
}

// Widget keeps a fixed sliding window of synthetic market points and a short
// activity feed.
type Widget struct {
	cfg     Config
	catalog value.Catalog
	src     randx.Source

	mu         sync.Mutex
	points     *ringx.Window[entity.MarketPulsePoint]
	activities *ringx.Recent[entity.MarketActivity]
	ticks      worker.TickSource
	sub        *worker.Subscription
	paused     bool
	stopped    bool
}

func New(cfg Config, catalog value.Catalog, src randx.Source) *Widget {
	return &Widget{
		cfg:        cfg,
		catalog:    catalog,
		src:        randx.Locked(src),
		points:     ringx.NewWindow[entity.MarketPulsePoint](cfg.WindowSize),
		activities: ringx.NewRecent[entity.MarketActivity](cfg.ActivityCapacity),
	}
}

func (w *Widget) Kind() entity.WidgetKind {
	return entity.WidgetMarketPulse
}

// Mount seeds a full window ending now and starts the live loop.
func (w *Widget) Mount(ctx context.Context, ticks worker.TickSource) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ticks != nil || w.stopped {
		return
	}

	now := ticks.Now()
	for i := w.cfg.WindowSize - 1; i >= 0; i-- {
		w.points.Append(NewPoint(w.cfg, w.src, now.Add(-time.Duration(i)*w.cfg.Every)))
	}

	w.ticks = ticks
	w.sub = ticks.Every("market-pulse.tick", w.cfg.Every, w.tick)

	logger(ctx).Debug("market pulse mounted")
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
		w.sub = w.ticks.Every("market-pulse.tick", w.cfg.Every, w.tick)
	}
}

func (w *Widget) Paused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.paused
}

func (w *Widget) Snapshot() entity.MarketPulse {
	w.mu.Lock()
	defer w.mu.Unlock()

	points := w.points.Items()

	return entity.MarketPulse{
		Points:     points,
		Activities: w.activities.Items(),
		Trend:      TrendOf(points),
		Live:       !w.paused && !w.stopped,
	}
}

func (w *Widget) View() any {
	return w.Snapshot()
}

func (w *Widget) tick(_ context.Context, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped || w.paused {
		return
	}

	w.points.Append(NewPoint(w.cfg, w.src, now))
	metrics.RecordsGenerated.WithLabelValues(w.Kind().String()).Inc()

	if randx.Chance(w.src, w.cfg.ActivityChance) {
		w.activities.Push(NewActivity(w.catalog, w.src, now))
	}
}
