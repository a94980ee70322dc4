package negotiation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gb_market/internal/domain/entity"
	"gb_market/internal/worker"
	"gb_market/pkg/contextx"
	"gb_market/pkg/logx"
	"gb_market/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Config struct {
	RefreshEvery time.Duration
	FetchTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		RefreshEvery: 30 * time.Second,
		FetchTimeout: 10 * time.Second,
	}
}

// Widget polls a Fetcher and replaces its record wholesale on every success.
// Fetches run off the scheduler goroutine, at most one at a time.
type Widget struct {
	cfg     Config
	fetcher Fetcher

	mu        sync.Mutex
	data      *entity.GroupNegotiation
	loading   bool
	lastError string
	sub       *worker.Subscription
	cancel    context.CancelFunc
	stopped   bool
	wg        sync.WaitGroup
}

func New(cfg Config, fetcher Fetcher) *Widget {
	return &Widget{
		cfg:     cfg,
		fetcher: fetcher,
	}
}

func (w *Widget) Kind() entity.WidgetKind {
	return entity.WidgetGroupNegotiation
}

// Mount starts the first fetch immediately and then refreshes on interval.
func (w *Widget) Mount(ctx context.Context, ticks worker.TickSource) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.sub != nil || w.stopped {
		return
	}

	// Keep the caller's values but not its deadline.
	ctx, w.cancel = context.WithCancel(context.WithoutCancel(ctx))

	w.sub = ticks.Every("group-negotiation.refresh", w.cfg.RefreshEvery, func(_ context.Context, now time.Time) {
		w.refresh(ctx, now)
	})

	w.startLocked(ctx, ticks.Now())
}

// Unmount cancels an in-flight fetch and waits for it to return.
func (w *Widget) Unmount() {
	w.mu.Lock()

	w.sub.Cancel()
	w.sub = nil
	w.stopped = true
	w.loading = false

	if w.cancel != nil {
		w.cancel()
	}

	w.mu.Unlock()

	w.wg.Wait()
}

func (w *Widget) Snapshot() entity.GroupNegotiationView {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := entity.GroupNegotiationView{
		Loading:   w.loading,
		LastError: w.lastError,
	}

	if w.data != nil {
		data := clone(*w.data)
		view.Data = &data
	}

	return view
}

func (w *Widget) View() any {
	return w.Snapshot()
}

func (w *Widget) refresh(ctx context.Context, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped || w.loading {
		return
	}

	w.startLocked(ctx, now)
}

// startLocked must be called with w.mu held.
func (w *Widget) startLocked(ctx context.Context, now time.Time) {
	w.loading = true
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()

		fetchCtx, cancel := context.WithTimeout(ctx, w.cfg.FetchTimeout)
		defer cancel()

		data, err := w.fetcher.Fetch(fetchCtx, now)

		w.mu.Lock()
		defer w.mu.Unlock()

		if w.stopped {
			return
		}

		w.loading = false

		if err != nil {
			w.lastError = err.Error()
			logger(ctx).Warn("negotiation fetch failed", logx.Error(err))

			return
		}

		data.Status = StatusAt(data.Participants, data.TargetParticipants, data.EndsAt, now)
		w.data = &data
		w.lastError = ""

		metrics.RecordsGenerated.WithLabelValues(w.Kind().String()).Inc()
		logger(ctx).Debug("negotiation refreshed", slog.String("status", string(data.Status)))
	}()
}
