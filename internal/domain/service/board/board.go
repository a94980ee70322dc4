package board

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"
	"github.com/samber/lo"

	"gb_market/internal/domain"
	"gb_market/internal/domain/entity"
	"gb_market/internal/worker"
	"gb_market/pkg/contextx"
	"gb_market/pkg/errcodes"
	"gb_market/pkg/logx"
	"gb_market/pkg/metrics"
	"gb_market/pkg/randx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const minCleanupInterval = time.Second

type Config struct {
	// IdleTTL unmounts widgets nobody has read for this long.
	IdleTTL time.Duration
	// Seed makes every instance reproducible; zero means time based.
	Seed int64
}

func DefaultConfig() Config {
	return Config{IdleTTL: 10 * time.Minute}
}

type instance struct {
	meta   entity.Widget
	widget Widget
}

func (i *instance) describe() entity.Widget {
	meta := i.meta
	if p, ok := i.widget.(Pausable); ok {
		meta.Paused = p.Paused()
	}

	return meta
}

// Board is the registry of mounted widgets. Each widget owns its state and
// random source; the board only routes calls and tears widgets down.
type Board struct {
	cfg     Config
	ticks   worker.TickSource
	factory Factory
	log     *slog.Logger

	counter atomic.Int64
	mu      sync.Mutex
	closed  bool
	items   *cache.Cache
}

func New(cfg Config, ticks worker.TickSource, factory Factory) *Board {
	b := &Board{
		cfg:     cfg,
		ticks:   ticks,
		factory: factory,
		log:     slog.Default(),
	}

	b.items = cache.New(cfg.IdleTTL, max(cfg.IdleTTL/2, minCleanupInterval)) //nolint:mnd
	b.items.OnEvicted(b.evicted)

	return b
}

// WithLogger sets the logger used for evictions, which happen outside any request.
func (b *Board) WithLogger(log *slog.Logger) *Board {
	b.log = log
	return b
}

func (b *Board) Mount(ctx context.Context, kind entity.WidgetKind) (entity.Widget, error) {
	if !kind.Valid() {
		return entity.Widget{}, domain.NewError(errcodes.InvalidWidgetKind, "unknown widget kind: "+kind.String())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return entity.Widget{}, domain.NewError(errcodes.InternalServerError, "board is closed")
	}

	w, err := b.factory.New(kind, b.source())
	if err != nil {
		return entity.Widget{}, err
	}

	inst := &instance{
		meta: entity.Widget{
			ID:        xid.New().String(),
			Kind:      kind,
			MountedAt: b.ticks.Now(),
		},
		widget: w,
	}

	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldWidgetID, inst.meta.ID),
		slog.String(logx.FieldWidgetKind, kind.String()),
	))

	w.Mount(ctx, b.ticks)
	b.items.Set(inst.meta.ID, inst, cache.DefaultExpiration)

	metrics.WidgetsMounted.WithLabelValues(kind.String()).Inc()
	logger(ctx).Info("widget mounted")

	return inst.describe(), nil
}

func (b *Board) Unmount(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.items.Get(id); !ok {
		return notFound(id)
	}

	// OnEvicted performs the teardown.
	b.items.Delete(id)

	logger(ctx).Info("widget unmounted", slog.String(logx.FieldWidgetID, id))

	return nil
}

// Snapshot returns the widget description and its current view. Reading a
// widget keeps it alive for another idle period.
func (b *Board) Snapshot(id string) (entity.Widget, any, error) {
	inst, err := b.touch(id)
	if err != nil {
		return entity.Widget{}, nil, err
	}

	return inst.describe(), inst.widget.View(), nil
}

func (b *Board) Get(id string) (entity.Widget, error) {
	inst, err := b.touch(id)
	if err != nil {
		return entity.Widget{}, err
	}

	return inst.describe(), nil
}

func (b *Board) Pause(ctx context.Context, id string) (entity.Widget, error) {
	return b.control(ctx, id, Pausable.Pause)
}

func (b *Board) Resume(ctx context.Context, id string) (entity.Widget, error) {
	return b.control(ctx, id, Pausable.Resume)
}

func (b *Board) control(ctx context.Context, id string, fn func(Pausable, context.Context)) (entity.Widget, error) {
	inst, err := b.touch(id)
	if err != nil {
		return entity.Widget{}, err
	}

	p, ok := inst.widget.(Pausable)
	if !ok {
		return entity.Widget{}, domain.NewError(errcodes.WidgetNotPausable,
			"widget kind cannot be paused: "+inst.meta.Kind.String())
	}

	fn(p, ctx)

	return inst.describe(), nil
}

// List returns mounted widgets ordered by mount time.
func (b *Board) List() []entity.Widget {
	items := b.items.Items()

	widgets := lo.MapToSlice(items, func(_ string, item cache.Item) entity.Widget {
		return item.Object.(*instance).describe() //nolint:forcetypeassert
	})

	slices.SortFunc(widgets, func(a, b entity.Widget) int {
		if c := a.MountedAt.Compare(b.MountedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return widgets
}

func (b *Board) Len() int {
	return b.items.ItemCount()
}

// Sweep unmounts widgets whose idle period elapsed.
func (b *Board) Sweep() {
	b.items.DeleteExpired()
}

// Close unmounts every widget and rejects further mounts.
func (b *Board) Close(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true

	ids := lo.Keys(b.items.Items())
	for _, id := range ids {
		b.items.Delete(id)
	}

	b.items.DeleteExpired()

	logger(ctx).Info("widget board closed", slog.Int("unmounted", len(ids)))
}

func (b *Board) touch(id string) (*instance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.items.Get(id)
	if !ok {
		return nil, notFound(id)
	}

	b.items.Set(id, v, cache.DefaultExpiration)

	return v.(*instance), nil //nolint:forcetypeassert
}

func (b *Board) evicted(id string, v any) {
	inst, ok := v.(*instance)
	if !ok {
		return
	}

	inst.widget.Unmount()
	metrics.WidgetsMounted.WithLabelValues(inst.meta.Kind.String()).Dec()

	b.log.Debug("widget torn down",
		slog.String(logx.FieldWidgetID, id),
		slog.String(logx.FieldWidgetKind, inst.meta.Kind.String()),
	)
}

func (b *Board) source() randx.Source {
	n := b.counter.Add(1)

	if b.cfg.Seed == 0 {
		return randx.New(0)
	}

	return randx.New(b.cfg.Seed + n)
}

func notFound(id string) error {
	return domain.NewError(errcodes.WidgetNotFound, "widget not found: "+id)
}
