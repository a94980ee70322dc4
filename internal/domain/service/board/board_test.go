package board_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"gb_market/internal/domain"
	"gb_market/internal/domain/entity"
	"gb_market/internal/domain/service/board"
	"gb_market/internal/domain/value"
	"gb_market/internal/worker"
	"gb_market/pkg/errcodes"
	"gb_market/pkg/randx"
)

type stubWidget struct {
	kind      entity.WidgetKind
	mounted   atomic.Bool
	unmounted atomic.Int32
}

func (s *stubWidget) Kind() entity.WidgetKind                  { return s.kind }
func (s *stubWidget) Mount(context.Context, worker.TickSource) { s.mounted.Store(true) }
func (s *stubWidget) Unmount()                                 { s.unmounted.Add(1) }
func (s *stubWidget) View() any                                { return "stub" }

func newBoard(t *testing.T, cfg board.Config) (*board.Board, *worker.Scheduler) {
	t.Helper()

	sched := worker.NewScheduler(clock.NewMock())
	factory := board.DefaultWidgets(value.DefaultCatalog())

	b := board.New(cfg, sched, factory)
	t.Cleanup(func() { b.Close(context.Background()) })

	return b, sched
}

func TestBoardMountAndSnapshot(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	b, sched := newBoard(t, board.Config{IdleTTL: time.Minute, Seed: 42})

	for _, kind := range entity.WidgetKinds() {
		w, err := b.Mount(ctx, kind)
		rq.NoError(err)
		rq.Equal(kind, w.Kind)
		rq.NotEmpty(w.ID)

		got, view, err := b.Snapshot(w.ID)
		rq.NoError(err)
		rq.Equal(w.ID, got.ID)
		rq.NotNil(view)
	}

	rq.Equal(4, b.Len())
	rq.Len(b.List(), 4)
	rq.Positive(sched.Len())

	_, err := b.Mount(ctx, entity.WidgetKind("lottery"))
	rq.True(domain.HasCode(err, errcodes.InvalidWidgetKind))
}

func TestBoardViewsByKind(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	b, _ := newBoard(t, board.Config{IdleTTL: time.Minute, Seed: 1})

	deals, err := b.Mount(ctx, entity.WidgetFlashDeals)
	rq.NoError(err)

	_, view, err := b.Snapshot(deals.ID)
	rq.NoError(err)
	rq.IsType(entity.FlashDealBoard{}, view)
	rq.Len(view.(entity.FlashDealBoard).Deals, 3)

	pulse, err := b.Mount(ctx, entity.WidgetMarketPulse)
	rq.NoError(err)

	_, view, err = b.Snapshot(pulse.ID)
	rq.NoError(err)
	rq.Len(view.(entity.MarketPulse).Points, 10)
}

func TestBoardUnmount(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	b, sched := newBoard(t, board.Config{IdleTTL: time.Minute})

	w, err := b.Mount(ctx, entity.WidgetPriceDrops)
	rq.NoError(err)
	rq.Equal(1, sched.Len())

	rq.NoError(b.Unmount(ctx, w.ID))
	rq.Equal(0, sched.Len())
	rq.Equal(0, b.Len())

	_, _, err = b.Snapshot(w.ID)
	rq.True(domain.HasCode(err, errcodes.WidgetNotFound))

	err = b.Unmount(ctx, w.ID)
	rq.True(domain.HasCode(err, errcodes.WidgetNotFound))
}

func TestBoardPauseResume(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	b, _ := newBoard(t, board.Config{IdleTTL: time.Minute})

	drops, err := b.Mount(ctx, entity.WidgetPriceDrops)
	rq.NoError(err)
	rq.False(drops.Paused)

	paused, err := b.Pause(ctx, drops.ID)
	rq.NoError(err)
	rq.True(paused.Paused)

	resumed, err := b.Resume(ctx, drops.ID)
	rq.NoError(err)
	rq.False(resumed.Paused)

	deals, err := b.Mount(ctx, entity.WidgetFlashDeals)
	rq.NoError(err)

	_, err = b.Pause(ctx, deals.ID)
	rq.True(domain.HasCode(err, errcodes.WidgetNotPausable))

	_, err = b.Pause(ctx, "missing")
	rq.True(domain.HasCode(err, errcodes.WidgetNotFound))
}

func TestBoardIdleEviction(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	stub := &stubWidget{kind: entity.WidgetMarketPulse}
	factory := board.FactoryFunc(func(entity.WidgetKind, randx.Source) (board.Widget, error) {
		return stub, nil
	})

	b := board.New(board.Config{IdleTTL: 50 * time.Millisecond}, worker.NewScheduler(clock.NewMock()), factory)

	w, err := b.Mount(ctx, entity.WidgetMarketPulse)
	rq.NoError(err)
	rq.True(stub.mounted.Load())

	time.Sleep(100 * time.Millisecond)
	b.Sweep()

	rq.Equal(int32(1), stub.unmounted.Load())

	_, err = b.Get(w.ID)
	rq.True(domain.HasCode(err, errcodes.WidgetNotFound))
}

func TestBoardClose(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var stubs []*stubWidget
	factory := board.FactoryFunc(func(kind entity.WidgetKind, _ randx.Source) (board.Widget, error) {
		s := &stubWidget{kind: kind}
		stubs = append(stubs, s)

		return s, nil
	})

	b := board.New(board.DefaultConfig(), worker.NewScheduler(clock.NewMock()), factory)

	for range 3 {
		_, err := b.Mount(ctx, entity.WidgetFlashDeals)
		rq.NoError(err)
	}

	b.Close(ctx)

	rq.Equal(0, b.Len())
	for _, s := range stubs {
		rq.Equal(int32(1), s.unmounted.Load())
	}

	_, err := b.Mount(ctx, entity.WidgetFlashDeals)
	rq.Error(err)
}

func TestBoardListOrder(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	clk := clock.NewMock()
	sched := worker.NewScheduler(clk)
	b := board.New(board.DefaultConfig(), sched, board.DefaultWidgets(value.DefaultCatalog()))
	t.Cleanup(func() { b.Close(ctx) })

	first, err := b.Mount(ctx, entity.WidgetPriceDrops)
	rq.NoError(err)

	clk.Add(time.Second)

	second, err := b.Mount(ctx, entity.WidgetMarketPulse)
	rq.NoError(err)

	list := b.List()
	rq.Len(list, 2)
	rq.Equal(first.ID, list[0].ID)
	rq.Equal(second.ID, list[1].ID)
}
