package pricedrop_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"gb_market/internal/domain/entity"
	"gb_market/internal/domain/service/pricedrop"
	"gb_market/internal/domain/value"
	"gb_market/internal/worker"
	"gb_market/pkg/randx"
)

func TestNewUpdateInvariants(t *testing.T) {
	rq := require.New(t)

	cfg := pricedrop.DefaultConfig()
	src := randx.New(3)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	for range 1000 {
		u := pricedrop.NewUpdate(cfg, value.DefaultCatalog(), src, now)

		rq.GreaterOrEqual(u.OldPrice, int64(500))
		rq.Less(u.OldPrice, int64(2500))
		rq.GreaterOrEqual(u.DropPercent, 5)
		rq.LessOrEqual(u.DropPercent, 25)
		rq.Equal(u.OldPrice*int64(100-u.DropPercent)/100, u.NewPrice)
		rq.InDelta(-float64(u.DropPercent), u.ChangePercent, 0)
		rq.Equal(entity.UrgencyFor(u.DropPercent), u.Urgency)
		rq.Positive(u.BuyerCount)
		rq.NotEmpty(u.SellerID)
		rq.Equal(now, u.CreatedAt)
	}
}

// run drives the widget until it generated n updates and returns every update
// the listener saw.
func run(t *testing.T, seed int64, n int) (*pricedrop.Widget, []entity.PriceUpdate) {
	t.Helper()

	ctx := context.Background()
	clk := clock.NewMock()
	sched := worker.NewScheduler(clk)

	var seen []entity.PriceUpdate

	w := pricedrop.New(pricedrop.DefaultConfig(), value.DefaultCatalog(), randx.New(seed)).
		WithListener(func(_ context.Context, u entity.PriceUpdate) {
			seen = append(seen, u)
		})

	w.Mount(ctx, sched)

	now := clk.Now()
	for len(seen) < n {
		now = now.Add(time.Second)
		sched.Advance(ctx, now)
	}

	return w, seen
}

func TestWidgetCapsNewestFirst(t *testing.T) {
	rq := require.New(t)

	w, seen := run(t, 42, 15)
	rq.Len(seen, 15)

	feed := w.Snapshot()
	rq.Len(feed.Updates, 10)

	for i, u := range feed.Updates {
		rq.Equal(seen[14-i].ID, u.ID)
	}

	// The five oldest are gone, the sixth is the oldest kept.
	for _, evicted := range seen[:5] {
		for _, u := range feed.Updates {
			rq.NotEqual(evicted.ID, u.ID)
		}
	}

	rq.Equal(seen[5].ID, feed.Updates[9].ID)
}

func TestWidgetDeterministicForSeed(t *testing.T) {
	rq := require.New(t)

	_, a := run(t, 99, 15)
	_, b := run(t, 99, 15)

	rq.Len(b, len(a))

	for i := range a {
		rq.Equal(a[i].ProductName, b[i].ProductName)
		rq.Equal(a[i].OldPrice, b[i].OldPrice)
		rq.Equal(a[i].NewPrice, b[i].NewPrice)
		rq.Equal(a[i].CreatedAt, b[i].CreatedAt)
	}
}

func TestWidgetIntervalBounds(t *testing.T) {
	rq := require.New(t)

	_, seen := run(t, 7, 30)

	for i := 1; i < len(seen); i++ {
		gap := seen[i].CreatedAt.Sub(seen[i-1].CreatedAt)
		rq.GreaterOrEqual(gap, 3*time.Second)
		rq.LessOrEqual(gap, 7*time.Second)
	}
}

func TestWidgetPauseResume(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	clk := clock.NewMock()
	sched := worker.NewScheduler(clk)
	start := clk.Now()

	w := pricedrop.New(pricedrop.DefaultConfig(), value.DefaultCatalog(), randx.New(1))
	w.Mount(ctx, sched)

	sched.Advance(ctx, start.Add(15*time.Second))

	kept := w.Snapshot().Updates
	rq.NotEmpty(kept)

	w.Pause(ctx)
	rq.True(w.Paused())
	rq.Equal(0, sched.Len())

	sched.Advance(ctx, start.Add(time.Minute))
	rq.Equal(kept, w.Snapshot().Updates)
	rq.True(w.Snapshot().Paused)

	// Resume schedules from the scheduler clock, which the mock keeps at start.
	w.Resume(ctx)
	rq.False(w.Paused())
	rq.Equal(1, sched.Len())

	sched.Advance(ctx, start.Add(2*time.Minute))
	rq.Greater(len(w.Snapshot().Updates), len(kept))
}

func TestWidgetUnmount(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	clk := clock.NewMock()
	sched := worker.NewScheduler(clk)

	w := pricedrop.New(pricedrop.DefaultConfig(), value.DefaultCatalog(), randx.New(1))
	w.Mount(ctx, sched)
	w.Unmount()

	rq.Equal(0, sched.Advance(ctx, clk.Now().Add(time.Hour)))
	rq.Empty(w.Snapshot().Updates)

	w.Resume(ctx)
	w.Pause(ctx)
	rq.Equal(0, sched.Len())
}
