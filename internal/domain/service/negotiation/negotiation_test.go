package negotiation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"gb_market/internal/domain/entity"
	"gb_market/internal/domain/service/negotiation"
	"gb_market/internal/domain/value"
	"gb_market/internal/worker"
	"gb_market/pkg/randx"
)

func TestStatusAt(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		participants int
		target       int
		endsAt       time.Time
		want         entity.NegotiationStatus
	}{
		{"active", 3, 20, now.Add(time.Minute), entity.NegotiationActive},
		{"negotiating at half", 10, 20, now.Add(time.Minute), entity.NegotiationNegotiating},
		{"success at target", 20, 20, now.Add(time.Minute), entity.NegotiationSuccess},
		{"success beats deadline", 25, 20, now.Add(-time.Minute), entity.NegotiationSuccess},
		{"failed at deadline", 19, 20, now, entity.NegotiationFailed},
		{"no deadline", 1, 20, time.Time{}, entity.NegotiationActive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, negotiation.StatusAt(tc.participants, tc.target, tc.endsAt, now))
		})
	}
}

func TestMockFetcher(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	cfg := negotiation.DefaultMockConfig()
	f := negotiation.NewMockFetcher(cfg, value.DefaultCatalog(), randx.New(11))
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	first, err := f.Fetch(ctx, now)
	rq.NoError(err)
	rq.NotEmpty(first.ProductName)
	rq.Less(first.CurrentPrice, first.TargetPrice)
	rq.Len(first.PriceHistory, cfg.HistorySize)
	rq.LessOrEqual(len(first.RecentJoins), cfg.RecentJoins)
	rq.Equal(now.Add(cfg.Duration), first.EndsAt)
	rq.Equal(now, first.PriceHistory[len(first.PriceHistory)-1].Timestamp)

	prev := first
	for i := 1; i <= 10; i++ {
		at := now.Add(time.Duration(i) * 30 * time.Second)

		next, err := f.Fetch(ctx, at)
		rq.NoError(err)

		if next.ProductName == prev.ProductName && next.EndsAt.Equal(prev.EndsAt) {
			rq.GreaterOrEqual(next.Participants, prev.Participants)
			rq.LessOrEqual(next.Participants, next.TargetParticipants)
		}

		rq.Less(next.CurrentPrice, next.TargetPrice)
		rq.Positive(next.CurrentPrice)
		rq.LessOrEqual(len(next.PriceHistory), cfg.HistorySize)
		rq.LessOrEqual(len(next.RecentJoins), cfg.RecentJoins)
		rq.Equal(at, next.FetchedAt)
		rq.Equal(negotiation.StatusAt(next.Participants, next.TargetParticipants, next.EndsAt, at), next.Status)

		prev = next
	}
}

func TestMockFetcherRestartsAfterFinalStatus(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	cfg := negotiation.DefaultMockConfig()
	cfg.Duration = time.Minute
	f := negotiation.NewMockFetcher(cfg, value.DefaultCatalog(), randx.New(5))
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	first, err := f.Fetch(ctx, now)
	rq.NoError(err)

	// Past the deadline the session either succeeded or failed.
	done, err := f.Fetch(ctx, now.Add(2*time.Minute))
	rq.NoError(err)
	rq.True(done.Status.Final())
	rq.Equal(first.EndsAt, done.EndsAt)

	fresh, err := f.Fetch(ctx, now.Add(3*time.Minute))
	rq.NoError(err)
	rq.Equal(now.Add(4*time.Minute), fresh.EndsAt)
}

func TestMockFetcherLatencyHonoursContext(t *testing.T) {
	rq := require.New(t)

	cfg := negotiation.DefaultMockConfig()
	cfg.Latency = time.Hour
	f := negotiation.NewMockFetcher(cfg, value.DefaultCatalog(), randx.New(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, time.Now())
	rq.ErrorIs(err, context.Canceled)
}

type gatedFetcher struct {
	gate chan struct{}
	next func(now time.Time) (entity.GroupNegotiation, error)
}

func (g *gatedFetcher) Fetch(ctx context.Context, now time.Time) (entity.GroupNegotiation, error) {
	select {
	case <-ctx.Done():
		return entity.GroupNegotiation{}, ctx.Err()
	case <-g.gate:
	}

	return g.next(now)
}

func TestWidgetLoadingAndErrors(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	clk := clock.NewMock()
	sched := worker.NewScheduler(clk)
	start := clk.Now()

	fail := false
	fetcher := &gatedFetcher{
		gate: make(chan struct{}),
		next: func(now time.Time) (entity.GroupNegotiation, error) {
			if fail {
				return entity.GroupNegotiation{}, errors.New("upstream unavailable")
			}

			return entity.GroupNegotiation{
				ProductName:        "Air Fryer XL",
				TargetPrice:        1000,
				CurrentPrice:       900,
				Participants:       12,
				TargetParticipants: 20,
				EndsAt:             now.Add(time.Hour),
				FetchedAt:          now,
			}, nil
		},
	}

	w := negotiation.New(negotiation.DefaultConfig(), fetcher)
	w.Mount(ctx, sched)

	view := w.Snapshot()
	rq.True(view.Loading)
	rq.Nil(view.Data)

	fetcher.gate <- struct{}{}
	rq.Eventually(func() bool { return !w.Snapshot().Loading }, time.Second, 5*time.Millisecond)

	view = w.Snapshot()
	rq.NotNil(view.Data)
	rq.Equal(entity.NegotiationNegotiating, view.Data.Status)
	rq.Equal(60, view.Data.Progress())
	rq.Empty(view.LastError)

	fail = true

	sched.Advance(ctx, start.Add(30*time.Second))
	rq.True(w.Snapshot().Loading)

	fetcher.gate <- struct{}{}
	rq.Eventually(func() bool { return !w.Snapshot().Loading }, time.Second, 5*time.Millisecond)

	view = w.Snapshot()
	rq.Equal("upstream unavailable", view.LastError)
	rq.NotNil(view.Data)
	rq.Equal("Air Fryer XL", view.Data.ProductName)

	w.Unmount()
}

func TestWidgetUnmountCancelsFetch(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	clk := clock.NewMock()
	sched := worker.NewScheduler(clk)

	fetcher := &gatedFetcher{
		gate: make(chan struct{}),
		next: func(time.Time) (entity.GroupNegotiation, error) {
			return entity.GroupNegotiation{ProductName: "never"}, nil
		},
	}

	w := negotiation.New(negotiation.DefaultConfig(), fetcher)
	w.Mount(ctx, sched)
	w.Unmount()

	rq.Equal(0, sched.Advance(ctx, clk.Now().Add(time.Hour)))

	view := w.Snapshot()
	rq.Nil(view.Data)
	rq.False(view.Loading)
}

func TestWidgetWithMockFetcher(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	clk := clock.NewMock()
	sched := worker.NewScheduler(clk)
	start := clk.Now()

	f := negotiation.NewMockFetcher(negotiation.DefaultMockConfig(), value.DefaultCatalog(), randx.New(3))
	w := negotiation.New(negotiation.DefaultConfig(), f)
	w.Mount(ctx, sched)

	rq.Eventually(func() bool { return w.Snapshot().Data != nil }, time.Second, 5*time.Millisecond)
	first := w.Snapshot().Data.FetchedAt
	rq.Equal(start, first)

	sched.Advance(ctx, start.Add(30*time.Second))
	rq.Eventually(func() bool {
		view := w.Snapshot()
		return !view.Loading && view.Data.FetchedAt.Equal(start.Add(30*time.Second))
	}, time.Second, 5*time.Millisecond)

	w.Unmount()
}
