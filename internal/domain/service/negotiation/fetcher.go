package negotiation

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"gb_market/internal/domain/entity"
	"gb_market/internal/domain/value"
	"gb_market/pkg/randx"
)

// Fetcher returns one group negotiation record. Implementations may block.
type Fetcher interface {
	Fetch(ctx context.Context, now time.Time) (entity.GroupNegotiation, error)
}

type FetcherFunc func(ctx context.Context, now time.Time) (entity.GroupNegotiation, error)

func (f FetcherFunc) Fetch(ctx context.Context, now time.Time) (entity.GroupNegotiation, error) {
	return f(ctx, now)
}

type MockConfig struct {
	MinTarget, MaxTarget             int
	MinParticipants, MaxParticipants int
	MaxStep                          int64
	MaxJoinsPerFetch                 int
	RecentJoins                      int
	HistorySize                      int
	HistoryStep                      time.Duration
	Duration                         time.Duration
	Latency                          time.Duration
}

func DefaultMockConfig() MockConfig {
	return MockConfig{
		MinTarget:        800,
		MaxTarget:        1500,
		MinParticipants:  10,
		MaxParticipants:  50,
		MaxStep:          40,
		MaxJoinsPerFetch: 4,
		RecentJoins:      5,
		HistorySize:      20,
		HistoryStep:      30 * time.Second,
		Duration:         15 * time.Minute,
	}
}

// MockFetcher simulates a negotiation session that evolves between fetches.
// A new session starts once the previous one reached a final status.
type MockFetcher struct {
	cfg     MockConfig
	catalog value.Catalog
	src     randx.Source

	mu      sync.Mutex
	session *entity.GroupNegotiation
}

func NewMockFetcher(cfg MockConfig, catalog value.Catalog, src randx.Source) *MockFetcher {
	return &MockFetcher{
		cfg:     cfg,
		catalog: catalog,
		src:     randx.Locked(src),
	}
}

func (f *MockFetcher) Fetch(ctx context.Context, now time.Time) (entity.GroupNegotiation, error) {
	if f.cfg.Latency > 0 {
		timer := time.NewTimer(f.cfg.Latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return entity.GroupNegotiation{}, fmt.Errorf("negotiation.MockFetcher.Fetch: %w", ctx.Err())
		case <-timer.C:
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session == nil || f.session.Status.Final() {
		f.session = f.start(now)
	} else {
		f.step(f.session, now)
	}

	return clone(*f.session), nil
}

func (f *MockFetcher) start(now time.Time) *entity.GroupNegotiation {
	target := int64(randx.Between(f.src, f.cfg.MinTarget, f.cfg.MaxTarget))
	targetParticipants := randx.Between(f.src, f.cfg.MinParticipants, f.cfg.MaxParticipants)

	g := &entity.GroupNegotiation{
		ProductName:        randx.Pick(f.src, f.catalog.Products),
		TargetPrice:        target,
		CurrentPrice:       target - 1 - int64(f.src.IntN(int(max(target/5, 1)))),
		TargetParticipants: targetParticipants,
		Participants:       f.src.IntN(targetParticipants/2 + 1),
		EndsAt:             now.Add(f.cfg.Duration),
	}

	// Backfill history so a fresh session already has a chart.
	price, participants := g.CurrentPrice, g.Participants
	samples := make([]entity.PriceSample, 0, f.cfg.HistorySize)

	for i := range f.cfg.HistorySize {
		samples = append(samples, entity.PriceSample{
			Timestamp:    now.Add(-time.Duration(i) * f.cfg.HistoryStep),
			Price:        price,
			Participants: participants,
		})

		price = f.walk(price, target)
		participants = max(participants-f.src.IntN(2), 0)
	}

	slices.Reverse(samples)
	g.PriceHistory = samples

	for i := range min(g.Participants, f.cfg.RecentJoins) {
		f.join(g, now.Add(-time.Duration(i)*f.cfg.HistoryStep))
	}

	slices.SortFunc(g.RecentJoins, func(a, b entity.Join) int { return b.JoinedAt.Compare(a.JoinedAt) })

	g.Status = StatusAt(g.Participants, g.TargetParticipants, g.EndsAt, now)
	g.FetchedAt = now

	return g
}

func (f *MockFetcher) step(g *entity.GroupNegotiation, now time.Time) {
	joined := f.src.IntN(f.cfg.MaxJoinsPerFetch + 1)

	for range joined {
		if g.Participants >= g.TargetParticipants {
			break
		}

		g.Participants++
		f.join(g, now)
	}

	g.CurrentPrice = f.walk(g.CurrentPrice, g.TargetPrice)

	g.PriceHistory = append(g.PriceHistory, entity.PriceSample{
		Timestamp:    now,
		Price:        g.CurrentPrice,
		Participants: g.Participants,
	})
	if over := len(g.PriceHistory) - f.cfg.HistorySize; over > 0 {
		g.PriceHistory = slices.Delete(g.PriceHistory, 0, over)
	}

	g.Status = StatusAt(g.Participants, g.TargetParticipants, g.EndsAt, now)
	g.FetchedAt = now
}

// walk moves price by at most MaxStep and keeps it in [1, target).
func (f *MockFetcher) walk(price, target int64) int64 {
	step := int64(f.src.IntN(int(2*f.cfg.MaxStep+1))) - f.cfg.MaxStep

	return min(max(price+step, 1), target-1)
}

func (f *MockFetcher) join(g *entity.GroupNegotiation, at time.Time) {
	g.RecentJoins = slices.Insert(g.RecentJoins, 0, entity.Join{
		Name:     randx.Pick(f.src, f.catalog.Buyers),
		JoinedAt: at,
	})
	if len(g.RecentJoins) > f.cfg.RecentJoins {
		g.RecentJoins = g.RecentJoins[:f.cfg.RecentJoins]
	}
}

func clone(g entity.GroupNegotiation) entity.GroupNegotiation {
	g.PriceHistory = slices.Clone(g.PriceHistory)
	g.RecentJoins = slices.Clone(g.RecentJoins)

	return g
}
