package notifier_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
	"github.com/mymmrac/telego"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"gb_market/internal/domain"
	"gb_market/internal/domain/entity"
	"gb_market/internal/infrastructure/notifier"
	"gb_market/pkg/errcodes"
)

type recordingSink struct {
	mu     sync.Mutex
	name   string
	err    error
	events []notifier.Event
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Send(_ context.Context, ev notifier.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, ev)

	return s.err
}

func (s *recordingSink) Events() []notifier.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]notifier.Event(nil), s.events...)
}

func priceUpdate(id string, drop int) entity.PriceUpdate {
	return entity.PriceUpdate{
		ID:          id,
		ProductName: "Air Fryer XL",
		SellerName:  "MegaMart",
		OldPrice:    1000,
		NewPrice:    entity.DiscountedPrice(1000, drop),
		DropPercent: drop,
		Urgency:     entity.UrgencyFor(drop),
		CreatedAt:   time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}
}

func TestEventText(t *testing.T) {
	rq := require.New(t)

	ev := notifier.FromPriceUpdate(priceUpdate("a", 25))
	rq.Equal(notifier.EventPriceDrop, ev.Kind)
	rq.Equal(int64(250), ev.Savings())
	rq.Contains(ev.Text(), "PRICE DROP")
	rq.Contains(ev.Text(), "1000 → 750")

	deal := notifier.FromFlashDeal(entity.FlashDeal{ID: "d", OriginalPrice: 900, FlashPrice: 360, DiscountPercent: 60}, time.Now())
	rq.Contains(deal.Text(), "FLASH DEAL")
}

func TestAtLeast(t *testing.T) {
	rq := require.New(t)

	rq.True(notifier.AtLeast(entity.UrgencyCritical, entity.UrgencyHigh))
	rq.True(notifier.AtLeast(entity.UrgencyHigh, entity.UrgencyHigh))
	rq.False(notifier.AtLeast(entity.UrgencyMedium, entity.UrgencyHigh))
}

func TestDispatcherDelivers(t *testing.T) {
	rq := require.New(t)

	ok := &recordingSink{name: "ok"}
	broken := &recordingSink{name: "broken", err: errors.New("boom")}

	d := notifier.NewDispatcher(notifier.DispatcherOptions{Buffer: 10}, broken, ok)
	rq.Equal([]string{"broken", "ok"}, d.Sinks())

	ctx, cancel := context.WithCancel(context.Background())
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.Run(gCtx) })

	listener := d.PriceDropListener()
	listener(ctx, priceUpdate("a", 10))
	listener(ctx, priceUpdate("b", 20))

	rq.Eventually(func() bool { return len(ok.Events()) == 2 }, time.Second, 5*time.Millisecond)
	rq.Len(broken.Events(), 2)
	rq.Equal("a", ok.Events()[0].ID)

	cancel()
	rq.NoError(g.Wait())
}

func TestDispatcherFiltersAndDrops(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	d := notifier.NewDispatcher(notifier.DispatcherOptions{Buffer: 1, MinUrgency: entity.UrgencyHigh})

	rq.False(d.Publish(ctx, notifier.FromPriceUpdate(priceUpdate("low", 5))))
	rq.True(d.Publish(ctx, notifier.FromPriceUpdate(priceUpdate("high", 40))))
	rq.False(d.Publish(ctx, notifier.FromPriceUpdate(priceUpdate("full", 45))))
}

func TestDispatcherRateLimit(t *testing.T) {
	rq := require.New(t)

	sink := &recordingSink{name: "slow"}
	d := notifier.NewDispatcher(notifier.DispatcherOptions{Rate: 1, Burst: 1, Buffer: 10}, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- d.Run(ctx) }()

	for _, id := range []string{"a", "b", "c"} {
		d.Publish(ctx, notifier.FromPriceUpdate(priceUpdate(id, 30)))
	}

	rq.Eventually(func() bool { return len(sink.Events()) == 1 }, time.Second, 5*time.Millisecond)
	rq.Never(func() bool { return len(sink.Events()) > 2 }, 500*time.Millisecond, 20*time.Millisecond)

	cancel()
	rq.NoError(<-done)
}

type fakeSender struct {
	params []*telego.SendMessageParams
}

func (f *fakeSender) SendMessage(_ context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	f.params = append(f.params, params)
	return &telego.Message{}, nil
}

func TestTelegramSink(t *testing.T) {
	rq := require.New(t)

	sender := &fakeSender{}
	sink := notifier.NewTelegramSink(sender, 42)

	rq.NoError(sink.Send(context.Background(), notifier.FromPriceUpdate(priceUpdate("a", 30))))
	rq.Len(sender.params, 1)
	rq.Equal(int64(42), sender.params[0].ChatID.ID)
	rq.Equal(telego.ModeHTML, sender.params[0].ParseMode)
	rq.Contains(sender.params[0].Text, "Air Fryer XL")
}

type fakePublisher struct {
	channel string
	payload []byte
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)

	return redis.NewIntResult(1, f.err)
}

func TestRedisSink(t *testing.T) {
	rq := require.New(t)

	pub := &fakePublisher{}
	sink := notifier.NewRedisSink(pub, "gb-market:events")

	rq.NoError(sink.Send(context.Background(), notifier.FromPriceUpdate(priceUpdate("a", 30))))
	rq.Equal("gb-market:events", pub.channel)

	var ev notifier.Event
	rq.NoError(jsoniter.Unmarshal(pub.payload, &ev))
	rq.Equal("a", ev.ID)
	rq.Equal(entity.UrgencyMedium, ev.Urgency)

	pub.err = errors.New("connection refused")
	rq.ErrorContains(sink.Send(context.Background(), ev), "connection refused")
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func TestQueueRoundTrip(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	q := &fakeEnqueuer{}
	sink := notifier.NewQueueSink(q, "notifications")

	rq.NoError(sink.Send(ctx, notifier.FromPriceUpdate(priceUpdate("a", 30))))
	rq.Len(q.tasks, 1)
	rq.Equal(notifier.TaskSend, q.tasks[0].Type())

	target := &recordingSink{name: "telegram"}
	handle := notifier.TaskHandler(target)

	rq.NoError(handle(ctx, q.tasks[0]))
	rq.Equal("a", target.Events()[0].ID)

	err := handle(ctx, asynq.NewTask(notifier.TaskSend, []byte("{")))
	rq.ErrorIs(err, asynq.SkipRetry)
	rq.True(domain.HasCode(err, errcodes.NotificationFailed))

	target.err = errors.New("telegram down")
	err = handle(ctx, q.tasks[0])
	rq.True(domain.HasCode(err, errcodes.NotificationFailed))
	rq.NotErrorIs(err, asynq.SkipRetry)
}
