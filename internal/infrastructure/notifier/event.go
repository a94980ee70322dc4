package notifier

import (
	"fmt"
	"time"

	"gb_market/internal/domain/entity"
)

type EventKind string

const (
	EventPriceDrop EventKind = "price_drop"
	EventFlashDeal EventKind = "flash_deal"
)

// Event is the sink-independent form of a record worth announcing.
type Event struct {
	ID          string         `json:"id"`
	Kind        EventKind      `json:"kind"`
	ProductName string         `json:"productName"`
	SellerName  string         `json:"sellerName"`
	OldPrice    int64          `json:"oldPrice"`
	NewPrice    int64          `json:"newPrice"`
	Percent     int            `json:"percent"`
	Urgency     entity.Urgency `json:"urgency"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func FromPriceUpdate(u entity.PriceUpdate) Event {
	return Event{
		ID:          u.ID,
		Kind:        EventPriceDrop,
		ProductName: u.ProductName,
		SellerName:  u.SellerName,
		OldPrice:    u.OldPrice,
		NewPrice:    u.NewPrice,
		Percent:     u.DropPercent,
		Urgency:     u.Urgency,
		CreatedAt:   u.CreatedAt,
	}
}

func FromFlashDeal(d entity.FlashDeal, now time.Time) Event {
	return Event{
		ID:          d.ID,
		Kind:        EventFlashDeal,
		ProductName: d.ProductName,
		SellerName:  d.SellerName,
		OldPrice:    d.OriginalPrice,
		NewPrice:    d.FlashPrice,
		Percent:     d.DiscountPercent,
		Urgency:     d.Urgency,
		CreatedAt:   now,
	}
}

func (e Event) Savings() int64 {
	return e.OldPrice - e.NewPrice
}

// Text renders the event as Telegram HTML.
func (e Event) Text() string {
	title := "📉 <b>PRICE DROP</b>"
	if e.Kind == EventFlashDeal {
		title = "🔥 <b>FLASH DEAL</b>"
	}

	return fmt.Sprintf(
		"%s\n\n"+
			"🛍 <b>Product:</b> %s\n"+
			"🏪 <b>Seller:</b> %s\n"+
			"💰 <b>Price:</b> %d → %d\n"+
			"📊 <b>Discount:</b> %d%% (save %d)\n"+
			"⚡ <b>Urgency:</b> %s",
		title,
		e.ProductName,
		e.SellerName,
		e.OldPrice,
		e.NewPrice,
		e.Percent,
		e.Savings(),
		e.Urgency,
	)
}

var urgencyRank = map[entity.Urgency]int{ //nolint:gochecknoglobals
	entity.UrgencyLow:      0,
	entity.UrgencyMedium:   1,
	entity.UrgencyHigh:     2,
	entity.UrgencyCritical: 3,
}

// AtLeast reports whether u is as urgent as floor.
func AtLeast(u, floor entity.Urgency) bool {
	return urgencyRank[u] >= urgencyRank[floor]
}
