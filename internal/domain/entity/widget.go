package entity

import "time"

type WidgetKind string

const (
	WidgetFlashDeals       WidgetKind = "flash_deals"
	WidgetPriceDrops       WidgetKind = "price_drops"
	WidgetMarketPulse      WidgetKind = "market_pulse"
	WidgetGroupNegotiation WidgetKind = "group_negotiation"
)

func (k WidgetKind) String() string {
	return string(k)
}

func WidgetKinds() []WidgetKind {
	return []WidgetKind{WidgetFlashDeals, WidgetPriceDrops, WidgetMarketPulse, WidgetGroupNegotiation}
}

func (k WidgetKind) Valid() bool {
	switch k {
	case WidgetFlashDeals, WidgetPriceDrops, WidgetMarketPulse, WidgetGroupNegotiation:
		return true
	}

	return false
}

type Widget struct {
	ID        string     `json:"id"`
	Kind      WidgetKind `json:"kind"`
	MountedAt time.Time  `json:"mountedAt"`
	Paused    bool       `json:"paused"`
}
