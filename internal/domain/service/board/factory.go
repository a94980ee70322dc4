package board

import (
	"context"

	"gb_market/internal/domain"
	"gb_market/internal/domain/entity"
	"gb_market/internal/domain/service/flashdeal"
	"gb_market/internal/domain/service/negotiation"
	"gb_market/internal/domain/service/pricedrop"
	"gb_market/internal/domain/service/pulse"
	"gb_market/internal/domain/value"
	"gb_market/internal/worker"
	"gb_market/pkg/errcodes"
	"gb_market/pkg/randx"
)

type Widget interface {
	Kind() entity.WidgetKind
	Mount(ctx context.Context, ticks worker.TickSource)
	Unmount()
	View() any
}

type Pausable interface {
	Pause(ctx context.Context)
	Resume(ctx context.Context)
	Paused() bool
}

type Factory interface {
	New(kind entity.WidgetKind, src randx.Source) (Widget, error)
}

type FactoryFunc func(kind entity.WidgetKind, src randx.Source) (Widget, error)

func (f FactoryFunc) New(kind entity.WidgetKind, src randx.Source) (Widget, error) {
	return f(kind, src)
}

// Widgets builds the four simulation widgets from their configs.
type Widgets struct {
	Catalog     value.Catalog
	FlashDeals  flashdeal.Config
	PriceDrops  pricedrop.Config
	Pulse       pulse.Config
	Negotiation negotiation.Config
	Mock        negotiation.MockConfig

	// Fetcher overrides the synthetic negotiation source when set.
	Fetcher     negotiation.Fetcher
	OnFlashDeal func(context.Context, entity.FlashDeal)
	OnPriceDrop func(context.Context, entity.PriceUpdate)
}

func DefaultWidgets(catalog value.Catalog) Widgets {
	return Widgets{
		Catalog:     catalog,
		FlashDeals:  flashdeal.DefaultConfig(),
		PriceDrops:  pricedrop.DefaultConfig(),
		Pulse:       pulse.DefaultConfig(),
		Negotiation: negotiation.DefaultConfig(),
		Mock:        negotiation.DefaultMockConfig(),
	}
}

func (f Widgets) New(kind entity.WidgetKind, src randx.Source) (Widget, error) {
	switch kind {
	case entity.WidgetFlashDeals:
		return flashdeal.New(f.FlashDeals, f.Catalog, src).WithListener(f.OnFlashDeal), nil
	case entity.WidgetPriceDrops:
		return pricedrop.New(f.PriceDrops, f.Catalog, src).WithListener(f.OnPriceDrop), nil
	case entity.WidgetMarketPulse:
		return pulse.New(f.Pulse, f.Catalog, src), nil
	case entity.WidgetGroupNegotiation:
		fetcher := f.Fetcher
		if fetcher == nil {
			fetcher = negotiation.NewMockFetcher(f.Mock, f.Catalog, src)
		}

		return negotiation.New(f.Negotiation, fetcher), nil
	}

	return nil, domain.NewError(errcodes.InvalidWidgetKind, "unknown widget kind: "+kind.String())
}
