package flashdeal

import (
	"github.com/rs/xid"

	"gb_market/internal/domain/entity"
	"gb_market/internal/domain/value"
	"gb_market/pkg/randx"
)

// Generator is the pure random constructor for flash deals.
type Generator struct {
	cfg     Config
	catalog value.Catalog
	src     randx.Source
}

func NewGenerator(cfg Config, catalog value.Catalog, src randx.Source) Generator {
	return Generator{
		cfg:     cfg,
		catalog: catalog,
		src:     src,
	}
}

func (g Generator) NewDeal() entity.FlashDeal {
	discount := randx.Between(g.src, g.cfg.MinDiscount, g.cfg.MaxDiscount)
	original := int64(randx.Between(g.src, int(g.cfg.MinPrice), int(g.cfg.MaxPrice)))
	maxBuyers := randx.Between(g.src, g.cfg.MinBuyers, g.cfg.MaxBuyers)

	return entity.FlashDeal{
		ID:              xid.New().String(),
		ProductName:     randx.Pick(g.src, g.catalog.Products),
		SellerName:      randx.Pick(g.src, g.catalog.Sellers).Name,
		OriginalPrice:   original,
		FlashPrice:      entity.DiscountedPrice(original, discount),
		DiscountPercent: discount,
		TimeRemaining:   randx.Between(g.src, g.cfg.MinDurationSec, g.cfg.MaxDurationSec),
		BuyersJoined:    g.src.IntN(maxBuyers/2 + 1),
		MaxBuyers:       maxBuyers,
		Urgency:         entity.UrgencyFor(discount),
	}
}

// Decay advances one deal by one second. Buyers may join while more than
// cutoff seconds are left, never beyond MaxBuyers.
func Decay(deal entity.FlashDeal, joinChance float64, cutoff int, src randx.Source) entity.FlashDeal {
	if deal.TimeRemaining > cutoff && deal.BuyersJoined < deal.MaxBuyers && randx.Chance(src, joinChance) {
		deal.BuyersJoined++
	}

	deal.TimeRemaining = max(deal.TimeRemaining-1, 0)

	return deal
}
