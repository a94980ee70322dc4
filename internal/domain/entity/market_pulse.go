package entity

import "time"

type MarketPulsePoint struct {
	Timestamp        string `json:"timestamp"`
	TotalBuyers      int    `json:"totalBuyers"`
	AveragePrice     int64  `json:"averagePrice"`
	CompetitionLevel int    `json:"competitionLevel"`
	OfferCount       int    `json:"offerCount"`
}

type ActivityType string

const (
	ActivityNewBuyer         ActivityType = "new_buyer"
	ActivityPriceDrop        ActivityType = "price_drop"
	ActivityNewOffer         ActivityType = "new_offer"
	ActivityCompetitionStart ActivityType = "competition_start"
)

type MarketActivity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Message   string       `json:"message"`
	Category  string       `json:"category"`
	Impact    Urgency      `json:"impact"`
	Timestamp time.Time    `json:"timestamp"`
}

// Trend is the difference between the two newest pulse points.
type Trend struct {
	BuyerDelta int   `json:"buyerDelta"`
	PriceDelta int64 `json:"priceDelta"`
}

type MarketPulse struct {
	Points     []MarketPulsePoint `json:"points"`
	Activities []MarketActivity   `json:"activities"`
	Trend      Trend              `json:"trend"`
	Live       bool               `json:"live"`
}
