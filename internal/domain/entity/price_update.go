package entity

import "time"

type PriceUpdate struct {
	ID            string    `json:"id"`
	ProductName   string    `json:"productName"`
	SellerID      string    `json:"sellerId"`
	SellerName    string    `json:"sellerName"`
	OldPrice      int64     `json:"oldPrice"`
	NewPrice      int64     `json:"newPrice"`
	DropPercent   int       `json:"dropPercent"`
	ChangePercent float64   `json:"changePercent"`
	BuyerCount    int       `json:"buyerCount"`
	Urgency       Urgency   `json:"urgencyLevel"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (p PriceUpdate) Savings() int64 {
	return p.OldPrice - p.NewPrice
}

type PriceDropFeed struct {
	Updates []PriceUpdate `json:"updates"`
	Paused  bool          `json:"paused"`
}
