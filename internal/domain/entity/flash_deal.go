package entity

import "fmt"

type FlashDeal struct {
	ID              string  `json:"id"`
	ProductName     string  `json:"productName"`
	SellerName      string  `json:"sellerName"`
	OriginalPrice   int64   `json:"originalPrice"`
	FlashPrice      int64   `json:"flashPrice"`
	DiscountPercent int     `json:"discountPercent"`
	TimeRemaining   int     `json:"timeRemaining"` // seconds
	BuyersJoined    int     `json:"buyersJoined"`
	MaxBuyers       int     `json:"maxBuyers"`
	Urgency         Urgency `json:"urgencyLevel"`
}

// DiscountedPrice is floor(original * (1 - percent/100)).
func DiscountedPrice(original int64, percent int) int64 {
	return original * int64(100-percent) / 100
}

func (d FlashDeal) Expired() bool {
	return d.TimeRemaining <= 0
}

func (d FlashDeal) Savings() int64 {
	return d.OriginalPrice - d.FlashPrice
}

// Countdown renders the remaining time as mm:ss.
func (d FlashDeal) Countdown() string {
	remaining := max(d.TimeRemaining, 0)

	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}

// FillPercent is the share of seats already taken, 0..100.
func (d FlashDeal) FillPercent() int {
	if d.MaxBuyers <= 0 {
		return 0
	}

	return d.BuyersJoined * 100 / d.MaxBuyers
}

// FlashDealBoard is the view of the flash deal widget.
type FlashDealBoard struct {
	Current *FlashDeal  `json:"currentDeal"`
	Deals   []FlashDeal `json:"deals"`
}
