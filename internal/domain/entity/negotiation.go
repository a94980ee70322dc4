package entity

import "time"

type NegotiationStatus string

const (
	NegotiationActive      NegotiationStatus = "active"
	NegotiationNegotiating NegotiationStatus = "negotiating"
	NegotiationSuccess     NegotiationStatus = "success"
	NegotiationFailed      NegotiationStatus = "failed"
)

func (s NegotiationStatus) Final() bool {
	return s == NegotiationSuccess || s == NegotiationFailed
}

type PriceSample struct {
	Timestamp    time.Time `json:"timestamp"`
	Price        int64     `json:"price"`
	Participants int       `json:"participants"`
}

type Join struct {
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

type GroupNegotiation struct {
	ProductName        string            `json:"productName"`
	TargetPrice        int64             `json:"targetPrice"`
	CurrentPrice       int64             `json:"currentPrice"`
	Participants       int               `json:"participantCount"`
	TargetParticipants int               `json:"targetParticipants"`
	Status             NegotiationStatus `json:"status"`
	PriceHistory       []PriceSample     `json:"priceHistory"`
	RecentJoins        []Join            `json:"recentJoins"`
	EndsAt             time.Time         `json:"endsAt"`
	FetchedAt          time.Time         `json:"fetchedAt"`
}

// Progress is the share of the participant target reached, 0..100.
func (g GroupNegotiation) Progress() int {
	if g.TargetParticipants <= 0 {
		return 0
	}

	return min(g.Participants*100/g.TargetParticipants, 100)
}

type GroupNegotiationView struct {
	Data      *GroupNegotiation `json:"data"`
	Loading   bool              `json:"loading"`
	LastError string            `json:"lastError,omitempty"`
}
