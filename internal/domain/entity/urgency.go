package entity

// Urgency is a presentation tier derived from how deep a price cut is.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

func (u Urgency) String() string {
	return string(u)
}

// UrgencyFor maps a discount or drop percent to its tier. The same rule is
// used for flash deals and price updates.
func UrgencyFor(percent int) Urgency {
	switch {
	case percent > 50:
		return UrgencyCritical
	case percent > 35:
		return UrgencyHigh
	case percent >= 20:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}
