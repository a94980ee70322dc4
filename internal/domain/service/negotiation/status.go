package negotiation

import (
	"time"

	"gb_market/internal/domain/entity"
)

// StatusAt resolves the status of a negotiation at now. Success wins over an
// expired deadline.
func StatusAt(participants, target int, endsAt, now time.Time) entity.NegotiationStatus {
	switch {
	case target > 0 && participants >= target:
		return entity.NegotiationSuccess
	case !endsAt.IsZero() && !now.Before(endsAt):
		return entity.NegotiationFailed
	case participants >= target/2:
		return entity.NegotiationNegotiating
	default:
		return entity.NegotiationActive
	}
}
