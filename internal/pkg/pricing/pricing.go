package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/votemart/votemart/internal/domain/model"
)

// Speed tiers offered by the vendor, expressed as votes per day (slow tiers)
// or votes per hour-fraction codes (express tiers, values >= 12).
var speedTiers = map[float64]string{
	0.0414: "1 vote/day",
	0.0828: "2 votes/day",
	0.1242: "3 votes/day",
	0.1656: "4 votes/day",
	0.207:  "5 votes/day",
	0.2484: "6 votes/day",
	12:     "1 vote/6 minutes",
	30:     "1 vote/2 minutes",
	60:     "1 vote/minute",
	120:    "2 votes/minute",
	180:    "3 votes/minute",
	240:    "4 votes/minute",
	300:    "5 votes/minute",
}

const expressThreshold = 12

var (
	postVoteUnit      = decimal.RequireFromString("0.10")
	commentVoteUnit   = decimal.RequireFromString("0.08")
	commentOrderPrice = decimal.RequireFromString("1.50")
	expressMultiplier = decimal.RequireFromString("1.25")
)

// KnownSpeed reports whether the value is a recognized delivery tier.
func KnownSpeed(speed float64) bool {
	_, ok := speedTiers[speed]
	return ok
}

// SpeedLabel returns the human label for a tier, empty when unknown.
func SpeedLabel(speed float64) string {
	return speedTiers[speed]
}

// UnitPrice returns the price of a single vote for the service and tier.
// Express tiers carry a 25% surcharge.
func UnitPrice(service model.Service, speed float64) decimal.Decimal {
	unit := postVoteUnit
	if service == model.ServiceCommentUpvote || service == model.ServiceCommentDownvote {
		unit = commentVoteUnit
	}
	if speed >= expressThreshold {
		unit = unit.Mul(expressMultiplier)
	}
	return unit
}

// Quote computes the full charge for a vote order.
func Quote(service model.Service, speed float64, quantity int) decimal.Decimal {
	return UnitPrice(service, speed).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// CommentQuote is the flat charge for one posted comment.
func CommentQuote() decimal.Decimal {
	return commentOrderPrice
}
