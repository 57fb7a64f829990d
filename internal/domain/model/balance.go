package model

import "github.com/shopspring/decimal"

// BalanceSummary aggregates wallet state for a user.
type BalanceSummary struct {
	Current decimal.Decimal
	Spent   decimal.Decimal
}
