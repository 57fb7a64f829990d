package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the sale state of an aged Reddit account.
type AccountStatus string

const (
	AccountStatusAvailable AccountStatus = "available"
	AccountStatusSold      AccountStatus = "sold"
)

// RedditAccount is an aged account offered for sale from inventory.
type RedditAccount struct {
	ID           int64
	Username     string
	PostKarma    int
	CommentKarma int
	AgeYears     int
	ProfileURL   string
	Price        decimal.Decimal
	Status       AccountStatus
	SoldTo       *int64
	SoldAt       *time.Time
	CreatedAt    time.Time
}

// TotalKarma is the combined karma shown in listings.
func (a *RedditAccount) TotalKarma() int {
	return a.PostKarma + a.CommentKarma
}
