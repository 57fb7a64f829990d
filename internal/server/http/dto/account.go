package dto

import "time"

// AccountResponse describes one aged account listing.
type AccountResponse struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PostKarma    int        `json:"post_karma"`
	CommentKarma int        `json:"comment_karma"`
	TotalKarma   int        `json:"total_karma"`
	AgeYears     int        `json:"age_years"`
	ProfileURL   string     `json:"profile_url,omitempty"`
	Price        string     `json:"price"`
	Status       string     `json:"status"`
	SoldAt       *time.Time `json:"sold_at,omitempty"`
}

// CreateAccountRequest adds an aged account to the inventory.
type CreateAccountRequest struct {
	Username     string `json:"username"`
	PostKarma    int    `json:"post_karma"`
	CommentKarma int    `json:"comment_karma"`
	AgeYears     int    `json:"age_years"`
	ProfileURL   string `json:"profile_url"`
	Price        string `json:"price"`
}
