package dto

import "time"

// UpvoteOrderRequest describes a vote order payload.
type UpvoteOrderRequest struct {
	Link     string  `json:"link"`
	Service  int     `json:"service"`
	Quantity int     `json:"quantity"`
	Speed    float64 `json:"speed"`
}

// CommentOrderRequest describes a comment order payload.
type CommentOrderRequest struct {
	Link    string `json:"link"`
	Content string `json:"content"`
}

// OrderResponse describes one order in listings and submission replies.
type OrderResponse struct {
	ID              int64      `json:"id"`
	Kind            string     `json:"kind"`
	Link            string     `json:"link"`
	Service         string     `json:"service,omitempty"`
	Quantity        int        `json:"quantity"`
	Speed           string     `json:"speed,omitempty"`
	Amount          string     `json:"amount"`
	Status          string     `json:"status"`
	VotesDelivered  int        `json:"votes_delivered"`
	LastStatusCheck *time.Time `json:"last_status_check,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// SubmitOrderResponse wraps a submission outcome with its user message.
type SubmitOrderResponse struct {
	Order    OrderResponse `json:"order"`
	Deferred bool          `json:"deferred,omitempty"`
	Message  string        `json:"message"`
}

// RefreshResponse reports one status-check outcome.
type RefreshResponse struct {
	Updated        bool   `json:"updated"`
	Status         string `json:"status"`
	VotesDelivered int    `json:"votes_delivered"`
	Reason         string `json:"reason,omitempty"`
	RetryAfterSec  int    `json:"retry_after_seconds,omitempty"`
}

// BulkRefreshResponse reports a bulk reconciliation pass.
type BulkRefreshResponse struct {
	Updated       int    `json:"updated"`
	Skipped       int    `json:"skipped"`
	Failed        int    `json:"failed"`
	RetryAfterSec int    `json:"retry_after_seconds,omitempty"`
	Message       string `json:"message"`
}

// SetStatusRequest is the admin order status override payload.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}
