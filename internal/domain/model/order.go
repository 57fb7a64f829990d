package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind separates vote orders from comment orders.
type OrderKind string

const (
	OrderKindUpvote  OrderKind = "upvote"
	OrderKindComment OrderKind = "comment"
)

// Service enumerates vote service codes understood by the fulfillment vendor.
type Service int

const (
	ServicePostUpvote      Service = 1
	ServicePostDownvote    Service = 2
	ServiceCommentUpvote   Service = 3
	ServiceCommentDownvote Service = 4
)

// Valid reports whether the code is one the vendor accepts.
func (s Service) Valid() bool {
	return s >= ServicePostUpvote && s <= ServiceCommentDownvote
}

func (s Service) String() string {
	switch s {
	case ServicePostUpvote:
		return "Post upvotes"
	case ServicePostDownvote:
		return "Post downvotes"
	case ServiceCommentUpvote:
		return "Comment upvotes"
	case ServiceCommentDownvote:
		return "Comment downvotes"
	default:
		return "Unknown service"
	}
}

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	// OrderStatusPending: created and paid, not yet handed to the vendor.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusPendingAPISubmission: vendor was unreachable; submission is
	// deferred for operator reprocessing, funds stay debited.
	OrderStatusPendingAPISubmission OrderStatus = "PENDING_API_SUBMISSION"
	// OrderStatusAPISubmissionFailed: vendor rejected the order and the
	// automatic refund also failed; needs manual reconciliation.
	OrderStatusAPISubmissionFailed OrderStatus = "API_SUBMISSION_FAILED"
	// OrderStatusSubmitted: vendor accepted the order.
	OrderStatusSubmitted OrderStatus = "SUBMITTED_TO_API"
	// OrderStatusInProgress: vendor reports delivery underway.
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// orderTransitions is the closed transition table. Self-transitions are
// allowed for the states the reconciler rewrites on every progress update.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {
		OrderStatusSubmitted,
		OrderStatusPendingAPISubmission,
		OrderStatusAPISubmissionFailed,
		OrderStatusCancelled,
	},
	OrderStatusPendingAPISubmission: {
		OrderStatusSubmitted,
		OrderStatusAPISubmissionFailed,
		OrderStatusCancelled,
	},
	OrderStatusAPISubmissionFailed: {
		OrderStatusCancelled,
	},
	OrderStatusSubmitted: {
		OrderStatusSubmitted,
		OrderStatusInProgress,
		OrderStatusCompleted,
		OrderStatusCancelled,
	},
	OrderStatusInProgress: {
		OrderStatusInProgress,
		OrderStatusCompleted,
		OrderStatusCancelled,
	},
}

// Known reports whether the value belongs to the closed status set.
func (s OrderStatus) Known() bool {
	switch s {
	case OrderStatusPending, OrderStatusPendingAPISubmission, OrderStatusAPISubmissionFailed,
		OrderStatusSubmitted, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo checks the transition table.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether a user may request cancellation from this state.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusSubmitted || s == OrderStatusInProgress
}

// Order is a paid engagement order placed against the user's wallet.
type Order struct {
	ID              int64
	UserID          int64
	Kind            OrderKind
	Link            string
	Service         Service // vote orders only
	Content         string  // comment orders only
	Quantity        int
	Speed           float64
	Amount          decimal.Decimal
	Status          OrderStatus
	ExternalOrderID *string
	VotesDelivered  int
	LastStatusCheck *time.Time
	ErrorMessage    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Tracked reports whether the vendor knows this order yet.
func (o *Order) Tracked() bool {
	return o.ExternalOrderID != nil && *o.ExternalOrderID != ""
}
