package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")

	// ErrInvalidOrderInput wraps request validation failures for new orders.
	ErrInvalidOrderInput = errors.New("invalid order input")

	// ErrInvalidTransition is returned by the data-access layer when a status
	// write would violate the order transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrOrderNotCancellable: order is terminal or was never accepted by the
	// vendor, so there is nothing to cancel remotely.
	ErrOrderNotCancellable = errors.New("order cannot be cancelled")

	// ErrOrderRefunded: the vendor rejected the submission and the charge was
	// automatically returned to the wallet.
	ErrOrderRefunded = errors.New("order failed and was refunded")

	// ErrCompensationFailed: the vendor rejected the submission and the
	// automatic refund failed too; funds are at risk until an operator
	// reconciles the order. Must never be reported as a routine failure.
	ErrCompensationFailed = errors.New("order failed and could not be refunded automatically")

	// ErrAccountUnavailable: the aged account was already sold or withdrawn.
	ErrAccountUnavailable = errors.New("account is not available")
)
