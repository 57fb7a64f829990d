package model

import (
	"time"

	"github.com/google/uuid"
)

// DepositMethod is the payment rail used to fund the wallet.
type DepositMethod string

const (
	DepositMethodCard   DepositMethod = "card"
	DepositMethodCrypto DepositMethod = "crypto"
)

// DepositStatus tracks a top-up through the external payment provider.
// Completion is reconciled out-of-band (webhook/admin), never by this service.
type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "pending"
	DepositStatusCompleted DepositStatus = "completed"
	DepositStatusFailed    DepositStatus = "failed"
)

// Deposit is a wallet top-up routed through Stripe or NowPayments.
type Deposit struct {
	ID          int64
	UserID      int64
	Reference   uuid.UUID
	Method      DepositMethod
	AmountCents int64
	Currency    string
	ProviderID  string
	Status      DepositStatus
	CreatedAt   time.Time
}
