package dto

import "time"

// DepositRequest starts a wallet top-up.
type DepositRequest struct {
	AmountCents int64  `json:"amount_cents"`
	PayCurrency string `json:"pay_currency,omitempty"` // crypto only
}

// DepositStartedResponse returns the provider redirect for a started top-up.
type DepositStartedResponse struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url"`
	Status      string `json:"status"`
}

// DepositResponse describes one top-up attempt in history listings.
type DepositResponse struct {
	Reference   string    `json:"reference"`
	Method      string    `json:"method"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
