package dto

// BalanceResponse represents wallet state.
type BalanceResponse struct {
	Current string `json:"current"`
	Spent   string `json:"spent"`
}

// CreditRequest is the admin balance credit payload.
type CreditRequest struct {
	UserID int64  `json:"user_id"`
	Amount string `json:"amount"`
}
