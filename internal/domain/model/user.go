package model

import "time"

// User is a registered storefront customer.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
