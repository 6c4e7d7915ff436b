package domain

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsStaff      bool
	CreatedAt    time.Time
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID  int64
	Email   string
	IsStaff bool
}
