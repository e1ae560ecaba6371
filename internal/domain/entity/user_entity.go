package entity

import "time"

// User holds a registered account. Password carries the bcrypt hash and is
// excluded from JSON so it can never leak into a response body.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
