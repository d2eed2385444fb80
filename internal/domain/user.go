package domain

import "time"

// User is the domain entity for an account. Follower and following counts
// are derived from the follow graph on every read, never stored here.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Name         string
	Bio          string
	CreatedAt    time.Time
}
