package repo

import (
	"errors"
	"sync"

	"github.com/HiroyasuHigashida/sns-backend/internal/domain"
)

var (
	// ErrNotFound is returned when a user or post does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail is returned when the email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
)

// DB is the process-wide in-memory store shared by all repositories.
// A single RWMutex serializes access, so multi-step sequences (uniqueness
// check then insert, post delete then like cleanup, post existence check
// then like insert) stay atomic with respect to concurrent handlers.
// Nothing survives a restart.
type DB struct {
	mu      sync.RWMutex
	users   map[string]domain.User         // user ID -> user
	posts   map[string]domain.Post         // post ID -> post
	follows map[string]map[string]struct{} // follower ID -> followee IDs
	likes   map[string]map[string]struct{} // post ID -> liker IDs
}

// NewDB returns an empty store.
func NewDB() *DB {
	return &DB{
		users:   make(map[string]domain.User),
		posts:   make(map[string]domain.Post),
		follows: make(map[string]map[string]struct{}),
		likes:   make(map[string]map[string]struct{}),
	}
}
