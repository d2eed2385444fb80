package repo

import (
	"context"
	"sort"

	"github.com/HiroyasuHigashida/sns-backend/internal/domain"
)

// UserRepo provides user storage.
type UserRepo interface {
	Create(ctx context.Context, u domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateProfile(ctx context.Context, id, name, bio string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// MemUserRepo implements UserRepo on the in-memory DB.
type MemUserRepo struct {
	db *DB
}

// NewMemUserRepo returns a new MemUserRepo.
func NewMemUserRepo(db *DB) *MemUserRepo {
	return &MemUserRepo{db: db}
}

// Create inserts a new user. The uniqueness scan and the insert run inside
// one critical section, so two concurrent registrations of the same
// username or email cannot both succeed.
func (r *MemUserRepo) Create(ctx context.Context, u domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Username == u.Username {
			return ErrDuplicateUsername
		}
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	r.db.users[u.ID] = u
	return nil
}

// GetByID returns the user by ID, or ErrNotFound.
func (r *MemUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return u, nil
}

// GetByUsername returns the user with the given username, or ErrNotFound.
// Lookup is a linear scan; acceptable at this scale.
func (r *MemUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, ErrNotFound
}

// UpdateProfile overwrites the mutable profile fields and returns the
// updated user, or ErrNotFound.
func (r *MemUserRepo) UpdateProfile(ctx context.Context, id, name, bio string) (domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	u.Name = name
	u.Bio = bio
	r.db.users[id] = u
	return u, nil
}

// List returns all users ordered by creation time ascending, ID as
// tie-break, so iteration order is deterministic for a given store state.
func (r *MemUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	users := make([]domain.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}
