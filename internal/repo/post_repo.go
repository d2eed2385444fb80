package repo

import (
	"context"
	"sort"

	"github.com/HiroyasuHigashida/sns-backend/internal/domain"
)

// PostRepo provides post storage.
type PostRepo interface {
	Create(ctx context.Context, p domain.Post) error
	GetByID(ctx context.Context, id string) (domain.Post, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Post, error)
}

// MemPostRepo implements PostRepo on the in-memory DB.
type MemPostRepo struct {
	db *DB
}

// NewMemPostRepo returns a new MemPostRepo.
func NewMemPostRepo(db *DB) *MemPostRepo {
	return &MemPostRepo{db: db}
}

// Create inserts a new post.
func (r *MemPostRepo) Create(ctx context.Context, p domain.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.posts[p.ID] = p
	return nil
}

// GetByID returns the post by ID, or ErrNotFound.
func (r *MemPostRepo) GetByID(ctx context.Context, id string) (domain.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.posts[id]
	if !ok {
		return domain.Post{}, ErrNotFound
	}
	return p, nil
}

// Delete removes the post and discards its like set in the same critical
// section, so a re-created post with the same content starts at zero likes.
func (r *MemPostRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.posts, id)
	delete(r.db.likes, id)
	return nil
}

// List returns all posts ordered by creation time descending, ID as
// tie-break, so callers see a stable newest-first order.
func (r *MemPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	posts := make([]domain.Post, 0, len(r.db.posts))
	for _, p := range r.db.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}
