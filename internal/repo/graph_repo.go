package repo

import "context"

// GraphRepo provides the directed follow graph and per-post like sets.
// Edge inserts and removals are idempotent: an edge either exists or it
// does not.
type GraphRepo interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	Following(ctx context.Context, userID string) (map[string]struct{}, error)
	FollowerCount(ctx context.Context, userID string) (int, error)
	FollowingCount(ctx context.Context, userID string) (int, error)

	Like(ctx context.Context, postID, userID string) error
	Unlike(ctx context.Context, postID, userID string) error
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
	LikeCount(ctx context.Context, postID string) (int, error)
}

// MemGraphRepo implements GraphRepo on the in-memory DB.
type MemGraphRepo struct {
	db *DB
}

// NewMemGraphRepo returns a new MemGraphRepo.
func NewMemGraphRepo(db *DB) *MemGraphRepo {
	return &MemGraphRepo{db: db}
}

// Follow adds the edge follower -> followee. Adding an existing edge is a
// no-op.
func (r *MemGraphRepo) Follow(ctx context.Context, followerID, followeeID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	set, ok := r.db.follows[followerID]
	if !ok {
		set = make(map[string]struct{})
		r.db.follows[followerID] = set
	}
	set[followeeID] = struct{}{}
	return nil
}

// Unfollow removes the edge follower -> followee. Removing a missing edge
// is a no-op.
func (r *MemGraphRepo) Unfollow(ctx context.Context, followerID, followeeID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if set, ok := r.db.follows[followerID]; ok {
		delete(set, followeeID)
	}
	return nil
}

// IsFollowing reports whether the edge follower -> followee exists.
func (r *MemGraphRepo) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	_, ok := r.db.follows[followerID][followeeID]
	return ok, nil
}

// Following returns a copy of the set of users the given user follows.
func (r *MemGraphRepo) Following(ctx context.Context, userID string) (map[string]struct{}, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make(map[string]struct{}, len(r.db.follows[userID]))
	for id := range r.db.follows[userID] {
		out[id] = struct{}{}
	}
	return out, nil
}

// FollowerCount counts edges pointing at the user by scanning every
// follower's edge set. O(users), acceptable at this scale.
func (r *MemGraphRepo) FollowerCount(ctx context.Context, userID string) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	n := 0
	for _, set := range r.db.follows {
		if _, ok := set[userID]; ok {
			n++
		}
	}
	return n, nil
}

// FollowingCount returns the size of the user's own edge set.
func (r *MemGraphRepo) FollowingCount(ctx context.Context, userID string) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.follows[userID]), nil
}

// Like adds the user to the post's like set. The post existence check and
// the insert share one critical section so a like can never attach to a
// post deleted concurrently. Liking twice is a no-op.
func (r *MemGraphRepo) Like(ctx context.Context, postID, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.posts[postID]; !ok {
		return ErrNotFound
	}
	set, ok := r.db.likes[postID]
	if !ok {
		set = make(map[string]struct{})
		r.db.likes[postID] = set
	}
	set[userID] = struct{}{}
	return nil
}

// Unlike removes the user from the post's like set. Removing a missing
// like is a no-op; an unknown post is an error.
func (r *MemGraphRepo) Unlike(ctx context.Context, postID, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.posts[postID]; !ok {
		return ErrNotFound
	}
	if set, ok := r.db.likes[postID]; ok {
		delete(set, userID)
	}
	return nil
}

// HasLiked reports whether the user has liked the post.
func (r *MemGraphRepo) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	_, ok := r.db.likes[postID][userID]
	return ok, nil
}

// LikeCount returns the size of the post's like set.
func (r *MemGraphRepo) LikeCount(ctx context.Context, postID string) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.likes[postID]), nil
}
