package service

import (
	"context"
	"errors"

	"github.com/HiroyasuHigashida/sns-backend/internal/domain"
	"github.com/HiroyasuHigashida/sns-backend/internal/repo"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

// SocialService handles follow and like edges. Usernames are resolved here
// so handlers only deal with path parameters.
type SocialService struct {
	users repo.UserRepo
	graph repo.GraphRepo
}

// NewSocialService returns a new SocialService.
func NewSocialService(users repo.UserRepo, graph repo.GraphRepo) *SocialService {
	return &SocialService{users: users, graph: graph}
}

// Follow adds a follow edge to the user with the given username.
// Idempotent; following yourself is an error.
func (s *SocialService) Follow(ctx context.Context, followerID, username string) error {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return ErrSelfFollow
	}
	return s.graph.Follow(ctx, followerID, target.ID)
}

// Unfollow removes the follow edge if present. Unknown usernames are an
// error; a missing edge is not.
func (s *SocialService) Unfollow(ctx context.Context, followerID, username string) error {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	return s.graph.Unfollow(ctx, followerID, target.ID)
}

// IsFollowing reports whether the caller follows the user with the given
// username.
func (s *SocialService) IsFollowing(ctx context.Context, followerID, username string) (bool, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return false, err
	}
	return s.graph.IsFollowing(ctx, followerID, target.ID)
}

// Like adds the user to the post's like set. Idempotent.
func (s *SocialService) Like(ctx context.Context, postID, userID string) error {
	if err := s.graph.Like(ctx, postID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// Unlike removes the user from the post's like set. Idempotent.
func (s *SocialService) Unlike(ctx context.Context, postID, userID string) error {
	if err := s.graph.Unlike(ctx, postID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

func (s *SocialService) resolve(ctx context.Context, username string) (domain.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
