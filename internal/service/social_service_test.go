package service

import (
	"context"
	"errors"
	"testing"
)

func TestFollowRules(t *testing.T) {
	users, _, social := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	mustRegister(t, users, "bob")

	if err := social.Follow(ctx, alice.ID, "alice"); !errors.Is(err, ErrSelfFollow) {
		t.Errorf("self-follow: expected ErrSelfFollow, got %v", err)
	}
	if err := social.Follow(ctx, alice.ID, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown followee: expected ErrUserNotFound, got %v", err)
	}
	if err := social.Follow(ctx, alice.ID, "bob"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	following, err := social.IsFollowing(ctx, alice.ID, "bob")
	if err != nil || !following {
		t.Fatalf("IsFollowing = %v, %v; want true", following, err)
	}
}

func TestFollowIdempotent(t *testing.T) {
	users, _, social := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	bob := mustRegister(t, users, "bob")

	for i := 0; i < 3; i++ {
		if err := social.Follow(ctx, alice.ID, "bob"); err != nil {
			t.Fatalf("follow #%d: %v", i, err)
		}
	}
	p, err := users.GetProfileByID(ctx, bob.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.FollowersCount != 1 {
		t.Errorf("expected exactly one edge, got %d followers", p.FollowersCount)
	}
}

func TestUnfollow(t *testing.T) {
	users, _, social := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	mustRegister(t, users, "bob")

	// removing a missing edge is not an error
	if err := social.Unfollow(ctx, alice.ID, "bob"); err != nil {
		t.Fatalf("unfollow without edge: %v", err)
	}
	// but an unknown username is
	if err := social.Unfollow(ctx, alice.ID, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	if err := social.Follow(ctx, alice.ID, "bob"); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := social.Unfollow(ctx, alice.ID, "bob"); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	following, err := social.IsFollowing(ctx, alice.ID, "bob")
	if err != nil || following {
		t.Errorf("IsFollowing = %v, %v; want false", following, err)
	}
}

func TestLikeUnlike(t *testing.T) {
	users, posts, social := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	bob := mustRegister(t, users, "bob")

	v, err := posts.Create(ctx, alice.ID, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := social.Like(ctx, "no-such-post", bob.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("like unknown post: expected ErrPostNotFound, got %v", err)
	}
	if err := social.Unlike(ctx, "no-such-post", bob.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("unlike unknown post: expected ErrPostNotFound, got %v", err)
	}

	// liking twice leaves one edge
	for i := 0; i < 2; i++ {
		if err := social.Like(ctx, v.Post.ID, bob.ID); err != nil {
			t.Fatalf("like #%d: %v", i, err)
		}
	}
	got, err := posts.Get(ctx, v.Post.ID, bob.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LikesCount != 1 || !got.LikedByUser {
		t.Errorf("after likes: %+v", got)
	}

	if err := social.Unlike(ctx, v.Post.ID, bob.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	got, err = posts.Get(ctx, v.Post.ID, bob.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LikesCount != 0 || got.LikedByUser {
		t.Errorf("after unlike: %+v", got)
	}
}
