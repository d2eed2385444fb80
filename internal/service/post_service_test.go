package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	users, posts, _ := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	v, err := posts.Create(ctx, alice.ID, "first post")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.Post.Username != "alice" || v.Post.Name != "alice" {
		t.Errorf("snapshot wrong: %+v", v.Post)
	}
	if v.LikesCount != 0 || v.LikedByUser {
		t.Errorf("new post should start unliked: %+v", v)
	}

	// later profile edits do not rewrite the snapshot
	if _, err := users.UpdateProfile(ctx, alice.ID, "Alice Liddell", ""); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	got, err := posts.Get(ctx, v.Post.ID, alice.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Post.Name != "alice" {
		t.Errorf("snapshot was rewritten to %q", got.Post.Name)
	}
}

func TestDeletePostAuthorization(t *testing.T) {
	users, posts, _ := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	bob := mustRegister(t, users, "bob")

	v, err := posts.Create(ctx, alice.ID, "mine")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := posts.Delete(ctx, v.Post.ID, bob.ID); !errors.Is(err, ErrNotPostAuthor) {
		t.Fatalf("expected ErrNotPostAuthor, got %v", err)
	}
	if err := posts.Delete(ctx, "no-such-post", alice.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if err := posts.Delete(ctx, v.Post.ID, alice.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if _, err := posts.Get(ctx, v.Post.ID, alice.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("post still readable after delete: %v", err)
	}
}

func TestDeletePostDiscardsLikesAndSearch(t *testing.T) {
	users, posts, social := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	bob := mustRegister(t, users, "bob")

	v, err := posts.Create(ctx, alice.ID, "ephemeral thought")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := social.Like(ctx, v.Post.ID, bob.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := posts.Delete(ctx, v.Post.ID, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	results, err := posts.Search(ctx, "ephemeral", bob.ID)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("deleted post still in search results")
	}

	// same content, fresh post: the old like set must not leak in
	again, err := posts.Create(ctx, alice.ID, "ephemeral thought")
	if err != nil {
		t.Fatalf("re-create: %v", err)
	}
	got, err := posts.Get(ctx, again.Post.ID, bob.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LikesCount != 0 || got.LikedByUser {
		t.Errorf("re-created post inherited likes: %+v", got)
	}
}

func TestTimeline(t *testing.T) {
	users, posts, social := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	bob := mustRegister(t, users, "bob")
	carol := mustRegister(t, users, "carol")

	if err := social.Follow(ctx, alice.ID, "bob"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	if _, err := posts.Create(ctx, bob.ID, "from bob"); err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := posts.Create(ctx, carol.ID, "from carol"); err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	own, err := posts.Create(ctx, alice.ID, "from alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	views, err := posts.Timeline(ctx, alice.ID)
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 posts (own + bob's), got %d", len(views))
	}
	// newest first
	if views[0].Post.ID != own.Post.ID || views[1].Post.Content != "from bob" {
		t.Errorf("unexpected order: %q, %q", views[0].Post.Content, views[1].Post.Content)
	}
	for _, v := range views {
		if v.Post.Content == "from carol" {
			t.Errorf("unfollowed user's post in timeline")
		}
	}
}

func TestTimelineLikeAnnotations(t *testing.T) {
	users, posts, social := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	bob := mustRegister(t, users, "bob")

	if err := social.Follow(ctx, alice.ID, "bob"); err != nil {
		t.Fatalf("follow: %v", err)
	}
	v, err := posts.Create(ctx, bob.ID, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := social.Like(ctx, v.Post.ID, bob.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	views, err := posts.Timeline(ctx, alice.ID)
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 post, got %d", len(views))
	}
	if views[0].LikesCount != 1 || views[0].LikedByUser {
		t.Errorf("expected likes_count=1 liked_by_user=false, got %+v", views[0])
	}
}

func TestSearchPosts(t *testing.T) {
	users, posts, _ := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	if _, err := posts.Create(ctx, alice.ID, "Go is fun"); err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := posts.Create(ctx, alice.ID, "going for a walk"); err != nil {
		t.Fatalf("create: %v", err)
	}

	results, err := posts.Search(ctx, "GO", alice.ID)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	if results[0].Post.Content != "going for a walk" {
		t.Errorf("expected newest first, got %q", results[0].Post.Content)
	}

	// the two-character minimum counts characters, not bytes
	for _, q := range []string{"g", "あ"} {
		short, err := posts.Search(ctx, q, alice.ID)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(short) != 0 {
			t.Errorf("query %q should return nothing, got %d", q, len(short))
		}
	}
}

func TestSearchPostsCap(t *testing.T) {
	users, posts, _ := newTestEnv()
	ctx := context.Background()

	alice := mustRegister(t, users, "alice")
	for i := 0; i < searchLimit+5; i++ {
		if _, err := posts.Create(ctx, alice.ID, "repeated content"); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	results, err := posts.Search(ctx, "repeated", alice.ID)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != searchLimit {
		t.Errorf("expected %d results, got %d", searchLimit, len(results))
	}
}
