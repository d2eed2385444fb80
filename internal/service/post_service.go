package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/HiroyasuHigashida/sns-backend/internal/domain"
	"github.com/HiroyasuHigashida/sns-backend/internal/repo"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("not authorized to delete this post")
)

// PostView is a post annotated for the viewing user.
type PostView struct {
	Post        domain.Post
	LikesCount  int
	LikedByUser bool
}

// PostService handles post creation, deletion, timeline and search.
type PostService struct {
	posts repo.PostRepo
	users repo.UserRepo
	graph repo.GraphRepo
}

// NewPostService returns a new PostService.
func NewPostService(posts repo.PostRepo, users repo.UserRepo, graph repo.GraphRepo) *PostService {
	return &PostService{posts: posts, users: users, graph: graph}
}

// Create stores a new post, snapshotting the author's current username and
// display name. The snapshot is not rewritten by later profile edits.
func (s *PostService) Create(ctx context.Context, authorID, content string) (PostView, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return PostView{}, ErrUserNotFound
		}
		return PostView{}, err
	}
	p := domain.Post{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Username:  author.Username,
		Name:      author.Name,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return PostView{}, err
	}
	return PostView{Post: p}, nil
}

// Get returns the post annotated for the viewer.
func (s *PostService) Get(ctx context.Context, postID, viewerID string) (PostView, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return PostView{}, ErrPostNotFound
		}
		return PostView{}, err
	}
	return s.annotate(ctx, p, viewerID)
}

// Delete removes the post and its like set. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, postID, requesterID string) error {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if p.UserID != requesterID {
		return ErrNotPostAuthor
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// Timeline returns every post authored by the user or an account the user
// follows, newest first.
func (s *PostService) Timeline(ctx context.Context, userID string) ([]PostView, error) {
	following, err := s.graph.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	following[userID] = struct{}{}
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	var views []PostView
	for _, p := range posts {
		if _, ok := following[p.UserID]; !ok {
			continue
		}
		v, err := s.annotate(ctx, p, userID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Search returns posts whose content contains the query,
// case-insensitively, newest first, capped at 20. Queries shorter than two
// characters return nothing.
func (s *PostService) Search(ctx context.Context, query, viewerID string) ([]PostView, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(query) < 2 {
		return nil, nil
	}
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	var views []PostView
	for _, p := range posts {
		if !strings.Contains(strings.ToLower(p.Content), query) {
			continue
		}
		v, err := s.annotate(ctx, p, viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
		if len(views) == searchLimit {
			break
		}
	}
	return views, nil
}

func (s *PostService) annotate(ctx context.Context, p domain.Post, viewerID string) (PostView, error) {
	count, err := s.graph.LikeCount(ctx, p.ID)
	if err != nil {
		return PostView{}, err
	}
	liked, err := s.graph.HasLiked(ctx, p.ID, viewerID)
	if err != nil {
		return PostView{}, err
	}
	return PostView{Post: p, LikesCount: count, LikedByUser: liked}, nil
}
