package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/HiroyasuHigashida/sns-backend/internal/domain"
	"github.com/HiroyasuHigashida/sns-backend/internal/repo"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidUsername    = errors.New("username can only contain letters, numbers, and underscores")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrUserNotFound       = errors.New("user not found")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// searchLimit caps user and post search results.
const searchLimit = 20

// Profile pairs a user with its follow counts, derived from the graph at
// read time.
type Profile struct {
	User           domain.User
	FollowersCount int
	FollowingCount int
}

// UserService handles registration, authentication and profiles.
type UserService struct {
	users repo.UserRepo
	graph repo.GraphRepo
}

// NewUserService returns a new UserService.
func NewUserService(users repo.UserRepo, graph repo.GraphRepo) *UserService {
	return &UserService{users: users, graph: graph}
}

// Register creates a new account with a bcrypt password digest. The
// username charset check runs on the raw input, so surrounding whitespace
// is rejected rather than stripped; field lengths are enforced at binding.
func (s *UserService) Register(ctx context.Context, username, email, password, name string) (domain.User, error) {
	if !usernamePattern.MatchString(username) {
		return domain.User{}, ErrInvalidUsername
	}
	// bcrypt rejects inputs over 72 bytes.
	if len(password) > 72 {
		return domain.User{}, ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Bio:          "",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return domain.User{}, ErrUsernameTaken
		}
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return u, nil
}

// Authenticate checks username and password; unknown usernames and digest
// mismatches are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetProfileByID returns the user with live follow counts.
func (s *UserService) GetProfileByID(ctx context.Context, id string) (Profile, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, err
	}
	return s.profile(ctx, u)
}

// GetProfileByUsername returns the user with live follow counts.
func (s *UserService) GetProfileByUsername(ctx context.Context, username string) (Profile, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, err
	}
	return s.profile(ctx, u)
}

// UpdateProfile overwrites the display name and bio of the given user.
// Callers pass the authenticated user's own ID; there is no cross-user
// update.
func (s *UserService) UpdateProfile(ctx context.Context, id, name, bio string) (Profile, error) {
	u, err := s.users.UpdateProfile(ctx, id, name, bio)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, err
	}
	return s.profile(ctx, u)
}

// Search returns users whose username or display name contains the query,
// case-insensitively. Queries shorter than two characters return nothing.
// Results follow the store's order (account creation time ascending) and
// are capped at 20.
func (s *UserService) Search(ctx context.Context, query string) ([]Profile, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(query) < 2 {
		return nil, nil
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	var results []Profile
	for _, u := range users {
		if !strings.Contains(strings.ToLower(u.Username), query) &&
			!strings.Contains(strings.ToLower(u.Name), query) {
			continue
		}
		p, err := s.profile(ctx, u)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
		if len(results) == searchLimit {
			break
		}
	}
	return results, nil
}

func (s *UserService) profile(ctx context.Context, u domain.User) (Profile, error) {
	followers, err := s.graph.FollowerCount(ctx, u.ID)
	if err != nil {
		return Profile{}, err
	}
	following, err := s.graph.FollowingCount(ctx, u.ID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: u, FollowersCount: followers, FollowingCount: following}, nil
}
