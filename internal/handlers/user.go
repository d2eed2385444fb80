package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HiroyasuHigashida/sns-backend/internal/auth"
	"github.com/HiroyasuHigashida/sns-backend/internal/dto"
	"github.com/HiroyasuHigashida/sns-backend/internal/service"
)

// UserHandler handles profiles, the follow graph and user search.
type UserHandler struct {
	users  *service.UserService
	social *service.SocialService
}

// NewUserHandler returns a new UserHandler.
func NewUserHandler(users *service.UserService, social *service.SocialService) *UserHandler {
	return &UserHandler{users: users, social: social}
}

// Get godoc
// @Summary      Get a user by username ("me" for the caller)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  dto.UserResponse
// @Failure      404       {object}  map[string]string
// @Router       /users/{username} [get]
func (h *UserHandler) Get(c *gin.Context) {
	// gin's router cannot mount /users/me next to /users/:username, so the
	// "me" alias is resolved here.
	username := c.Param("username")
	var (
		p   service.Profile
		err error
	)
	if username == "me" {
		p, err = h.users.GetProfileByID(c.Request.Context(), auth.UserIDFromContext(c))
	} else {
		p, err = h.users.GetProfileByUsername(c.Request.Context(), username)
	}
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, profileToResponse(p))
}

// Update godoc
// @Summary      Update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                    true  "Must be \"me\""
// @Param        body      body      dto.UpdateProfileRequest  true  "Profile fields"
// @Success      200       {object}  dto.UserResponse
// @Failure      403       {object}  map[string]string
// @Router       /users/{username} [put]
func (h *UserHandler) Update(c *gin.Context) {
	if c.Param("username") != "me" {
		c.JSON(http.StatusForbidden, gin.H{"error": "can only update your own profile"})
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.users.UpdateProfile(c.Request.Context(), auth.UserIDFromContext(c), req.Name, req.Bio)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, profileToResponse(p))
}

// Follow godoc
// @Summary      Follow a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username to follow"
// @Success      200       {object}  dto.MessageResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /users/{username}/follow [post]
func (h *UserHandler) Follow(c *gin.Context) {
	err := h.social.Follow(c.Request.Context(), auth.UserIDFromContext(c), c.Param("username"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to follow"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User followed successfully"})
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username to unfollow"
// @Success      200       {object}  dto.MessageResponse
// @Failure      404       {object}  map[string]string
// @Router       /users/{username}/follow [delete]
func (h *UserHandler) Unfollow(c *gin.Context) {
	err := h.social.Unfollow(c.Request.Context(), auth.UserIDFromContext(c), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unfollow"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User unfollowed successfully"})
}

// IsFollowing godoc
// @Summary      Whether the caller follows a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {boolean} boolean
// @Failure      404       {object}  map[string]string
// @Router       /users/{username}/following [get]
func (h *UserHandler) IsFollowing(c *gin.Context) {
	following, err := h.social.IsFollowing(c.Request.Context(), auth.UserIDFromContext(c), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check follow state"})
		return
	}
	c.JSON(http.StatusOK, following)
}

// Search godoc
// @Summary      Search users by username or display name
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Param        q  query     string  true  "Substring query (min 2 chars)"
// @Success      200  {array}  dto.UserResponse
// @Router       /search/users [get]
func (h *UserHandler) Search(c *gin.Context) {
	profiles, err := h.users.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	out := make([]dto.UserResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, profileToResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func profileToResponse(p service.Profile) dto.UserResponse {
	return dto.UserResponse{
		ID:             p.User.ID,
		Username:       p.User.Username,
		Email:          p.User.Email,
		Name:           p.User.Name,
		Bio:            p.User.Bio,
		CreatedAt:      p.User.CreatedAt,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
	}
}
