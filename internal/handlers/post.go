package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HiroyasuHigashida/sns-backend/internal/auth"
	"github.com/HiroyasuHigashida/sns-backend/internal/dto"
	"github.com/HiroyasuHigashida/sns-backend/internal/service"
)

// PostHandler handles posts, the timeline, likes and post search.
type PostHandler struct {
	posts  *service.PostService
	social *service.SocialService
}

// NewPostHandler returns a new PostHandler.
func NewPostHandler(posts *service.PostService, social *service.SocialService) *PostHandler {
	return &PostHandler{posts: posts, social: social}
}

// Create godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreatePostRequest  true  "Post body"
// @Success      200   {object}  dto.PostResponse
// @Failure      400   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := h.posts.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}
	c.JSON(http.StatusOK, postToResponse(v))
}

// Get godoc
// @Summary      Get a post by ID
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post ID"
// @Success      200  {object}  dto.PostResponse
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	// gin's router cannot mount /posts/timeline next to /posts/:id, so the
	// timeline route is resolved here.
	id := c.Param("id")
	if id == "timeline" {
		h.Timeline(c)
		return
	}
	v, err := h.posts.Get(c.Request.Context(), id, auth.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	c.JSON(http.StatusOK, postToResponse(v))
}

// Timeline godoc
// @Summary      Reverse-chronological feed of own and followed accounts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.PostResponse
// @Router       /posts/timeline [get]
func (h *PostHandler) Timeline(c *gin.Context) {
	views, err := h.posts.Timeline(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
		return
	}
	c.JSON(http.StatusOK, postsToResponse(views))
}

// Delete godoc
// @Summary      Delete an own post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	err := h.posts.Delete(c.Request.Context(), c.Param("id"), auth.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		case errors.Is(err, service.ErrNotPostAuthor):
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to delete this post"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Post deleted successfully"})
}

// Like godoc
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *PostHandler) Like(c *gin.Context) {
	err := h.social.Like(c.Request.Context(), c.Param("id"), auth.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to like post"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Post liked successfully"})
}

// Unlike godoc
// @Summary      Unlike a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [delete]
func (h *PostHandler) Unlike(c *gin.Context) {
	err := h.social.Unlike(c.Request.Context(), c.Param("id"), auth.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unlike post"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Post unliked successfully"})
}

// Search godoc
// @Summary      Search posts by content
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Param        q  query     string  true  "Substring query (min 2 chars)"
// @Success      200  {array}  dto.PostResponse
// @Router       /search/posts [get]
func (h *PostHandler) Search(c *gin.Context) {
	views, err := h.posts.Search(c.Request.Context(), c.Query("q"), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, postsToResponse(views))
}

func postToResponse(v service.PostView) dto.PostResponse {
	return dto.PostResponse{
		ID:          v.Post.ID,
		UserID:      v.Post.UserID,
		Username:    v.Post.Username,
		Name:        v.Post.Name,
		Content:     v.Post.Content,
		CreatedAt:   v.Post.CreatedAt,
		LikesCount:  v.LikesCount,
		LikedByUser: v.LikedByUser,
	}
}

func postsToResponse(views []service.PostView) []dto.PostResponse {
	out := make([]dto.PostResponse, 0, len(views))
	for _, v := range views {
		out = append(out, postToResponse(v))
	}
	return out
}
