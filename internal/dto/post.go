package dto

import "time"

// CreatePostRequest is the JSON body for POST /posts.
type CreatePostRequest struct {
	Content string `json:"content" binding:"required,min=1,max=280"`
}

// PostResponse is a post annotated for the requesting user. Username and
// name are the author snapshot from creation time.
type PostResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	LikesCount  int       `json:"likes_count"`
	LikedByUser bool      `json:"liked_by_user"`
}

// MessageResponse is the body for operations that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}
