package domain

import "time"

// Post carries a snapshot of the author's username and display name taken
// at creation time; later profile edits do not rewrite existing posts.
type Post struct {
	ID        string
	UserID    string
	Username  string
	Name      string
	Content   string
	CreatedAt time.Time
}
