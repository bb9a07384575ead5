// Package posts, entity definitions.
// A Post carries a snapshot of its author's name and avatar taken at creation
// time. The snapshot is an immutable value embedded in the entity: it is not
// re-synced when the user later changes their name or avatar, and it survives
// deletion of the account. Comments snapshot the commenter the same way.
package posts

import "time"

// Like is one like marker on a post. A given user appears at most once among
// a post's likes.
type Like struct {
	ID     int `json:"id"`
	UserID int `json:"user"`
}

// Comment is one comment on a post, with the denormalized commenter snapshot.
type Comment struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// Post is a short text post. Likes and comments are returned newest-first.
type Post struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}
