// Package posts, Data Transfer Objects.
package posts

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Text string `json:"text" validate:"required"`
}

// AddCommentRequest is the payload for commenting on a post.
type AddCommentRequest struct {
	Text string `json:"text" validate:"required"`
}
