// Package posts, service layer.
// Business logic for post CRUD, like/unlike, and comments. The service is
// exposed as an interface so the handlers can be tested against a stub
// without a database.
package posts

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/devconnect-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostService defines the operations on posts.
type PostService interface {
	CreatePost(ctx context.Context, userID int, req CreatePostRequest) (*Post, error)
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, idParam string) (*Post, error)
	DeletePost(ctx context.Context, userID int, idParam string) error
	LikePost(ctx context.Context, userID int, idParam string) ([]Like, error)
	UnlikePost(ctx context.Context, userID int, idParam string) (*Post, error)
	AddComment(ctx context.Context, userID int, idParam string, req AddCommentRequest) (*Post, error)
	RemoveComment(ctx context.Context, userID int, idParam, commentIDParam string) (*Post, error)
}

// postServiceImpl is the pgx-backed implementation of PostService.
type postServiceImpl struct {
	db *pgxpool.Pool
}

// NewPostService creates a new PostService.
func NewPostService(db *pgxpool.Pool) PostService {
	return &postServiceImpl{db: db}
}

// parsePostID maps a malformed path id to the same not-found error an unknown
// id produces, so clients cannot distinguish the two.
func parsePostID(idParam string) (int, error) {
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return 0, apperror.NewNotFoundError("Post not found", nil)
	}
	return id, nil
}

// CreatePost inserts a post carrying the author's current name and avatar.
// The snapshot read and the insert run in one transaction so the snapshot can
// never mix state from two different versions of the user row.
func (s *postServiceImpl) CreatePost(ctx context.Context, userID int, req CreatePostRequest) (*Post, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var name, avatar string
	err = tx.QueryRow(ctx, `SELECT name, avatar FROM users WHERE id = $1`, userID).Scan(&name, &avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load author", err)
	}

	var postID int
	err = tx.QueryRow(ctx, `
		INSERT INTO posts (user_id, text, name, avatar)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, userID, req.Text, name, avatar).Scan(&postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewDatabaseError("failed to commit post", err)
	}

	return s.loadPost(ctx, postID)
}

// ListPosts returns all posts, most recent first.
func (s *postServiceImpl) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, text, name, avatar, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate posts", err)
	}

	for i := range posts {
		if err := s.attachReactions(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// GetPost returns one post by id.
func (s *postServiceImpl) GetPost(ctx context.Context, idParam string) (*Post, error) {
	postID, err := parsePostID(idParam)
	if err != nil {
		return nil, err
	}
	return s.loadPost(ctx, postID)
}

// DeletePost removes a post. Only the author may delete it; likes and
// comments go with it via the schema's cascade.
func (s *postServiceImpl) DeletePost(ctx context.Context, userID int, idParam string) error {
	postID, err := parsePostID(idParam)
	if err != nil {
		return err
	}

	var authorID int
	err = s.db.QueryRow(ctx, `SELECT user_id FROM posts WHERE id = $1`, postID).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFoundError("Post not found", nil)
		}
		return apperror.NewDatabaseError("failed to load post", err)
	}
	if authorID != userID {
		return apperror.NewForbiddenError("User not authorized", nil)
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID); err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	return nil
}

// LikePost head-inserts a like marker for the caller and returns the post's
// likes. The unique (post_id, user_id) constraint is the single source of
// truth for "already liked": two racing likes cannot both succeed.
func (s *postServiceImpl) LikePost(ctx context.Context, userID int, idParam string) ([]Like, error) {
	postID, err := parsePostID(idParam)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	_, err = s.db.Exec(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("Post has already been liked", nil)
		}
		return nil, apperror.NewDatabaseError("failed to like post", err)
	}

	return s.loadLikes(ctx, postID)
}

// UnlikePost removes the caller's like marker and returns the post.
func (s *postServiceImpl) UnlikePost(ctx context.Context, userID int, idParam string) (*Post, error) {
	postID, err := parsePostID(idParam)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to unlike post", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NewConflictError("Post has not yet been liked", nil)
	}

	return s.loadPost(ctx, postID)
}

// AddComment head-inserts a comment with the commenter snapshot and returns
// the post. Snapshot read and insert share a transaction, as in CreatePost.
func (s *postServiceImpl) AddComment(ctx context.Context, userID int, idParam string, req AddCommentRequest) (*Post, error) {
	postID, err := parsePostID(idParam)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var name, avatar string
	err = tx.QueryRow(ctx, `SELECT name, avatar FROM users WHERE id = $1`, userID).Scan(&name, &avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load commenter", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO post_comments (post_id, user_id, text, name, avatar)
		VALUES ($1, $2, $3, $4, $5)`, postID, userID, req.Text, name, avatar)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to add comment", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewDatabaseError("failed to commit comment", err)
	}

	return s.loadPost(ctx, postID)
}

// RemoveComment deletes a comment by its own id. The comment is located by the
// target id, not by the caller's user id, so a user with several comments on
// one post always removes exactly the one addressed. Only the comment's
// author may remove it.
func (s *postServiceImpl) RemoveComment(ctx context.Context, userID int, idParam, commentIDParam string) (*Post, error) {
	postID, err := parsePostID(idParam)
	if err != nil {
		return nil, err
	}

	commentID, err := strconv.Atoi(commentIDParam)
	if err != nil {
		return nil, apperror.NewNotFoundError("Comment does not exist", nil)
	}

	var commentAuthor int
	err = s.db.QueryRow(ctx, `
		SELECT user_id FROM post_comments WHERE id = $1 AND post_id = $2`, commentID, postID).Scan(&commentAuthor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Comment does not exist", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load comment", err)
	}
	if commentAuthor != userID {
		return nil, apperror.NewForbiddenError("User not authorized", nil)
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM post_comments WHERE id = $1`, commentID); err != nil {
		return nil, apperror.NewDatabaseError("failed to remove comment", err)
	}

	return s.loadPost(ctx, postID)
}

// --- Database helper functions ---

func (s *postServiceImpl) ensurePostExists(ctx context.Context, postID int) error {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return apperror.NewDatabaseError("failed to check post", err)
	}
	if !exists {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	return nil
}

// loadPost fetches one post with its likes and comments.
func (s *postServiceImpl) loadPost(ctx context.Context, postID int) (*Post, error) {
	var p Post
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, text, name, avatar, created_at
		FROM posts WHERE id = $1`, postID).Scan(
		&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load post", err)
	}

	if err := s.attachReactions(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// loadLikes returns a post's like markers, newest first.
func (s *postServiceImpl) loadLikes(ctx context.Context, postID int) ([]Like, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id FROM post_likes WHERE post_id = $1 ORDER BY id DESC`, postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load likes", err)
	}
	defer rows.Close()

	likes := []Like{}
	for rows.Next() {
		var l Like
		if err := rows.Scan(&l.ID, &l.UserID); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan like", err)
		}
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate likes", err)
	}
	return likes, nil
}

// attachReactions loads likes and comments onto a post, both newest first.
func (s *postServiceImpl) attachReactions(ctx context.Context, p *Post) error {
	likes, err := s.loadLikes(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Likes = likes

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, text, name, avatar, created_at
		FROM post_comments WHERE post_id = $1 ORDER BY id DESC`, p.ID)
	if err != nil {
		return apperror.NewDatabaseError("failed to load comments", err)
	}
	defer rows.Close()

	p.Comments = []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.Text, &c.Name, &c.Avatar, &c.CreatedAt); err != nil {
			return apperror.NewDatabaseError("failed to scan comment", err)
		}
		p.Comments = append(p.Comments, c)
	}
	if err := rows.Err(); err != nil {
		return apperror.NewDatabaseError("failed to iterate comments", err)
	}
	return nil
}
