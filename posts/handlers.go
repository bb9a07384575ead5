// Package posts is responsible for the short-update feed: post CRUD, likes,
// and comments. This file is the controller layer; it registers its routes on
// the already-authenticated sub-router handed over from main.
package posts

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/auth"
)

var validate = validator.New()

// Handlers handles HTTP requests for posts.
type Handlers struct {
	service PostService
}

// NewHandlers creates a new posts Handlers.
func NewHandlers(service PostService) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the post API routes on a chi sub-router.
// Every route here requires the auth gate, which the caller applies to the
// group before mounting.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Post("/", h.createPost)
	router.Get("/", h.listPosts)
	router.Get("/{id}", h.getPost)
	router.Delete("/{id}", h.deletePost)
	router.Put("/like/{id}", h.likePost)
	router.Put("/unlike/{id}", h.unlikePost)
	router.Post("/comments/{id}", h.addComment)
	router.Delete("/comments/{id}/{comment_id}", h.removeComment)
}

// createPost godoc
// @Summary Create a post
// @Description Snapshots the author's current name and avatar into the post.
// @Tags posts
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param postBody body posts.CreatePostRequest true "Post text"
// @Success 201 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse "text missing"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/posts [post]
func (h *Handlers) createPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		auth.WriteError(w, r, apperror.FromValidation(err))
		return
	}

	post, err := h.service.CreatePost(r.Context(), userID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, post)
}

// listPosts godoc
// @Summary List all posts, most recent first
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Success 200 {array} posts.Post
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/posts [get]
func (h *Handlers) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, posts)
}

// getPost godoc
// @Summary Get a post by id
// @Description A malformed id is reported as not found, never as a server error.
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post id"
// @Success 200 {object} posts.Post
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/{id} [get]
func (h *Handlers) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, post)
}

// deletePost godoc
// @Summary Delete an own post
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} apperror.ErrorResponse "Caller is not the author"
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/{id} [delete]
func (h *Handlers) deletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
		return
	}

	if err := h.service.DeletePost(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, map[string]string{"msg": "Post deleted"})
}

// likePost godoc
// @Summary Like a post
// @Description A second like by the same user is rejected.
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post id"
// @Success 200 {array} posts.Like
// @Failure 400 {object} apperror.ErrorResponse "Post has already been liked"
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/like/{id} [put]
func (h *Handlers) likePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
		return
	}

	likes, err := h.service.LikePost(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, likes)
}

// unlikePost godoc
// @Summary Remove an own like from a post
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post id"
// @Success 200 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse "Post has not yet been liked"
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/unlike/{id} [put]
func (h *Handlers) unlikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
		return
	}

	post, err := h.service.UnlikePost(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, post)
}

// addComment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post id"
// @Param commentBody body posts.AddCommentRequest true "Comment text"
// @Success 201 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse "text missing"
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/comments/{id} [post]
func (h *Handlers) addComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		auth.WriteError(w, r, apperror.FromValidation(err))
		return
	}

	post, err := h.service.AddComment(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, post)
}

// removeComment godoc
// @Summary Remove an own comment from a post
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post id"
// @Param comment_id path string true "Comment id"
// @Success 200 {object} posts.Post
// @Failure 403 {object} apperror.ErrorResponse "Caller is not the comment's author"
// @Failure 404 {object} apperror.ErrorResponse "Comment does not exist"
// @Router /api/posts/comments/{id}/{comment_id} [delete]
func (h *Handlers) removeComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context, middleware issue?", nil))
		return
	}

	post, err := h.service.RemoveComment(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "comment_id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, post)
}
