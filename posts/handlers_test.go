package posts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/auth"
)

// stubPostService lets handler tests script service responses without a
// database.
type stubPostService struct {
	post  *Post
	posts []Post
	likes []Like
	err   error

	gotUserID    int
	gotIDParam   string
	gotText      string
	gotCommentID string
}

func (s *stubPostService) CreatePost(_ context.Context, userID int, req CreatePostRequest) (*Post, error) {
	s.gotUserID, s.gotText = userID, req.Text
	return s.post, s.err
}

func (s *stubPostService) ListPosts(_ context.Context) ([]Post, error) {
	return s.posts, s.err
}

func (s *stubPostService) GetPost(_ context.Context, idParam string) (*Post, error) {
	s.gotIDParam = idParam
	return s.post, s.err
}

func (s *stubPostService) DeletePost(_ context.Context, userID int, idParam string) error {
	s.gotUserID, s.gotIDParam = userID, idParam
	return s.err
}

func (s *stubPostService) LikePost(_ context.Context, userID int, idParam string) ([]Like, error) {
	s.gotUserID, s.gotIDParam = userID, idParam
	return s.likes, s.err
}

func (s *stubPostService) UnlikePost(_ context.Context, userID int, idParam string) (*Post, error) {
	s.gotUserID, s.gotIDParam = userID, idParam
	return s.post, s.err
}

func (s *stubPostService) AddComment(_ context.Context, userID int, idParam string, req AddCommentRequest) (*Post, error) {
	s.gotUserID, s.gotIDParam, s.gotText = userID, idParam, req.Text
	return s.post, s.err
}

func (s *stubPostService) RemoveComment(_ context.Context, userID int, idParam, commentIDParam string) (*Post, error) {
	s.gotUserID, s.gotIDParam, s.gotCommentID = userID, idParam, commentIDParam
	return s.post, s.err
}

// newTestRouter mounts the post handlers behind a fake auth layer that
// injects the given user id, mirroring what the token middleware does.
func newTestRouter(service PostService, userID int) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.NewContextWithUserID(req.Context(), userID)))
		})
	})
	NewHandlers(service).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreatePost(t *testing.T) {
	stub := &stubPostService{post: &Post{ID: 1, UserID: 7, Text: "hello", Likes: []Like{}, Comments: []Comment{}}}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodPost, "/", `{"text":"hello"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 7, stub.gotUserID)
	assert.Equal(t, "hello", stub.gotText)
	assert.Contains(t, rec.Body.String(), `"text":"hello"`)
}

func TestCreatePostMissingText(t *testing.T) {
	stub := &stubPostService{}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodPost, "/", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"text is required"}`, rec.Body.String())
	assert.Zero(t, stub.gotUserID, "service must not be called on validation failure")
}

func TestCreatePostMalformedBody(t *testing.T) {
	router := newTestRouter(&stubPostService{}, 7)

	rec := doRequest(t, router, http.MethodPost, "/", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPosts(t *testing.T) {
	stub := &stubPostService{posts: []Post{{ID: 2, Text: "newer"}, {ID: 1, Text: "older"}}}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "newer")
	assert.Contains(t, rec.Body.String(), "older")
}

func TestGetPostNotFound(t *testing.T) {
	stub := &stubPostService{err: apperror.NewNotFoundError("Post not found", nil)}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodGet, "/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Post not found"}`, rec.Body.String())
	assert.Equal(t, "999", stub.gotIDParam)
}

func TestDeletePost(t *testing.T) {
	stub := &stubPostService{}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodDelete, "/3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"Post deleted"}`, rec.Body.String())
	assert.Equal(t, 7, stub.gotUserID)
	assert.Equal(t, "3", stub.gotIDParam)
}

func TestDeletePostForbidden(t *testing.T) {
	stub := &stubPostService{err: apperror.NewForbiddenError("User not authorized", nil)}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodDelete, "/3", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"User not authorized"}`, rec.Body.String())
}

func TestLikePost(t *testing.T) {
	stub := &stubPostService{likes: []Like{{ID: 5, UserID: 7}}}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodPut, "/like/3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":5,"user":7}]`, rec.Body.String())
}

func TestLikePostTwice(t *testing.T) {
	stub := &stubPostService{err: apperror.NewConflictError("Post has already been liked", nil)}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodPut, "/like/3", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Post has already been liked"}`, rec.Body.String())
}

func TestUnlikePostNotLiked(t *testing.T) {
	stub := &stubPostService{err: apperror.NewConflictError("Post has not yet been liked", nil)}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodPut, "/unlike/3", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Post has not yet been liked"}`, rec.Body.String())
}

func TestAddComment(t *testing.T) {
	stub := &stubPostService{post: &Post{ID: 3, Comments: []Comment{{ID: 9, Text: "nice"}}}}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodPost, "/comments/3", `{"text":"nice"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "3", stub.gotIDParam)
	assert.Equal(t, "nice", stub.gotText)
}

func TestAddCommentMissingText(t *testing.T) {
	router := newTestRouter(&stubPostService{}, 7)

	rec := doRequest(t, router, http.MethodPost, "/comments/3", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"text is required"}`, rec.Body.String())
}

func TestRemoveComment(t *testing.T) {
	stub := &stubPostService{post: &Post{ID: 3, Comments: []Comment{}}}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodDelete, "/comments/3/9", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", stub.gotIDParam)
	assert.Equal(t, "9", stub.gotCommentID)
}

func TestRemoveCommentAbsent(t *testing.T) {
	stub := &stubPostService{err: apperror.NewNotFoundError("Comment does not exist", nil)}
	router := newTestRouter(stub, 7)

	rec := doRequest(t, router, http.MethodDelete, "/comments/3/9", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Comment does not exist"}`, rec.Body.String())
}
