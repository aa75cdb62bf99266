package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var setupRouterOnce sync.Once

const testDir = "blogs"

// mockPostStore is a mock implementation of store.PostStore for failure paths.
type mockPostStore struct {
	err error
}

func (m *mockPostStore) CreatePost(ctx context.Context, post store.Post) error { return m.err }
func (m *mockPostStore) GetPost(ctx context.Context, title string) (store.Post, error) {
	return store.Post{}, m.err
}
func (m *mockPostStore) ListPosts(ctx context.Context) ([]store.Summary, error) { return nil, m.err }
func (m *mockPostStore) UpdatePost(ctx context.Context, post store.Post) error  { return m.err }
func (m *mockPostStore) DeletePost(ctx context.Context, title string) error     { return m.err }

// setupTestRouter creates a test Gin router in test mode with the post routes registered.
func setupTestRouter(postStore store.PostStore, opts ...HandlerOption) *gin.Engine {
	setupRouterOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})
	router := gin.New()
	NewHandler(postStore, opts...).RegisterRoutes(router)
	return router
}

// newFileRouter creates a router over an in-memory post directory.
func newFileRouter(t *testing.T) (*gin.Engine, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(testDir, 0o755))
	return setupTestRouter(store.NewFilePostStore(fsys, testDir)), fsys
}

// doRequest executes a request with an optional JSON body.
func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			panic(err) // Should never happen in tests with valid data
		}
		reader = bytes.NewReader(raw)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

// TestPostLifecycle walks one post through create, read, update and delete.
func TestPostLifecycle(t *testing.T) {
	router, _ := newFileRouter(t)

	w := doRequest(router, http.MethodGet, "/blogs/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "This post does not exist!", decodeError(t, w))

	w = doRequest(router, http.MethodPost, "/blogs", gin.H{"title": "hello", "content": "world"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Blog post created.", decodeMessage(t, w))

	w = doRequest(router, http.MethodGet, "/blogs/hello", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "world", w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))

	w = doRequest(router, http.MethodPost, "/blogs", gin.H{"title": "hello", "content": "different"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Blog post with this title already exists.", decodeError(t, w))

	w = doRequest(router, http.MethodPut, "/blogs/hello", gin.H{"content": "world2"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Blog post updated.", decodeMessage(t, w))

	w = doRequest(router, http.MethodGet, "/blogs/hello", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "world2", w.Body.String())

	w = doRequest(router, http.MethodDelete, "/blogs/hello", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Blog post deleted.", decodeMessage(t, w))

	w = doRequest(router, http.MethodGet, "/blogs/hello", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePost_Validation(t *testing.T) {
	tests := []struct {
		name            string
		body            any
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "empty title",
			body:            gin.H{"title": "", "content": "x"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Title and content are required.",
		},
		{
			name:            "missing title",
			body:            gin.H{"content": "x"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Title and content are required.",
		},
		{
			name:            "missing content",
			body:            gin.H{"title": "hello"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Title and content are required.",
		},
		{
			name:            "malformed json",
			body:            `{"title": "hello",`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Title and content are required.",
		},
		{
			name:            "path traversal title",
			body:            gin.H{"title": "../etc/passwd", "content": "x"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Title contains characters that are not allowed.",
		},
		{
			name:            "reserved title",
			body:            gin.H{"title": "..", "content": "x"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Title contains characters that are not allowed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, fsys := newFileRouter(t)

			w := doRequest(router, http.MethodPost, "/blogs", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMessage, decodeError(t, w))

			entries, err := afero.ReadDir(fsys, testDir)
			require.NoError(t, err)
			assert.Empty(t, entries, "no entry is created on validation failure")
		})
	}
}

func TestUpdatePost_Validation(t *testing.T) {
	router, _ := newFileRouter(t)

	w := doRequest(router, http.MethodPost, "/blogs", gin.H{"title": "hello", "content": "world"})
	require.Equal(t, http.StatusCreated, w.Code)

	for _, body := range []any{gin.H{}, gin.H{"content": ""}, `not json`} {
		w = doRequest(router, http.MethodPut, "/blogs/hello", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Content is required.", decodeError(t, w))
	}

	w = doRequest(router, http.MethodGet, "/blogs/hello", nil)
	assert.Equal(t, "world", w.Body.String(), "stored content is unchanged")
}

func TestMissingPost_NotFound(t *testing.T) {
	router, fsys := newFileRouter(t)

	w := doRequest(router, http.MethodPut, "/blogs/ghost", gin.H{"content": "boo"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "This post does not exist!", decodeError(t, w))

	exists, err := afero.Exists(fsys, testDir+"/ghost")
	require.NoError(t, err)
	assert.False(t, exists, "update never creates a post")

	w = doRequest(router, http.MethodDelete, "/blogs/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "This post does not exist!", decodeError(t, w))
}

func TestListPosts(t *testing.T) {
	router, _ := newFileRouter(t)

	w := doRequest(router, http.MethodGet, "/blogs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for _, title := range []string{"b", "a"} {
		w = doRequest(router, http.MethodPost, "/blogs", gin.H{"title": title, "content": "body of " + title})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doRequest(router, http.MethodGet, "/blogs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"title":"a"},{"title":"b"}]`, w.Body.String())
}

func TestStorageFailures(t *testing.T) {
	failing := &mockPostStore{err: &store.StorageError{
		Op:  "write",
		Err: &os.PathError{Op: "open", Path: "/srv/secret/blogs/hello", Err: os.ErrPermission},
	}}
	router := setupTestRouter(failing)

	tests := []struct {
		name            string
		method          string
		path            string
		body            any
		expectedMessage string
	}{
		{name: "create", method: http.MethodPost, path: "/blogs", body: gin.H{"title": "hello", "content": "world"}, expectedMessage: "Failed to create the blog post."},
		{name: "read", method: http.MethodGet, path: "/blogs/hello", expectedMessage: "Failed to read the blog post."},
		{name: "update", method: http.MethodPut, path: "/blogs/hello", body: gin.H{"content": "world"}, expectedMessage: "Failed to update the blog post."},
		{name: "delete", method: http.MethodDelete, path: "/blogs/hello", expectedMessage: "Failed to delete the blog post."},
		{name: "list", method: http.MethodGet, path: "/blogs", expectedMessage: "Failed to retrieve blog posts."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tt.expectedMessage, decodeError(t, w))
			assert.NotContains(t, w.Body.String(), "/srv/secret", "internal paths must not leak")
		})
	}
}

func TestCreatePost_ReadOnlyStorage(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(testDir, 0o755))
	router := setupTestRouter(store.NewFilePostStore(afero.NewReadOnlyFs(fsys), testDir))

	w := doRequest(router, http.MethodPost, "/blogs", gin.H{"title": "hello", "content": "world"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create the blog post.", decodeError(t, w))
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name           string
		opts           []HandlerOption
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no check configured",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			name:           "healthy storage",
			opts:           []HandlerOption{WithHealthCheck(func(context.Context) error { return nil })},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			name:           "storage unavailable",
			opts:           []HandlerOption{WithHealthCheck(func(context.Context) error { return errors.New("gone") })},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"storage unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(&mockPostStore{}, tt.opts...)

			w := doRequest(router, http.MethodGet, "/healthz", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestUnknownRoute_JSONError(t *testing.T) {
	router, _ := newFileRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "encoded slash in title", method: http.MethodGet, path: "/blogs/a%2Fb"},
		{name: "nested path", method: http.MethodDelete, path: "/blogs/a/b"},
		{name: "unknown resource", method: http.MethodGet, path: "/posts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			assert.Equal(t, "Not found.", decodeError(t, w))
		})
	}
}
