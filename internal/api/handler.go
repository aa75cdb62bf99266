package api

import (
	"context"
	"net/http"

	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/store"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of a successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthCheck reports whether the backing storage is usable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	store.PostStore
	healthCheck HealthCheck
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHealthCheck sets the check behind GET /healthz. Without it the
// endpoint always reports ok.
func WithHealthCheck(check HealthCheck) HandlerOption {
	return func(h *Handler) {
		h.healthCheck = check
	}
}

func NewHandler(postStore store.PostStore, opts ...HandlerOption) *Handler {
	h := &Handler{
		PostStore: postStore,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/blogs", h.CreatePost)
	router.GET("/blogs/:title", h.GetPost)
	router.GET("/blogs", h.ListPosts)
	router.PUT("/blogs/:title", h.UpdatePost)
	router.DELETE("/blogs/:title", h.DeletePost)

	router.GET("/healthz", h.Health)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNoRoute})
	})
}

// Health reports whether the post directory can be read.
func (h *Handler) Health(c *gin.Context) {
	if h.healthCheck != nil {
		if err := h.healthCheck(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "storage unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
