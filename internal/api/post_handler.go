package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/store"
	"github.com/gin-gonic/gin"
)

const (
	// storageTimeout bounds the filesystem work of a single request.
	storageTimeout = 5 * time.Second
)

const (
	msgCreated       = "Blog post created."
	msgUpdated       = "Blog post updated."
	msgDeleted       = "Blog post deleted."
	msgCreateInvalid = "Title and content are required."
	msgUpdateInvalid = "Content is required."
	msgBadTitle      = "Title contains characters that are not allowed."
	msgExists        = "Blog post with this title already exists."
	msgNotFound      = "This post does not exist!"
	msgNoRoute       = "Not found."
	msgCreateFailed  = "Failed to create the blog post."
	msgReadFailed    = "Failed to read the blog post."
	msgUpdateFailed  = "Failed to update the blog post."
	msgDeleteFailed  = "Failed to delete the blog post."
	msgListFailed    = "Failed to retrieve blog posts."
)

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type updatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgCreateInvalid})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storageTimeout)
	defer cancel()

	err := h.PostStore.CreatePost(ctx, store.Post{Title: req.Title, Content: req.Content})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, MessageResponse{Message: msgCreated})
	case errors.Is(err, store.ErrInvalidTitle):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgBadTitle})
	case errors.Is(err, store.ErrPostExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: msgExists})
	default:
		internalError(c, err, msgCreateFailed)
	}
}

// GetPost writes the stored content verbatim as text/plain.
func (h *Handler) GetPost(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storageTimeout)
	defer cancel()

	post, err := h.PostStore.GetPost(ctx, c.Param("title"))
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
			return
		}
		internalError(c, err, msgReadFailed)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(post.Content))
}

func (h *Handler) ListPosts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storageTimeout)
	defer cancel()

	posts, err := h.PostStore.ListPosts(ctx)
	if err != nil {
		internalError(c, err, msgListFailed)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) UpdatePost(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgUpdateInvalid})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storageTimeout)
	defer cancel()

	err := h.PostStore.UpdatePost(ctx, store.Post{Title: c.Param("title"), Content: req.Content})
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
			return
		}
		internalError(c, err, msgUpdateFailed)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msgUpdated})
}

func (h *Handler) DeletePost(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storageTimeout)
	defer cancel()

	err := h.PostStore.DeletePost(ctx, c.Param("title"))
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
			return
		}
		internalError(c, err, msgDeleteFailed)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msgDeleted})
}

// internalError records err for the request logger and answers with a
// generic message; OS errors carry paths and never reach the client.
func internalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}
