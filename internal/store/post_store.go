package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrPostExists   = errors.New("post already exists")
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidTitle = errors.New("invalid post title")
)

// Post is a single blog post. Title is the file name, Content is the file body.
type Post struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Summary is what a listing returns for each post.
type Summary struct {
	Title string `json:"title"`
}

// StorageError wraps a filesystem failure that is not an existence outcome
// (permissions, I/O, disk full).
type StorageError struct {
	Op    string
	Title string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Title, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type PostStore interface {
	CreatePost(ctx context.Context, post Post) error
	GetPost(ctx context.Context, title string) (Post, error)
	ListPosts(ctx context.Context) ([]Summary, error)
	UpdatePost(ctx context.Context, post Post) error
	DeletePost(ctx context.Context, title string) error
}
