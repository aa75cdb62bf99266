package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const postFileMode = 0o644

// FilePostStore keeps one file per post in a single flat directory.
type FilePostStore struct {
	fs    afero.Fs
	dir   string
	locks *titleLocks
}

func NewFilePostStore(fsys afero.Fs, dir string) *FilePostStore {
	return &FilePostStore{
		fs:    fsys,
		dir:   dir,
		locks: newTitleLocks(),
	}
}

// Dir returns the base directory the store reads and writes.
func (s *FilePostStore) Dir() string {
	return s.dir
}

// CreatePost writes a new post. The open is exclusive, so a concurrent
// create of the same title from another process still yields ErrPostExists.
func (s *FilePostStore) CreatePost(ctx context.Context, post Post) error {
	if err := ValidateTitle(post.Title); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := s.locks.Lock(post.Title)
	defer unlock()

	path := s.path(post.Title)
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, postFileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrPostExists
		}
		return &StorageError{Op: "create", Title: post.Title, Err: err}
	}

	if err := writeAndClose(f, post.Content); err != nil {
		// Don't leave a partial post behind.
		_ = s.fs.Remove(path)
		return &StorageError{Op: "create", Title: post.Title, Err: err}
	}

	return nil
}

func (s *FilePostStore) GetPost(ctx context.Context, title string) (Post, error) {
	if ValidateTitle(title) != nil {
		return Post{}, ErrPostNotFound
	}
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}

	unlock := s.locks.RLock(title)
	defer unlock()

	if err := s.checkExists("read", title); err != nil {
		return Post{}, err
	}

	content, err := afero.ReadFile(s.fs, s.path(title))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Post{}, ErrPostNotFound
		}
		return Post{}, &StorageError{Op: "read", Title: title, Err: err}
	}

	return Post{Title: title, Content: string(content)}, nil
}

// ListPosts returns one summary per post in the base directory, sorted by
// title. An entry is a post only if it is a regular file (not a symlink)
// whose name passes ValidateTitle, the same rule checkExists applies.
func (s *FilePostStore) ListPosts(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// afero.ReadDir sorts entries by name.
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if !entry.Mode().IsRegular() || ValidateTitle(entry.Name()) != nil {
			continue
		}
		summaries = append(summaries, Summary{Title: entry.Name()})
	}

	return summaries, nil
}

// UpdatePost replaces the content of an existing post. The new content is
// written to a temporary file next to the post and renamed over it, so a
// failed write leaves the old content in place.
func (s *FilePostStore) UpdatePost(ctx context.Context, post Post) error {
	if ValidateTitle(post.Title) != nil {
		return ErrPostNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := s.locks.Lock(post.Title)
	defer unlock()

	if err := s.checkExists("update", post.Title); err != nil {
		return err
	}

	// The backslash makes the temp name an invalid title, so listings skip it.
	tmp, err := afero.TempFile(s.fs, s.dir, `\update-*`)
	if err != nil {
		return &StorageError{Op: "update", Title: post.Title, Err: err}
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, post.Content); err != nil {
		_ = s.fs.Remove(tmpName)
		return &StorageError{Op: "update", Title: post.Title, Err: err}
	}
	if err := s.fs.Chmod(tmpName, postFileMode); err != nil {
		_ = s.fs.Remove(tmpName)
		return &StorageError{Op: "update", Title: post.Title, Err: err}
	}
	if err := s.fs.Rename(tmpName, s.path(post.Title)); err != nil {
		_ = s.fs.Remove(tmpName)
		return &StorageError{Op: "update", Title: post.Title, Err: err}
	}

	return nil
}

func (s *FilePostStore) DeletePost(ctx context.Context, title string) error {
	if ValidateTitle(title) != nil {
		return ErrPostNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := s.locks.Lock(title)
	defer unlock()

	// Remove would happily delete an empty subdirectory.
	if err := s.checkExists("delete", title); err != nil {
		return err
	}

	if err := s.fs.Remove(s.path(title)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrPostNotFound
		}
		return &StorageError{Op: "delete", Title: title, Err: err}
	}

	return nil
}

// checkExists returns ErrPostNotFound unless title names a regular file.
// Symlinks are not followed: a link is not a post, wherever it points.
func (s *FilePostStore) checkExists(op, title string) error {
	info, err := s.lstat(s.path(title))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrPostNotFound
		}
		return &StorageError{Op: op, Title: title, Err: err}
	}
	if !info.Mode().IsRegular() {
		return ErrPostNotFound
	}
	return nil
}

func (s *FilePostStore) lstat(path string) (os.FileInfo, error) {
	if lstater, ok := s.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}
	return s.fs.Stat(path)
}

func (s *FilePostStore) path(title string) string {
	return filepath.Join(s.dir, title)
}

func writeAndClose(f afero.File, content string) error {
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
