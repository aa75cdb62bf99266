package store

import (
	"fmt"
	"strings"
)

// MaxTitleLength is the longest title accepted, in bytes. It matches the
// common NAME_MAX limit so every valid title is a valid file name.
const MaxTitleLength = 255

// ValidateTitle reports whether title can be used as a file name inside the
// base directory. Titles are stored verbatim, so anything that would name a
// different directory entry than itself is rejected.
func ValidateTitle(title string) error {
	switch {
	case title == "":
		return fmt.Errorf("%w: empty", ErrInvalidTitle)
	case len(title) > MaxTitleLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidTitle, MaxTitleLength)
	case title == "." || title == "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidTitle, title)
	case strings.ContainsAny(title, "/\\\x00"):
		return fmt.Errorf("%w: contains a path separator or NUL", ErrInvalidTitle)
	}
	return nil
}
