package book

import (
	"errors"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Query defines filters for listing books. Empty fields are ignored.
type Query struct {
	Title       string
	PublishedAt string
}

// AuthorName identifies a candidate author by name.
type AuthorName struct {
	FName string
	LName string
}

// NewBook is the input for creating a book. Its authors are resolved by name.
type NewBook struct {
	Title       string
	PublishedAt string
	Authors     []AuthorName
}

// Patch holds the fields of an update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	PublishedAt *string
	AuthorIDs   *[]int
}
