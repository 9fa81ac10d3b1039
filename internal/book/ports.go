package book

import (
	"context"

	"bookshelf/internal/entity"
	"bookshelf/internal/store"
)

// Store defines the transactional access the service needs to book data.
type Store interface {
	View(ctx context.Context, fn func(tx *store.Tx) error) error
	Update(ctx context.Context, fn func(tx *store.Tx) error) error
}

//go:generate mockgen -destination=mock_operations.go -package=book bookshelf/internal/book Operations

// Operations is the set of book use cases served over HTTP.
type Operations interface {
	List(ctx context.Context, q Query) ([]entity.BookWithAuthors, error)
	Get(ctx context.Context, id int) (entity.BookWithAuthors, error)
	Create(ctx context.Context, in NewBook) (entity.BookWithAuthors, error)
	Update(ctx context.Context, id int, p Patch) (entity.BookWithAuthors, error)
	Delete(ctx context.Context, id int) (entity.Book, error)
}
