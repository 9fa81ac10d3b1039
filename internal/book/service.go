package book

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"bookshelf/internal/entity"
	"bookshelf/internal/store"
)

// Service provides book-related business logic.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new book service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// List returns the books matching q joined with their authors.
func (s *Service) List(ctx context.Context, q Query) ([]entity.BookWithAuthors, error) {
	var out []entity.BookWithAuthors
	err := s.store.View(ctx, func(tx *store.Tx) error {
		authors := tx.Authors()
		books := filterBooks(tx.Books(), q)
		out = make([]entity.BookWithAuthors, 0, len(books))
		for _, b := range books {
			out = append(out, withAuthors(b, authors))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return out, nil
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id int) (entity.BookWithAuthors, error) {
	var out entity.BookWithAuthors
	err := s.store.View(ctx, func(tx *store.Tx) error {
		b, ok := tx.Book(id)
		if !ok {
			return ErrNotFound
		}
		out = withAuthors(b, tx.Authors())
		return nil
	})
	if err != nil {
		return entity.BookWithAuthors{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return out, nil
}

// Create stores a new book, creating any author not already known by name.
func (s *Service) Create(ctx context.Context, in NewBook) (entity.BookWithAuthors, error) {
	var out entity.BookWithAuthors
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		authorIDs, err := ResolveAuthors(tx, in.Authors)
		if err != nil {
			return err
		}
		b, err := tx.InsertBook(in.Title, in.PublishedAt, authorIDs)
		if err != nil {
			return err
		}
		out = withAuthors(b, tx.Authors())
		return nil
	})
	if err != nil {
		return entity.BookWithAuthors{}, fmt.Errorf("create book: %w", err)
	}

	s.logger.InfoContext(ctx, "book created", "book_id", out.ID, "author_ids", out.AuthorIDs)
	return out, nil
}

// Update replaces the fields set in p. Author ids are stored as given, even
// when they do not reference a known author.
func (s *Service) Update(ctx context.Context, id int, p Patch) (entity.BookWithAuthors, error) {
	var out entity.BookWithAuthors
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		b, ok := tx.Book(id)
		if !ok {
			return ErrNotFound
		}
		if p.Title != nil {
			b.Title = *p.Title
		}
		if p.PublishedAt != nil {
			b.PublishedAt = *p.PublishedAt
		}
		if p.AuthorIDs != nil {
			b.AuthorIDs = slices.Clone(*p.AuthorIDs)
			if b.AuthorIDs == nil {
				b.AuthorIDs = []int{}
			}
		}
		if _, err := tx.SaveBook(b); err != nil {
			return err
		}
		out = withAuthors(b, tx.Authors())
		return nil
	})
	if err != nil {
		return entity.BookWithAuthors{}, fmt.Errorf("update book %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "book updated", "book_id", id)
	return out, nil
}

// Delete removes a book and returns the removed record.
func (s *Service) Delete(ctx context.Context, id int) (entity.Book, error) {
	var removed entity.Book
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		b, ok, err := tx.DeleteBook(id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		removed = b
		return nil
	})
	if err != nil {
		return entity.Book{}, fmt.Errorf("delete book %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "book deleted", "book_id", id)
	return removed, nil
}
