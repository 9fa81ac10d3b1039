package book

import (
	"slices"
	"strings"

	"bookshelf/internal/entity"
)

// filterBooks keeps the books matching q, preserving storage order.
func filterBooks(books []entity.Book, q Query) []entity.Book {
	title := strings.ToLower(q.Title)

	out := make([]entity.Book, 0, len(books))
	for _, b := range books {
		if title != "" && !strings.Contains(strings.ToLower(b.Title), title) {
			continue
		}
		if q.PublishedAt != "" && b.PublishedAt != q.PublishedAt {
			continue
		}
		out = append(out, b)
	}
	return out
}

// withAuthors attaches the authors referenced by b. Authors come out in
// author-collection order; ids with no matching author are skipped.
func withAuthors(b entity.Book, authors []entity.Author) entity.BookWithAuthors {
	joined := make([]entity.Author, 0, len(b.AuthorIDs))
	for _, a := range authors {
		if slices.Contains(b.AuthorIDs, a.ID) {
			joined = append(joined, a)
		}
	}
	return entity.BookWithAuthors{Book: b, Authors: joined}
}
