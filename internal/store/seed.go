package store

import "bookshelf/internal/entity"

// SeedAuthors and SeedBooks are the records a seeded store starts with.
var (
	SeedAuthors = []entity.Author{
		{ID: 1, FName: "Chinua", LName: "Achebe"},
		{ID: 2, FName: "James", LName: "Frey"},
		{ID: 3, FName: "Jobie", LName: "Hughes"},
		{ID: 4, FName: "Witness K", LName: "Tamsanqa"},
	}
	SeedBooks = []entity.Book{
		{ID: 1, Title: "Things Fall Apart", PublishedAt: "1958", AuthorIDs: []int{1}},
		{ID: 2, Title: "I am Number Four", PublishedAt: "2010", AuthorIDs: []int{2, 3}},
		{ID: 3, Title: "Nyana wam! Nyana wam!", PublishedAt: "2008", AuthorIDs: []int{4}},
	}
)

// NewSeeded returns a store holding the seed authors and books.
func NewSeeded() *Memory {
	return NewMemoryFrom(SeedAuthors, SeedBooks)
}
