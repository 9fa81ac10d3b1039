package book

import (
	"slices"
	"testing"

	"bookshelf/internal/entity"
	"bookshelf/internal/store"

	"github.com/stretchr/testify/assert"
)

func titles(books []entity.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestFilterBooks(t *testing.T) {
	books := append(slices.Clone(store.SeedBooks), entity.Book{ID: 4, Title: "Things to Come", PublishedAt: "1958", AuthorIDs: []int{1}})

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"no filters", Query{}, []string{"Things Fall Apart", "I am Number Four", "Nyana wam! Nyana wam!", "Things to Come"}},
		{"title substring case-insensitive", Query{Title: "THINGS"}, []string{"Things Fall Apart", "Things to Come"}},
		{"title in the middle", Query{Title: "number"}, []string{"I am Number Four"}},
		{"published exact", Query{PublishedAt: "2008"}, []string{"Nyana wam! Nyana wam!"}},
		{"published is string equality", Query{PublishedAt: "02008"}, []string{}},
		{"both filters", Query{Title: "things", PublishedAt: "1958"}, []string{"Things Fall Apart", "Things to Come"}},
		{"both filters narrow", Query{Title: "fall", PublishedAt: "1958"}, []string{"Things Fall Apart"}},
		{"no match", Query{Title: "dune"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(filterBooks(books, tt.q)))
		})
	}
}

func TestWithAuthors(t *testing.T) {
	authors := store.SeedAuthors

	t.Run("collection order", func(t *testing.T) {
		got := withAuthors(entity.Book{ID: 9, AuthorIDs: []int{3, 2}}, authors)
		assert.Equal(t, []entity.Author{authors[1], authors[2]}, got.Authors)
		assert.Equal(t, []int{3, 2}, got.AuthorIDs)
	})

	t.Run("unknown ids skipped", func(t *testing.T) {
		got := withAuthors(entity.Book{ID: 9, AuthorIDs: []int{1, 42}}, authors)
		assert.Equal(t, []entity.Author{authors[0]}, got.Authors)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		got := withAuthors(entity.Book{ID: 9, AuthorIDs: []int{4, 4}}, authors)
		assert.Len(t, got.Authors, 1)
	})

	t.Run("no authors is empty not nil", func(t *testing.T) {
		got := withAuthors(entity.Book{ID: 9, AuthorIDs: []int{}}, authors)
		assert.NotNil(t, got.Authors)
		assert.Empty(t, got.Authors)
	})
}
