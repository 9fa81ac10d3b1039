package book

import (
	"fmt"
	"strings"

	"bookshelf/internal/entity"
	"bookshelf/internal/store"
)

// ResolveAuthors returns one author id per candidate, in candidate order.
// A candidate matching an existing author by first and last name
// (case-insensitive) reuses that author's id; any other candidate is stored
// as a new author. Authors created earlier in the same call are matched too.
func ResolveAuthors(tx *store.Tx, candidates []AuthorName) ([]int, error) {
	known := tx.Authors()
	ids := make([]int, 0, len(candidates))

	for _, c := range candidates {
		if a, ok := findAuthor(known, c); ok {
			ids = append(ids, a.ID)
			continue
		}
		a, err := tx.InsertAuthor(c.FName, c.LName)
		if err != nil {
			return nil, fmt.Errorf("insert author %s %s: %w", c.FName, c.LName, err)
		}
		known = append(known, a)
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func findAuthor(authors []entity.Author, name AuthorName) (entity.Author, bool) {
	for _, a := range authors {
		if strings.EqualFold(a.FName, name.FName) && strings.EqualFold(a.LName, name.LName) {
			return a, true
		}
	}
	return entity.Author{}, false
}
