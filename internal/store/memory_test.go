package store

import (
	"context"
	"sync"
	"testing"

	"bookshelf/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeeded(t *testing.T) {
	m := NewSeeded()

	authors, books := m.Counts()
	assert.Equal(t, 4, authors)
	assert.Equal(t, 3, books)

	err := m.Update(context.Background(), func(tx *Tx) error {
		a, err := tx.InsertAuthor("Frank", "Herbert")
		require.NoError(t, err)
		assert.Equal(t, 5, a.ID)

		b, err := tx.InsertBook("Dune", "1965", []int{a.ID})
		require.NoError(t, err)
		assert.Equal(t, 4, b.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestMemory_IDsNotReusedAfterDelete(t *testing.T) {
	m := NewSeeded()
	ctx := context.Background()

	err := m.Update(ctx, func(tx *Tx) error {
		_, ok, err := tx.DeleteBook(1)
		require.NoError(t, err)
		require.True(t, ok)

		b, err := tx.InsertBook("New", "2020", []int{1})
		require.NoError(t, err)
		assert.Equal(t, 4, b.ID)
		return nil
	})
	require.NoError(t, err)

	err = m.View(ctx, func(tx *Tx) error {
		var ids []int
		for _, b := range tx.Books() {
			ids = append(ids, b.ID)
		}
		assert.Equal(t, []int{2, 3, 4}, ids)
		return nil
	})
	require.NoError(t, err)
}

func TestMemory_ViewRejectsWrites(t *testing.T) {
	m := NewMemory()

	err := m.View(context.Background(), func(tx *Tx) error {
		_, err := tx.InsertAuthor("a", "b")
		return err
	})
	assert.ErrorIs(t, err, ErrReadOnly)

	authors, _ := m.Counts()
	assert.Zero(t, authors)
}

func TestMemory_CancelledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := m.Update(ctx, func(tx *Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTx_ReadsAreCopies(t *testing.T) {
	m := NewSeeded()
	ctx := context.Background()

	_ = m.View(ctx, func(tx *Tx) error {
		b, ok := tx.Book(2)
		require.True(t, ok)
		b.AuthorIDs[0] = 99
		b.Title = "changed"

		books := tx.Books()
		books[0].AuthorIDs[0] = 42
		return nil
	})

	_ = m.View(ctx, func(tx *Tx) error {
		b, _ := tx.Book(2)
		assert.Equal(t, "I am Number Four", b.Title)
		assert.Equal(t, []int{2, 3}, b.AuthorIDs)

		b1, _ := tx.Book(1)
		assert.Equal(t, []int{1}, b1.AuthorIDs)
		return nil
	})
}

func TestTx_SaveAndDeleteMissing(t *testing.T) {
	m := NewSeeded()

	err := m.Update(context.Background(), func(tx *Tx) error {
		ok, err := tx.SaveBook(entity.Book{ID: 99, Title: "x"})
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = tx.DeleteBook(99)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = tx.SaveBook(entity.Book{ID: 3, Title: "Renamed", PublishedAt: "2008", AuthorIDs: []int{4}})
		require.NoError(t, err)
		assert.True(t, ok)

		b, _ := tx.Book(3)
		assert.Equal(t, "Renamed", b.Title)
		return nil
	})
	require.NoError(t, err)
}

func TestMemory_ConcurrentInserts(t *testing.T) {
	m := NewMemory()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Update(context.Background(), func(tx *Tx) error {
				_, err := tx.InsertBook("t", "2000", []int{1})
				return err
			})
		}()
	}
	wg.Wait()

	seen := map[int]bool{}
	_ = m.View(context.Background(), func(tx *Tx) error {
		for _, b := range tx.Books() {
			seen[b.ID] = true
		}
		return nil
	})
	assert.Len(t, seen, n)
}
