package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"bookshelf/internal/entity"
)

// ErrReadOnly is returned when a write is attempted inside a View transaction.
var ErrReadOnly = errors.New("store: write in read-only transaction")

// Memory is the process-lifetime holder of every author and book record.
// All access goes through View and Update so that a sequence of reads and
// writes runs under a single lock.
type Memory struct {
	mu           sync.RWMutex
	authors      []entity.Author
	books        []entity.Book
	nextAuthorID int
	nextBookID   int
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return NewMemoryFrom(nil, nil)
}

// NewMemoryFrom returns a store holding copies of the given records. Id
// counters start after the highest id present.
func NewMemoryFrom(authors []entity.Author, books []entity.Book) *Memory {
	m := &Memory{nextAuthorID: 1, nextBookID: 1}
	for _, a := range authors {
		m.authors = append(m.authors, a)
		if a.ID >= m.nextAuthorID {
			m.nextAuthorID = a.ID + 1
		}
	}
	for _, b := range books {
		m.books = append(m.books, cloneBook(b))
		if b.ID >= m.nextBookID {
			m.nextBookID = b.ID + 1
		}
	}
	return m
}

// View runs fn with a read-only transaction.
func (m *Memory) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(&Tx{m: m})
}

// Update runs fn with a writable transaction. Writes made by fn are visible
// immediately; there is no rollback.
func (m *Memory) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&Tx{m: m, writable: true})
}

// Counts reports how many authors and books are stored.
func (m *Memory) Counts() (authors, books int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.authors), len(m.books)
}

// Tx is only valid inside the View or Update callback that received it.
type Tx struct {
	m        *Memory
	writable bool
}

// Authors returns every author in insertion order.
func (tx *Tx) Authors() []entity.Author {
	return slices.Clone(tx.m.authors)
}

// Books returns every book in insertion order.
func (tx *Tx) Books() []entity.Book {
	out := make([]entity.Book, 0, len(tx.m.books))
	for _, b := range tx.m.books {
		out = append(out, cloneBook(b))
	}
	return out
}

// Book returns a copy of the book with the given id.
func (tx *Tx) Book(id int) (entity.Book, bool) {
	i := tx.m.bookIndex(id)
	if i < 0 {
		return entity.Book{}, false
	}
	return cloneBook(tx.m.books[i]), true
}

// InsertAuthor appends a new author with the next author id.
func (tx *Tx) InsertAuthor(fname, lname string) (entity.Author, error) {
	if !tx.writable {
		return entity.Author{}, ErrReadOnly
	}
	a := entity.Author{ID: tx.m.nextAuthorID, FName: fname, LName: lname}
	tx.m.nextAuthorID++
	tx.m.authors = append(tx.m.authors, a)
	return a, nil
}

// InsertBook appends a new book with the next book id.
func (tx *Tx) InsertBook(title, publishedAt string, authorIDs []int) (entity.Book, error) {
	if !tx.writable {
		return entity.Book{}, ErrReadOnly
	}
	b := entity.Book{
		ID:          tx.m.nextBookID,
		Title:       title,
		PublishedAt: publishedAt,
		AuthorIDs:   slices.Clone(authorIDs),
	}
	tx.m.nextBookID++
	tx.m.books = append(tx.m.books, b)
	return cloneBook(b), nil
}

// SaveBook replaces the stored book that has b.ID. It reports false when no
// such book exists.
func (tx *Tx) SaveBook(b entity.Book) (bool, error) {
	if !tx.writable {
		return false, ErrReadOnly
	}
	i := tx.m.bookIndex(b.ID)
	if i < 0 {
		return false, nil
	}
	tx.m.books[i] = cloneBook(b)
	return true, nil
}

// DeleteBook removes the book with the given id and returns it.
func (tx *Tx) DeleteBook(id int) (entity.Book, bool, error) {
	if !tx.writable {
		return entity.Book{}, false, ErrReadOnly
	}
	i := tx.m.bookIndex(id)
	if i < 0 {
		return entity.Book{}, false, nil
	}
	removed := tx.m.books[i]
	tx.m.books = slices.Delete(tx.m.books, i, i+1)
	return removed, true, nil
}

func (m *Memory) bookIndex(id int) int {
	return slices.IndexFunc(m.books, func(b entity.Book) bool { return b.ID == id })
}

func cloneBook(b entity.Book) entity.Book {
	b.AuthorIDs = slices.Clone(b.AuthorIDs)
	return b
}
