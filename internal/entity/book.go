package entity

// Book is a stored book record. AuthorIDs reference Author.ID.
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	AuthorIDs   []int  `json:"authorIds"`
}

// BookWithAuthors is a book joined with the authors it references.
// It is only built for responses and never stored.
type BookWithAuthors struct {
	Book
	Authors []Author `json:"authors"`
}
