package entity

// Author is created the first time a book references it by name and is
// never mutated afterwards.
type Author struct {
	ID    int    `json:"id"`
	FName string `json:"fname"`
	LName string `json:"lname"`
}
