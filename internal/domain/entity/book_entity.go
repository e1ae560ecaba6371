package entity

import "time"

// Book is the catalogue aggregate. Title and Author are always stored
// normalized (trimmed, upper-cased); Year is kept as the caller sent it and
// is not validated as numeric. Status true means the book is available.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      string    `json:"year"`
	Status    bool      `json:"status"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
