package models

import "time"

// Post is a blog entry owned by the user identified by AuthorID.
type Post struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	AuthorID  string         `json:"authorId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Author    *AuthorSummary `json:"author,omitempty"`
}
