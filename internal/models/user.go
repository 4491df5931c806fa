package models

import "time"

// User captures application-facing fields for an authenticated identity.
// PasswordHash is never serialized; every response embedding a user
// inherits that.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthorSummary is the embedded author shape on posts and products.
type AuthorSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary projects a user onto the embedded author shape.
func (u User) Summary() AuthorSummary {
	return AuthorSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
