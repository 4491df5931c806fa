package dto

import "github.com/hongminglow/blogcart-be/internal/models"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is shared by register and login. The user's password hash is
// excluded by the model's json tag.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}
