package dto

import "github.com/hongminglow/blogcart-be/internal/models"

// PostRequest is the body for post create and update.
type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PostCreatedResponse struct {
	Message string      `json:"message"`
	Post    models.Post `json:"post"`
}

type PostUpdatedResponse struct {
	Message     string      `json:"message"`
	UpdatedPost models.Post `json:"updatedPost"`
}
