package dto

import "github.com/hongminglow/blogcart-be/internal/models"

// ProductRequest is the body for product create.
type ProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stockQuantity"`
	Variants      []string `json:"variants"`
	Rating        float64  `json:"rating"`
	TotalReviews  int      `json:"totalReviews"`
	Tags          []string `json:"tags"`
	AuthorID      string   `json:"authorId"`
}

// ProductSearchResponse wraps search results with the matched count.
type ProductSearchResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Products []models.Product `json:"products"`
}
