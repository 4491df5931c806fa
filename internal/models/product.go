package models

import "time"

// Product is a catalog entry. AuthorID records who listed it; the catalog
// endpoints themselves are public.
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Brand         string         `json:"brand,omitempty"`
	Category      string         `json:"category,omitempty"`
	Price         float64        `json:"price"`
	StockQuantity int            `json:"stockQuantity"`
	Variants      []string       `json:"variants,omitempty"`
	Rating        float64        `json:"rating"`
	TotalReviews  int            `json:"totalReviews"`
	Tags          []string       `json:"tags,omitempty"`
	AuthorID      string         `json:"authorId"`
	CreatedAt     time.Time      `json:"createdAt"`
	Author        *AuthorSummary `json:"author,omitempty"`
}
