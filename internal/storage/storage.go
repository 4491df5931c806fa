package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/blogcart-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence operations needed by handlers.
// Users are never updated or deleted here.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// PostStore captures post persistence. List and FindPostByID embed the
// author summary. UpdatePost is last-write-wins: concurrent updates to the
// same post interleave without coordination.
type PostStore interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	FindPostByID(ctx context.Context, id string) (models.Post, error)
	UpdatePost(ctx context.Context, id, title, content string) (models.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// ProductFilter narrows a product search. Zero-valued fields do not filter;
// nil pointers leave the numeric bounds open.
type ProductFilter struct {
	Name      string
	Brand     string
	Category  string
	Tags      []string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
}

// ProductStore captures catalog persistence.
type ProductStore interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProductByID(ctx context.Context, id string) (models.Product, error)
	SearchProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
}
