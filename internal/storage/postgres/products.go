package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hongminglow/blogcart-be/internal/models"
	"github.com/hongminglow/blogcart-be/internal/storage"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, description, brand, category, price, stock_quantity,
	variants, rating, total_reviews, tags, author_id, created_at`

// CreateProduct inserts a new catalog row, assigning an opaque ID.
func (s *Store) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	query := `
	INSERT INTO products (id, name, description, brand, category, price, stock_quantity,
		variants, rating, total_reviews, tags, author_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING ` + productColumns + `;`

	variants := product.Variants
	if variants == nil {
		variants = []string{}
	}
	tags := product.Tags
	if tags == nil {
		tags = []string{}
	}
	row := s.pool.QueryRow(ctx, query, uuid.NewString(), product.Name, product.Description,
		product.Brand, product.Category, product.Price, product.StockQuantity,
		variants, product.Rating, product.TotalReviews, tags, product.AuthorID)
	return scanProduct(row)
}

// ListProducts returns the whole catalog, newest first, with author
// summaries embedded.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	const query = `
	SELECT p.id, p.name, p.description, p.brand, p.category, p.price, p.stock_quantity,
	       p.variants, p.rating, p.total_reviews, p.tags, p.author_id, p.created_at,
	       u.id, u.name, u.email
	FROM products p
	JOIN users u ON p.author_id = u.id
	ORDER BY p.created_at DESC;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProductWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// FindProductByID fetches a product with its author summary embedded.
func (s *Store) FindProductByID(ctx context.Context, id string) (models.Product, error) {
	const query = `
	SELECT p.id, p.name, p.description, p.brand, p.category, p.price, p.stock_quantity,
	       p.variants, p.rating, p.total_reviews, p.tags, p.author_id, p.created_at,
	       u.id, u.name, u.email
	FROM products p
	JOIN users u ON p.author_id = u.id
	WHERE p.id = $1;
	`
	return scanProductWithAuthor(s.pool.QueryRow(ctx, query, id))
}

// SearchProducts applies the filter's populated fields as conjunctive
// conditions. Text matches are case-insensitive; the name matches as a
// substring, brand and category match whole values; tags must all be
// present on the row.
func (s *Store) SearchProducts(ctx context.Context, filter storage.ProductFilter) ([]models.Product, error) {
	conds := []string{}
	args := []any{}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Name != "" {
		add("name ILIKE $%d", "%"+filter.Name+"%")
	}
	if filter.Brand != "" {
		add("brand ILIKE $%d", filter.Brand)
	}
	if filter.Category != "" {
		add("category ILIKE $%d", filter.Category)
	}
	if len(filter.Tags) > 0 {
		add("tags @> $%d", filter.Tags)
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}
	if filter.MinRating != nil {
		add("rating >= $%d", *filter.MinRating)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC;"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Brand, &p.Category, &p.Price,
		&p.StockQuantity, &p.Variants, &p.Rating, &p.TotalReviews, &p.Tags,
		&p.AuthorID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, storage.ErrNotFound
		}
		return models.Product{}, err
	}
	return p, nil
}

func scanProductWithAuthor(row pgx.Row) (models.Product, error) {
	var p models.Product
	var author models.AuthorSummary
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Brand, &p.Category, &p.Price,
		&p.StockQuantity, &p.Variants, &p.Rating, &p.TotalReviews, &p.Tags,
		&p.AuthorID, &p.CreatedAt, &author.ID, &author.Name, &author.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, storage.ErrNotFound
		}
		return models.Product{}, err
	}
	p.Author = &author
	return p, nil
}
