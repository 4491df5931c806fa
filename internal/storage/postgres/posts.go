package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hongminglow/blogcart-be/internal/models"
	"github.com/hongminglow/blogcart-be/internal/storage"
	"github.com/jackc/pgx/v5"
)

// CreatePost inserts a new post row, assigning an opaque ID.
func (s *Store) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	const query = `
	INSERT INTO posts (id, title, content, author_id)
	VALUES ($1, $2, $3, $4)
	RETURNING id, title, content, author_id, created_at, updated_at;
	`
	row := s.pool.QueryRow(ctx, query, uuid.NewString(), post.Title, post.Content, post.AuthorID)
	return scanPost(row)
}

// ListPosts returns every post with its author summary embedded.
func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	const query = `
	SELECT p.id, p.title, p.content, p.author_id, p.created_at, p.updated_at,
	       u.id, u.name, u.email
	FROM posts p
	JOIN users u ON p.author_id = u.id
	ORDER BY p.created_at DESC;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// FindPostByID fetches a post with its author summary embedded.
func (s *Store) FindPostByID(ctx context.Context, id string) (models.Post, error) {
	const query = `
	SELECT p.id, p.title, p.content, p.author_id, p.created_at, p.updated_at,
	       u.id, u.name, u.email
	FROM posts p
	JOIN users u ON p.author_id = u.id
	WHERE p.id = $1;
	`
	return scanPostWithAuthor(s.pool.QueryRow(ctx, query, id))
}

// UpdatePost replaces title and content. Last write wins: the ownership
// check in the handler and this statement are not one transaction.
func (s *Store) UpdatePost(ctx context.Context, id, title, content string) (models.Post, error) {
	const query = `
	UPDATE posts
	SET title = $2, content = $3, updated_at = NOW()
	WHERE id = $1
	RETURNING id, title, content, author_id, created_at, updated_at;
	`
	return scanPost(s.pool.QueryRow(ctx, query, id, title, content))
}

// DeletePost removes a post by ID.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, storage.ErrNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

func scanPostWithAuthor(row pgx.Row) (models.Post, error) {
	var post models.Post
	var author models.AuthorSummary
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
		&author.ID, &author.Name, &author.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, storage.ErrNotFound
		}
		return models.Post{}, err
	}
	post.Author = &author
	return post, nil
}
