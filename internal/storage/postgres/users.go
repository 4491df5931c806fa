package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hongminglow/blogcart-be/internal/models"
	"github.com/hongminglow/blogcart-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CreateUser inserts a new user row, assigning an opaque ID.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (id, name, email, password_hash)
	VALUES ($1, $2, $3, $4)
	RETURNING id, name, email, password_hash, created_at;
	`
	row := s.pool.QueryRow(ctx, query, uuid.NewString(), user.Name, user.Email, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindUserByID fetches a user by ID.
func (s *Store) FindUserByID(ctx context.Context, id string) (models.User, error) {
	const query = `
	SELECT id, name, email, password_hash, created_at
	FROM users
	WHERE id = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// FindUserByEmail fetches a user by email address. The match is
// case-sensitive, same as the stored value.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
	SELECT id, name, email, password_hash, created_at
	FROM users
	WHERE email = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// ListUsers returns every user ordered by creation time.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	const query = `
	SELECT id, name, email, password_hash, created_at
	FROM users
	ORDER BY created_at;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
