package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loginapp/internal/entities"
)

//go:generate mockgen -source=user_repository.go -destination=mocks/mock_user_repository.go -package=mocks

// UserRepository defines the interface for user database operations.
// FindByEmail returns (nil, nil) when no user matches.
type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByEmail(ctx context.Context, email *string) (*entities.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a Postgres backed user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Save inserts the user when it has no ID yet, otherwise updates the row with
// that ID. An ID that matches no row is treated like a new user.
func (r *userRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	if user.ID == 0 {
		return r.insert(ctx, user)
	}
	return r.update(ctx, user)
}

func (r *userRepository) insert(ctx context.Context, user *entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (email, user_password)
		VALUES ($1, $2)
		RETURNING user_id
	`

	saved := *user
	if err := r.db.QueryRowContext(ctx, query, user.Email, user.UserPassword).Scan(&saved.ID); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return &saved, nil
}

func (r *userRepository) update(ctx context.Context, user *entities.User) (*entities.User, error) {
	query := `
		UPDATE users
		SET email = $2, user_password = $3
		WHERE user_id = $1
		RETURNING user_id
	`

	saved := *user
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Email, user.UserPassword).Scan(&saved.ID)
	if errors.Is(err, sql.ErrNoRows) {
		// unknown ID: stored as a new row with a fresh ID
		return r.insert(ctx, user)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return &saved, nil
}

// FindByEmail finds the first user whose email equals the argument byte for byte.
// A nil email never matches.
func (r *userRepository) FindByEmail(ctx context.Context, email *string) (*entities.User, error) {
	query := `
		SELECT user_id, email, user_password
		FROM users
		WHERE email = $1
		ORDER BY user_id
		LIMIT 1
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.UserPassword,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}
