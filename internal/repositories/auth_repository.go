package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"snack_factory_backend/internal/models"
)

// AuthRepository defines the interface for user account database operations.
type AuthRepository interface {
	CreateUser(ctx context.Context, executor SQLExecutor, user *models.User) error
	FindUserByEmail(ctx context.Context, executor SQLExecutor, email string) (*models.User, error)
	FindUserByID(ctx context.Context, executor SQLExecutor, userID string) (*models.User, error)
	SetAdmin(ctx context.Context, executor SQLExecutor, userID string, isAdmin bool) error
}

type authRepository struct{}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository() AuthRepository {
	return &authRepository{}
}

const userColumns = `id, name, email, phone, password_hash, is_admin, created_at, updated_at`

func scanUser(s scanner) (*models.User, error) {
	var u models.User
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. Email uniqueness is enforced by a case-insensitive index.
func (r *authRepository) CreateUser(ctx context.Context, executor SQLExecutor, user *models.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	_, err := executor.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Phone, user.PasswordHash, user.IsAdmin, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if pqErr, ok := isUniqueViolation(err); ok {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *authRepository) FindUserByEmail(ctx context.Context, executor SQLExecutor, email string) (*models.User, error) {
	u, err := scanUser(executor.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by email: %v", ErrDatabaseError, err)
	}
	return u, nil
}

func (r *authRepository) FindUserByID(ctx context.Context, executor SQLExecutor, userID string) (*models.User, error) {
	u, err := scanUser(executor.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by id %s: %v", ErrDatabaseError, userID, err)
	}
	return u, nil
}

func (r *authRepository) SetAdmin(ctx context.Context, executor SQLExecutor, userID string, isAdmin bool) error {
	res, err := executor.ExecContext(ctx, `UPDATE users SET is_admin = $1, updated_at = $2 WHERE id = $3`, isAdmin, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("%w: updating admin flag for %s: %v", ErrDatabaseError, userID, err)
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: updating admin flag for %s: %v", ErrDatabaseError, userID, err)
	}
	return nil
}
