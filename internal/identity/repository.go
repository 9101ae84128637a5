package identity

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string, role Role) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	SaveSession(ctx context.Context, userID string) error
	DeleteSessions(ctx context.Context, userID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash string, role Role) (*Account, error) {
	query := `
		INSERT INTO users (id, email, password_hash, role, display_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, role, display_name, created_at
	`

	var a Account
	err := r.db.QueryRowContext(ctx, query,
		uuid.New().String(), email, passwordHash, role, name,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.DisplayName, &a.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), PgUniqueViolation) ||
			strings.Contains(err.Error(), "users_email_key") {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query := `
		SELECT id, email, password_hash, role, display_name, created_at
		FROM users
		WHERE email = $1
	`

	var a Account
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.DisplayName, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Account, error) {
	query := `
		SELECT id, email, password_hash, role, display_name, created_at
		FROM users
		WHERE id = $1
	`

	var a Account
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.DisplayName, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) SaveSession(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id) VALUES ($1, $2)
	`, uuid.New().String(), userID)
	return err
}

func (r *repository) DeleteSessions(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE user_id = $1
	`, userID)
	return err
}
