package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/user"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO users (email, full_name, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.FullName, u.PasswordHash, u.Role, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get user ID", err)
	}

	u.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
		SELECT id, email, full_name, password_hash, role, created_at, updated_at
		FROM users WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, full_name, password_hash, role, created_at, updated_at
		FROM users WHERE email = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET email = ?, full_name = ?, password_hash = ?, role = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.FullName, u.PasswordHash, u.Role, u.UpdatedAt.Unix(), u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	var fullName sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&u.ID, &u.Email, &fullName, &u.PasswordHash, &u.Role, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	if fullName.Valid {
		u.FullName = &fullName.String
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)

	return &u, nil
}
