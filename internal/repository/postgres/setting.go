package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/setting"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
)

// SettingRepository implements setting.Repository
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sql.DB) setting.Repository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting by key. A missing key returns NotFound, which
// callers treat as "unset" rather than as a failure.
func (r *SettingRepository) Get(ctx context.Context, key string) (*setting.Setting, error) {
	query := `
		SELECT key, value, description, updated_by, updated_at
		FROM settings WHERE key = ?
	`

	var s setting.Setting
	var description sql.NullString
	var updatedBy sql.NullInt64
	var updatedAt int64

	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&s.Key, &s.Value, &description, &updatedBy, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Setting")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get setting", err)
	}

	if description.Valid {
		s.Description = &description.String
	}
	s.UpdatedBy = updatedBy.Int64
	s.UpdatedAt = time.Unix(updatedAt, 0)

	return &s, nil
}

// Upsert creates or replaces a setting
func (r *SettingRepository) Upsert(ctx context.Context, s *setting.Setting) error {
	s.UpdatedAt = time.Now()

	query := `
		INSERT INTO settings (key, value, description, updated_by, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			description = excluded.description,
			updated_by = excluded.updated_by,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		s.Key, s.Value, s.Description, s.UpdatedBy, s.UpdatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to upsert setting", err)
	}

	return nil
}

// List retrieves all settings ordered by key
func (r *SettingRepository) List(ctx context.Context) ([]*setting.Setting, error) {
	query := `
		SELECT key, value, description, updated_by, updated_at
		FROM settings ORDER BY key
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list settings", err)
	}
	defer rows.Close()

	var settings []*setting.Setting
	for rows.Next() {
		var s setting.Setting
		var description sql.NullString
		var updatedBy sql.NullInt64
		var updatedAt int64

		if err := rows.Scan(&s.Key, &s.Value, &description, &updatedBy, &updatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan setting", err)
		}

		if description.Valid {
			s.Description = &description.String
		}
		s.UpdatedBy = updatedBy.Int64
		s.UpdatedAt = time.Unix(updatedAt, 0)

		settings = append(settings, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate settings", err)
	}

	return settings, nil
}
