package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/usage"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
)

// UsageRepository implements usage.Repository
type UsageRepository struct {
	db *sql.DB
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db *sql.DB) usage.Repository {
	return &UsageRepository{db: db}
}

// GetForMonth retrieves the counter row for (userID, month, year)
func (r *UsageRepository) GetForMonth(ctx context.Context, userID int64, month, year int) (*usage.Record, error) {
	query := `
		SELECT id, user_id, month, year,
		       resumes_generated, cover_letters_generated, interview_generated,
		       created_at, updated_at
		FROM ai_usage
		WHERE user_id = ? AND month = ? AND year = ?
	`

	rec, err := scanUsageRow(r.db.QueryRowContext(ctx, query, userID, month, year))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Usage record")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get usage record", err)
	}

	return rec, nil
}

// counterColumn maps a category to its counter column. The column name is
// interpolated into SQL, so it must come from this closed switch and never
// from request input.
func counterColumn(category plan.Category) (string, error) {
	switch category {
	case plan.CategoryResume:
		return "resumes_generated", nil
	case plan.CategoryCoverLetter:
		return "cover_letters_generated", nil
	case plan.CategoryInterview:
		return "interview_generated", nil
	}
	return "", errors.BadRequest(fmt.Sprintf("Unknown usage category: %s", category))
}

// IncrementCategory bumps one counter by one as a single atomic upsert.
// Concurrent increments for the same row serialize on the unique
// (user_id, month, year) index instead of racing a read-modify-write.
func (r *UsageRepository) IncrementCategory(ctx context.Context, userID int64, month, year int, category plan.Category) error {
	column, err := counterColumn(category)
	if err != nil {
		return err
	}

	now := time.Now().Unix()

	query := fmt.Sprintf(`
		INSERT INTO ai_usage (user_id, month, year, %[1]s, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT(user_id, month, year) DO UPDATE SET
			%[1]s = %[1]s + 1,
			updated_at = excluded.updated_at
	`, column)

	if _, err := r.db.ExecContext(ctx, query, userID, month, year, now, now); err != nil {
		return errors.DatabaseError("Failed to increment usage", err)
	}

	return nil
}

// ResetMonth zeroes all counters for (userID, month, year). A missing row
// already means zero usage, so no row affected is not an error.
func (r *UsageRepository) ResetMonth(ctx context.Context, userID int64, month, year int) error {
	query := `
		UPDATE ai_usage
		SET resumes_generated = 0,
		    cover_letters_generated = 0,
		    interview_generated = 0,
		    updated_at = ?
		WHERE user_id = ? AND month = ? AND year = ?
	`

	if _, err := r.db.ExecContext(ctx, query, time.Now().Unix(), userID, month, year); err != nil {
		return errors.DatabaseError("Failed to reset usage", err)
	}

	return nil
}

// ListForMonth retrieves every counter row for a month bucket
func (r *UsageRepository) ListForMonth(ctx context.Context, month, year int) ([]*usage.Record, error) {
	query := `
		SELECT id, user_id, month, year,
		       resumes_generated, cover_letters_generated, interview_generated,
		       created_at, updated_at
		FROM ai_usage
		WHERE month = ? AND year = ?
		ORDER BY user_id
	`

	rows, err := r.db.QueryContext(ctx, query, month, year)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list usage records", err)
	}
	defer rows.Close()

	var records []*usage.Record
	for rows.Next() {
		var rec usage.Record
		var createdAt, updatedAt int64

		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Month, &rec.Year,
			&rec.ResumesGenerated, &rec.CoverLettersGenerated, &rec.InterviewGenerated,
			&createdAt, &updatedAt,
		)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan usage record", err)
		}

		rec.CreatedAt = time.Unix(createdAt, 0)
		rec.UpdatedAt = time.Unix(updatedAt, 0)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate usage records", err)
	}

	return records, nil
}

func scanUsageRow(row *sql.Row) (*usage.Record, error) {
	var rec usage.Record
	var createdAt, updatedAt int64

	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Month, &rec.Year,
		&rec.ResumesGenerated, &rec.CoverLettersGenerated, &rec.InterviewGenerated,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = time.Unix(createdAt, 0)
	rec.UpdatedAt = time.Unix(updatedAt, 0)

	return &rec, nil
}
