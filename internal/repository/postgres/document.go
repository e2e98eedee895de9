package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/document"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
)

// DocumentRepository implements document.Repository
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sql.DB) document.Repository {
	return &DocumentRepository{db: db}
}

// Create creates a new document
func (r *DocumentRepository) Create(ctx context.Context, d *document.Document) error {
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	query := `
		INSERT INTO documents (user_id, kind, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		d.UserID, d.Kind, d.Title, d.Content, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create document", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get document ID", err)
	}

	d.ID = id
	return nil
}

// GetByID retrieves a document owned by the user. Scoping by user_id in
// the query keeps one user's documents invisible to another.
func (r *DocumentRepository) GetByID(ctx context.Context, userID, id int64) (*document.Document, error) {
	query := `
		SELECT id, user_id, kind, title, content, created_at, updated_at
		FROM documents
		WHERE id = ? AND user_id = ?
	`

	var d document.Document
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&d.ID, &d.UserID, &d.Kind, &d.Title, &d.Content, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Document")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get document", err)
	}

	d.CreatedAt = time.Unix(createdAt, 0)
	d.UpdatedAt = time.Unix(updatedAt, 0)

	return &d, nil
}

// Update updates a document's title and content
func (r *DocumentRepository) Update(ctx context.Context, d *document.Document) error {
	d.UpdatedAt = time.Now()

	query := `
		UPDATE documents
		SET title = ?, content = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		d.Title, d.Content, d.UpdatedAt.Unix(), d.ID, d.UserID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update document", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Document")
	}

	return nil
}

// Delete deletes a document owned by the user
func (r *DocumentRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM documents WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return errors.DatabaseError("Failed to delete document", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Document")
	}

	return nil
}

// ListByUser retrieves a user's documents, newest first, optionally
// filtered by kind. An empty kind means all kinds.
func (r *DocumentRepository) ListByUser(ctx context.Context, userID int64, kind plan.Category, limit, offset int) ([]*document.Document, int64, error) {
	countQuery := `SELECT COUNT(*) FROM documents WHERE user_id = ?`
	listQuery := `
		SELECT id, user_id, kind, title, content, created_at, updated_at
		FROM documents
		WHERE user_id = ?
	`
	args := []interface{}{userID}

	if kind != "" {
		countQuery += ` AND kind = ?`
		listQuery += ` AND kind = ?`
		args = append(args, kind)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count documents", err)
	}

	listQuery += ` ORDER BY updated_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list documents", err)
	}
	defer rows.Close()

	var docs []*document.Document
	for rows.Next() {
		var d document.Document
		var createdAt, updatedAt int64

		err := rows.Scan(&d.ID, &d.UserID, &d.Kind, &d.Title, &d.Content, &createdAt, &updatedAt)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan document", err)
		}

		d.CreatedAt = time.Unix(createdAt, 0)
		d.UpdatedAt = time.Unix(updatedAt, 0)
		docs = append(docs, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate documents", err)
	}

	return docs, total, nil
}
