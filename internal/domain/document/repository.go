package document

import (
	"context"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
)

// Repository defines the interface for document persistence
type Repository interface {
	// Create creates a new document
	Create(ctx context.Context, d *Document) error

	// GetByID retrieves a document owned by the user
	GetByID(ctx context.Context, userID, id int64) (*Document, error)

	// Update updates a document's title and content
	Update(ctx context.Context, d *Document) error

	// Delete deletes a document owned by the user
	Delete(ctx context.Context, userID, id int64) error

	// ListByUser retrieves a user's documents, optionally filtered by kind
	ListByUser(ctx context.Context, userID int64, kind plan.Category, limit, offset int) ([]*Document, int64, error)
}
