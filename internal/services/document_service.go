package services

import (
	"context"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/document"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
)

// DocumentService handles resume, cover letter and interview prep CRUD
type DocumentService struct {
	repo   document.Repository
	logger *logger.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(repo document.Repository, log *logger.Logger) *DocumentService {
	return &DocumentService{
		repo:   repo,
		logger: log,
	}
}

// Create creates a new document
func (s *DocumentService) Create(ctx context.Context, d *document.Document) error {
	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create document")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"document_id": d.ID,
		"user_id":     d.UserID,
		"kind":        d.Kind,
	}).Info("Document created")

	return nil
}

// GetByID retrieves a document owned by the user
func (s *DocumentService) GetByID(ctx context.Context, userID, id int64) (*document.Document, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update updates a document's title and content
func (s *DocumentService) Update(ctx context.Context, d *document.Document) error {
	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update document")
		return err
	}
	return nil
}

// Delete deletes a document owned by the user
func (s *DocumentService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete document")
		return err
	}
	return nil
}

// List retrieves a user's documents with pagination
func (s *DocumentService) List(ctx context.Context, userID int64, kind plan.Category, limit, offset int) ([]*document.Document, int64, error) {
	return s.repo.ListByUser(ctx, userID, kind, limit, offset)
}
