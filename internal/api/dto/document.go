package dto

// CreateDocumentRequest creates a resume, cover letter or prep sheet
type CreateDocumentRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=resume cover_letter interview"`
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content,omitempty"`
}

// UpdateDocumentRequest updates a document's title and content
type UpdateDocumentRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content,omitempty"`
}
