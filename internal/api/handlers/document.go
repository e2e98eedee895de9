package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Lazycharm/Careerpilot-sub001/internal/api/dto"
	"github.com/Lazycharm/Careerpilot-sub001/internal/api/middleware"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/document"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/utils"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/validator"
	"github.com/Lazycharm/Careerpilot-sub001/internal/services"
)

// DocumentHandler handles resume, cover letter and prep sheet CRUD
type DocumentHandler struct {
	documents *services.DocumentService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docs *services.DocumentService, log *logger.Logger, val *validator.Validator) *DocumentHandler {
	return &DocumentHandler{
		documents: docs,
		logger:    log,
		validator: val,
	}
}

// Create creates a new document
// @Summary Create a document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDocumentRequest true "Document"
// @Success 201 {object} document.Document
// @Failure 400 {object} utils.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	userID, _ := middleware.GetUserID(r)

	kind, ok := plan.ParseCategory(req.Kind)
	if !ok {
		utils.WriteError(w, errors.BadRequest("Unknown document kind"))
		return
	}

	doc := &document.Document{
		UserID:  userID,
		Kind:    kind,
		Title:   req.Title,
		Content: req.Content,
	}

	if err := h.documents.Create(r.Context(), doc); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, doc)
}

// Get retrieves one document
// @Summary Get a document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} document.Document
// @Failure 404 {object} utils.ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid document ID"))
		return
	}

	userID, _ := middleware.GetUserID(r)

	doc, err := h.documents.GetByID(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, doc)
}

// Update updates a document's title and content
// @Summary Update a document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param request body dto.UpdateDocumentRequest true "New content"
// @Success 200 {object} document.Document
// @Failure 404 {object} utils.ErrorResponse
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid document ID"))
		return
	}

	var req dto.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	userID, _ := middleware.GetUserID(r)

	doc, err := h.documents.GetByID(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	doc.Title = req.Title
	doc.Content = req.Content

	if err := h.documents.Update(r.Context(), doc); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, doc)
}

// Delete deletes a document
// @Summary Delete a document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid document ID"))
		return
	}

	userID, _ := middleware.GetUserID(r)

	if err := h.documents.Delete(r.Context(), userID, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Document deleted", nil)
}

// List lists the user's documents
// @Summary List documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Filter by kind"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse
// @Router /documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var kind plan.Category
	if k := r.URL.Query().Get("kind"); k != "" {
		parsed, ok := plan.ParseCategory(k)
		if !ok {
			utils.WriteError(w, errors.BadRequest("Unknown document kind"))
			return
		}
		kind = parsed
	}

	params := utils.ParsePaginationParams(r)

	docs, total, err := h.documents.List(r.Context(), userID, kind, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if docs == nil {
		docs = []*document.Document{}
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(docs, params.Page, params.PageSize, total))
}
