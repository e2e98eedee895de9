package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Lazycharm/Careerpilot-sub001/internal/api/dto"
	"github.com/Lazycharm/Careerpilot-sub001/internal/api/middleware"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/utils"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/validator"
	"github.com/Lazycharm/Careerpilot-sub001/internal/services"
)

// GenerateHandler handles the AI generation routes. Entitlement and feature
// flag checks live in the service; this layer only shapes requests and
// responses.
type GenerateHandler struct {
	generation *services.GenerationService
	logger     *logger.Logger
	validator  *validator.Validator
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(gen *services.GenerationService, log *logger.Logger, val *validator.Validator) *GenerateHandler {
	return &GenerateHandler{
		generation: gen,
		logger:     log,
		validator:  val,
	}
}

// CoverLetter generates a cover letter
// @Summary Generate a cover letter
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CoverLetterRequest true "Cover letter inputs"
// @Success 200 {object} dto.GenerationResponse
// @Failure 403 {object} utils.ErrorResponse "Quota exhausted or feature disabled"
// @Router /ai/cover-letter [post]
func (h *GenerateHandler) CoverLetter(w http.ResponseWriter, r *http.Request) {
	var req dto.CoverLetterRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserID(r)

	text, err := h.generation.GenerateCoverLetter(r.Context(), userID, services.CoverLetterInput{
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		JobDescription: req.JobDescription,
		ResumeText:     req.ResumeText,
		Tone:           req.Tone,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.GenerationResponse{Text: text})
}

// InterviewQuestions generates interview questions with suggested answers
// @Summary Generate interview questions
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InterviewQuestionsRequest true "Interview inputs"
// @Success 200 {object} dto.GenerationResponse
// @Failure 403 {object} utils.ErrorResponse "Quota exhausted or feature disabled"
// @Router /ai/interview-questions [post]
func (h *GenerateHandler) InterviewQuestions(w http.ResponseWriter, r *http.Request) {
	var req dto.InterviewQuestionsRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserID(r)

	text, err := h.generation.GenerateInterviewQuestions(r.Context(), userID, services.InterviewInput{
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		JobDescription: req.JobDescription,
		Count:          req.Count,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.GenerationResponse{Text: text})
}

// TailorResume rewrites a resume against a job description
// @Summary Tailor a resume to a job description
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TailorResumeRequest true "Tailoring inputs"
// @Success 200 {object} dto.GenerationResponse
// @Failure 403 {object} utils.ErrorResponse "Quota exhausted or feature disabled"
// @Router /ai/resume/tailor [post]
func (h *GenerateHandler) TailorResume(w http.ResponseWriter, r *http.Request) {
	var req dto.TailorResumeRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserID(r)

	text, err := h.generation.TailorResume(r.Context(), userID, services.TailorInput{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.GenerationResponse{Text: text})
}

// OptimizeExperience rewrites experience bullets for impact
// @Summary Optimize experience bullet points
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OptimizeExperienceRequest true "Experience inputs"
// @Success 200 {object} dto.GenerationResponse
// @Failure 403 {object} utils.ErrorResponse "Quota exhausted or feature disabled"
// @Router /ai/resume/experience [post]
func (h *GenerateHandler) OptimizeExperience(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeExperienceRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserID(r)

	text, err := h.generation.OptimizeExperience(r.Context(), userID, services.ExperienceInput{
		Role:           req.Role,
		Bullets:        req.Bullets,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.GenerationResponse{Text: text})
}

func (h *GenerateHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return false
	}

	return true
}
