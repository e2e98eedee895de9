package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/setting"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/usage"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/metrics"
)

// TextGenerator produces AI text. Satisfied by integrations.OpenAIClient.
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// GenerationService runs the paid AI features behind the entitlement gate.
// Every operation follows check, generate, record; a failed generation is
// never recorded against the user's quota.
type GenerationService struct {
	generator TextGenerator
	settings  setting.Service
	gate      usage.Service
	logger    *logger.Logger
}

// NewGenerationService creates a new generation service
func NewGenerationService(gen TextGenerator, settings setting.Service, gate usage.Service, log *logger.Logger) *GenerationService {
	return &GenerationService{
		generator: gen,
		settings:  settings,
		gate:      gate,
		logger:    log,
	}
}

// CoverLetterInput holds the inputs for a cover letter generation
type CoverLetterInput struct {
	JobTitle       string
	Company        string
	JobDescription string
	ResumeText     string
	Tone           string
}

// InterviewInput holds the inputs for interview question generation
type InterviewInput struct {
	JobTitle       string
	Company        string
	JobDescription string
	Count          int
}

// TailorInput holds the inputs for resume tailoring
type TailorInput struct {
	ResumeText     string
	JobDescription string
}

// ExperienceInput holds the inputs for experience bullet optimization
type ExperienceInput struct {
	Role           string
	Bullets        []string
	JobDescription string
}

// GenerateCoverLetter generates a cover letter for a job posting
func (s *GenerationService) GenerateCoverLetter(ctx context.Context, userID int64, in CoverLetterInput) (string, error) {
	tone := in.Tone
	if tone == "" {
		tone = "professional"
	}

	prompt := fmt.Sprintf(
		"Write a %s cover letter for the position of %s at %s.\n\nJob description:\n%s\n\nCandidate resume:\n%s",
		tone, in.JobTitle, in.Company, in.JobDescription, in.ResumeText,
	)

	return s.generate(ctx, userID, plan.CategoryCoverLetter,
		setting.KeyCoverLetterAIEnabled, "AI cover letter generation",
		"You are an expert career coach writing cover letters for job seekers in the UAE.",
		prompt)
}

// GenerateInterviewQuestions generates likely interview questions with
// suggested answers
func (s *GenerationService) GenerateInterviewQuestions(ctx context.Context, userID int64, in InterviewInput) (string, error) {
	count := in.Count
	if count <= 0 || count > 20 {
		count = 10
	}

	prompt := fmt.Sprintf(
		"Generate %d likely interview questions with suggested answers for the position of %s at %s.\n\nJob description:\n%s",
		count, in.JobTitle, in.Company, in.JobDescription,
	)

	return s.generate(ctx, userID, plan.CategoryInterview,
		setting.KeyInterviewAIEnabled, "AI interview preparation",
		"You are an experienced interviewer preparing candidates for job interviews in the UAE market.",
		prompt)
}

// TailorResume rewrites a resume to target a specific job description
func (s *GenerationService) TailorResume(ctx context.Context, userID int64, in TailorInput) (string, error) {
	prompt := fmt.Sprintf(
		"Tailor the following resume to the job description. Keep the facts, reorder and rephrase for relevance.\n\nJob description:\n%s\n\nResume:\n%s",
		in.JobDescription, in.ResumeText,
	)

	return s.generate(ctx, userID, plan.CategoryResume,
		setting.KeyResumeAITailorEnabled, "AI resume tailoring",
		"You are an expert resume writer familiar with UAE hiring practices and ATS systems.",
		prompt)
}

// OptimizeExperience rewrites experience bullets for impact
func (s *GenerationService) OptimizeExperience(ctx context.Context, userID int64, in ExperienceInput) (string, error) {
	prompt := fmt.Sprintf(
		"Rewrite these experience bullet points for a %s role to be achievement-oriented and quantified.\n\nBullets:\n- %s\n\nTarget job description:\n%s",
		in.Role, strings.Join(in.Bullets, "\n- "), in.JobDescription,
	)

	return s.generate(ctx, userID, plan.CategoryResume,
		setting.KeyResumeAIExperienceEnabled, "AI experience optimization",
		"You are an expert resume writer. Return one rewritten bullet per line.",
		prompt)
}

// generate is the shared check -> generate -> record pipeline
func (s *GenerationService) generate(ctx context.Context, userID int64, category plan.Category, flagKey, featureName, system, prompt string) (string, error) {
	enabled, err := s.settings.GetBool(ctx, flagKey, false)
	if err != nil {
		return "", err
	}
	if !enabled {
		return "", errors.FeatureDisabled(featureName)
	}

	if err := s.gate.CheckLimit(ctx, userID, category); err != nil {
		return "", err
	}

	start := time.Now()
	text, err := s.generator.Complete(ctx, system, prompt)
	if err != nil {
		metrics.RecordAIGeneration(string(category), "error", time.Since(start))
		s.logger.ErrorWithErr(err, "AI generation failed")
		return "", errors.AIProviderError(err)
	}
	metrics.RecordAIGeneration(string(category), "success", time.Since(start))

	// Only a confirmed generation consumes quota
	if err := s.gate.RecordUsage(ctx, userID, category); err != nil {
		return "", err
	}

	return text, nil
}
