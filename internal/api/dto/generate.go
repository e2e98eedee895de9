package dto

// CoverLetterRequest asks for an AI generated cover letter
type CoverLetterRequest struct {
	JobTitle       string `json:"jobTitle" validate:"required,max=255"`
	Company        string `json:"company" validate:"required,max=255"`
	JobDescription string `json:"jobDescription" validate:"required"`
	ResumeText     string `json:"resumeText" validate:"required"`
	Tone           string `json:"tone,omitempty" validate:"omitempty,oneof=professional friendly confident"`
}

// InterviewQuestionsRequest asks for AI generated interview questions
type InterviewQuestionsRequest struct {
	JobTitle       string `json:"jobTitle" validate:"required,max=255"`
	Company        string `json:"company" validate:"required,max=255"`
	JobDescription string `json:"jobDescription" validate:"required"`
	Count          int    `json:"count,omitempty" validate:"omitempty,min=1,max=20"`
}

// TailorResumeRequest asks for a resume rewritten against a job description
type TailorResumeRequest struct {
	ResumeText     string `json:"resumeText" validate:"required"`
	JobDescription string `json:"jobDescription" validate:"required"`
}

// OptimizeExperienceRequest asks for rewritten experience bullets
type OptimizeExperienceRequest struct {
	Role           string   `json:"role" validate:"required,max=255"`
	Bullets        []string `json:"bullets" validate:"required,min=1,dive,required"`
	JobDescription string   `json:"jobDescription,omitempty"`
}

// GenerationResponse carries the generated text
type GenerationResponse struct {
	Text string `json:"text"`
}
