package client

import "context"

// CoverLetterInput holds the inputs for a cover letter generation
type CoverLetterInput struct {
	JobTitle       string `json:"jobTitle"`
	Company        string `json:"company"`
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText"`
	Tone           string `json:"tone,omitempty"`
}

// InterviewInput holds the inputs for interview question generation
type InterviewInput struct {
	JobTitle       string `json:"jobTitle"`
	Company        string `json:"company"`
	JobDescription string `json:"jobDescription"`
	Count          int    `json:"count,omitempty"`
}

// TailorInput holds the inputs for resume tailoring
type TailorInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// GenerateCoverLetter generates a cover letter. Consumes one cover letter
// credit on success.
func (c *Client) GenerateCoverLetter(ctx context.Context, in CoverLetterInput) (string, error) {
	var gen Generation
	if err := c.doRequest(ctx, "POST", "/api/v1/ai/cover-letter", in, &gen); err != nil {
		return "", err
	}
	return gen.Text, nil
}

// GenerateInterviewQuestions generates interview questions. Consumes one
// interview credit on success.
func (c *Client) GenerateInterviewQuestions(ctx context.Context, in InterviewInput) (string, error) {
	var gen Generation
	if err := c.doRequest(ctx, "POST", "/api/v1/ai/interview-questions", in, &gen); err != nil {
		return "", err
	}
	return gen.Text, nil
}

// TailorResume rewrites a resume against a job description. Consumes one
// resume credit on success.
func (c *Client) TailorResume(ctx context.Context, in TailorInput) (string, error) {
	var gen Generation
	if err := c.doRequest(ctx, "POST", "/api/v1/ai/resume/tailor", in, &gen); err != nil {
		return "", err
	}
	return gen.Text, nil
}
