package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lazycharm/Careerpilot-sub001/pkg/client"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "AI generation commands (consume plan credits)",
	}

	cmd.AddCommand(newGenerateCoverLetterCmd())
	cmd.AddCommand(newGenerateInterviewCmd())
	cmd.AddCommand(newGenerateTailorCmd())

	return cmd
}

func newGenerateCoverLetterCmd() *cobra.Command {
	var jobTitle, company, jobDescFile, resumeFile, tone string

	cmd := &cobra.Command{
		Use:   "cover-letter",
		Short: "Generate a cover letter for a job posting",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobDesc, err := readFileArg(jobDescFile, "job description")
			if err != nil {
				return err
			}
			resume, err := readFileArg(resumeFile, "resume")
			if err != nil {
				return err
			}

			text, err := apiClient.GenerateCoverLetter(context.Background(), client.CoverLetterInput{
				JobTitle:       jobTitle,
				Company:        company,
				JobDescription: jobDesc,
				ResumeText:     resume,
				Tone:           tone,
			})
			if err != nil {
				return err
			}

			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&jobTitle, "title", "", "job title (required)")
	cmd.Flags().StringVar(&company, "company", "", "company name (required)")
	cmd.Flags().StringVar(&jobDescFile, "job-description", "", "path to job description file (required)")
	cmd.Flags().StringVar(&resumeFile, "resume", "", "path to resume text file (required)")
	cmd.Flags().StringVar(&tone, "tone", "", "tone: professional, friendly or confident")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("job-description")
	_ = cmd.MarkFlagRequired("resume")

	return cmd
}

func newGenerateInterviewCmd() *cobra.Command {
	var jobTitle, company, jobDescFile string
	var count int

	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Generate likely interview questions with suggested answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobDesc, err := readFileArg(jobDescFile, "job description")
			if err != nil {
				return err
			}

			text, err := apiClient.GenerateInterviewQuestions(context.Background(), client.InterviewInput{
				JobTitle:       jobTitle,
				Company:        company,
				JobDescription: jobDesc,
				Count:          count,
			})
			if err != nil {
				return err
			}

			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&jobTitle, "title", "", "job title (required)")
	cmd.Flags().StringVar(&company, "company", "", "company name (required)")
	cmd.Flags().StringVar(&jobDescFile, "job-description", "", "path to job description file (required)")
	cmd.Flags().IntVar(&count, "count", 10, "number of questions")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("job-description")

	return cmd
}

func newGenerateTailorCmd() *cobra.Command {
	var jobDescFile, resumeFile string

	cmd := &cobra.Command{
		Use:   "tailor",
		Short: "Tailor a resume to a job description",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobDesc, err := readFileArg(jobDescFile, "job description")
			if err != nil {
				return err
			}
			resume, err := readFileArg(resumeFile, "resume")
			if err != nil {
				return err
			}

			text, err := apiClient.TailorResume(context.Background(), client.TailorInput{
				ResumeText:     resume,
				JobDescription: jobDesc,
			})
			if err != nil {
				return err
			}

			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&jobDescFile, "job-description", "", "path to job description file (required)")
	cmd.Flags().StringVar(&resumeFile, "resume", "", "path to resume text file (required)")
	_ = cmd.MarkFlagRequired("job-description")
	_ = cmd.MarkFlagRequired("resume")

	return cmd
}

func readFileArg(path, what string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s file: %w", what, err)
	}
	return string(data), nil
}
