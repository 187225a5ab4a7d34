package services

import (
	"context"
	"fmt"
	"log"

	"interview-prep-agent/internal/models"
)

// CritiqueStage grades the interview transcript into the structured
// post-interview report. It refuses to run without a transcript.
type CritiqueStage struct {
	generator Generator
	prompts   *PromptBuilder
}

func NewCritiqueStage(generator Generator) *CritiqueStage {
	return &CritiqueStage{
		generator: generator,
		prompts:   NewPromptBuilder(),
	}
}

func (s *CritiqueStage) Run(ctx context.Context, rec *models.WorkflowRecord) error {
	if err := requireInputs(rec); err != nil {
		return err
	}
	if len(rec.InterviewTranscript) == 0 {
		return models.Errf(models.KindMissingInput, "interview_transcript missing")
	}

	log.Printf("🤖 Generating post-interview report for %s at %s\n", rec.JobRole, rec.JobCompany)

	prompt := s.prompts.BuildCritiquePrompt(
		rec.CVText, rec.JobRole, rec.JobCompany, rec.JobCountry, rec.InterviewTranscript)

	var report models.PostInterviewReport
	if err := s.generator.Generate(ctx, prompt, PostInterviewReportSchema(), &report); err != nil {
		return fmt.Errorf("Failed to generate report: %w", err)
	}

	rec.FinalReview = &report
	log.Printf("✅ Report generated (decision: %s)\n", report.Decision)
	return nil
}
