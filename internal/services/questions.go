package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"interview-prep-agent/internal/models"
)

var questionCategories = []string{"general", "cv_based", "technical"}

// QuestionStage builds the question-generation prompt from the record's
// inputs and fills in the question set. All four inputs are required.
type QuestionStage struct {
	generator Generator
	prompts   *PromptBuilder
	embedder  TextGenerator
	bank      QuestionBank
}

// NewQuestionStage constructs the stage. embedder and bank may both be nil, in
// which case no reference questions are retrieved.
func NewQuestionStage(generator Generator, embedder TextGenerator, bank QuestionBank) *QuestionStage {
	return &QuestionStage{
		generator: generator,
		prompts:   NewPromptBuilder(),
		embedder:  embedder,
		bank:      bank,
	}
}

func (s *QuestionStage) Run(ctx context.Context, rec *models.WorkflowRecord) error {
	if err := requireInputs(rec); err != nil {
		return err
	}

	log.Printf("🤖 Generating questions for role: %s at %s (%s)\n", rec.JobRole, rec.JobCompany, rec.JobCountry)

	reference := s.retrieveReference(ctx, rec.CVText)
	prompt := s.prompts.BuildQuestionPrompt(rec.CVText, rec.JobRole, rec.JobCompany, rec.JobCountry, reference)

	var questions models.QuestionSet
	if err := s.generator.Generate(ctx, prompt, QuestionSetSchema(), &questions); err != nil {
		return fmt.Errorf("Failed to generate questions: %w", err)
	}

	rec.Questions = &questions
	log.Printf("✅ Generated %d technical questions\n", len(questions.TechnicalQuestions))
	return nil
}

// retrieveReference looks up exemplar questions similar to the CV. Retrieval
// is best-effort: any failure is logged and an empty block returned.
func (s *QuestionStage) retrieveReference(ctx context.Context, cvText string) string {
	if s.bank == nil || s.embedder == nil {
		return ""
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, cvText)
	if err != nil {
		log.Printf("⚠️  Failed to embed CV for reference lookup: %v\n", err)
		return ""
	}

	var lines []string
	for _, category := range questionCategories {
		results, err := s.bank.SearchSimilar(ctx, embedding, category, 2)
		if err != nil {
			log.Printf("⚠️  Failed to search question bank for %s: %v\n", category, err)
			continue
		}
		for _, result := range results {
			lines = append(lines, fmt.Sprintf("- [%s] %s", result.Category, strings.TrimSpace(result.Text)))
		}
	}

	return strings.Join(lines, "\n")
}

func requireInputs(rec *models.WorkflowRecord) error {
	switch {
	case strings.TrimSpace(rec.CVText) == "":
		return models.Errf(models.KindMissingInput, "cv_text missing")
	case strings.TrimSpace(rec.JobRole) == "":
		return models.Errf(models.KindMissingInput, "job_role missing")
	case strings.TrimSpace(rec.JobCompany) == "":
		return models.Errf(models.KindMissingInput, "job_company missing")
	case strings.TrimSpace(rec.JobCountry) == "":
		return models.Errf(models.KindMissingInput, "job_country missing")
	}
	return nil
}
