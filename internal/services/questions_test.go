package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"interview-prep-agent/internal/models"
)

func TestQuestionStageRejectsMissingInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(rec *models.WorkflowRecord)
		field  string
	}{
		{"missing cv text", func(rec *models.WorkflowRecord) { rec.CVText = "" }, "cv_text"},
		{"whitespace cv text", func(rec *models.WorkflowRecord) { rec.CVText = "   \n" }, "cv_text"},
		{"missing job role", func(rec *models.WorkflowRecord) { rec.JobRole = "" }, "job_role"},
		{"missing job company", func(rec *models.WorkflowRecord) { rec.JobCompany = "" }, "job_company"},
		{"missing job country", func(rec *models.WorkflowRecord) { rec.JobCountry = "" }, "job_country"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{payload: questionsJSON}
			stage := NewQuestionStage(gen, nil, nil)

			rec := validRecord()
			tt.mutate(rec)

			err := stage.Run(context.Background(), rec)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if kind := models.KindOf(err); kind != models.KindMissingInput {
				t.Errorf("expected kind %q, got %q (%v)", models.KindMissingInput, kind, err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error should name %q, got %q", tt.field, err.Error())
			}
			if gen.calls != 0 {
				t.Errorf("generator must not be called on missing input, got %d calls", gen.calls)
			}
		})
	}
}

func TestQuestionStageFillsQuestionSet(t *testing.T) {
	gen := &fakeGenerator{payload: questionsJSON}
	stage := NewQuestionStage(gen, nil, nil)

	rec := validRecord()
	if err := stage.Run(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Questions == nil {
		t.Fatal("expected questions to be set")
	}
	for _, category := range [][]string{
		rec.Questions.GeneralQuestions,
		rec.Questions.CVBasedQuestions,
		rec.Questions.TechnicalQuestions,
	} {
		if len(category) < 2 || len(category) > 3 {
			t.Errorf("expected 2-3 questions per category, got %d", len(category))
		}
	}
	if gen.calls != 1 {
		t.Errorf("expected exactly 1 generator call, got %d", gen.calls)
	}
}

func TestQuestionStageGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: models.Errf(models.KindGenerationFailure, "question set generation failed: %w", errors.New("timeout"))}
	stage := NewQuestionStage(gen, nil, nil)

	rec := validRecord()
	err := stage.Run(context.Background(), rec)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "Failed to generate questions:") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
	if kind := models.KindOf(err); kind != models.KindGenerationFailure {
		t.Errorf("expected kind %q to survive wrapping, got %q", models.KindGenerationFailure, kind)
	}
	if rec.Questions != nil {
		t.Error("questions must not be set on failure")
	}
}

func TestCritiqueStageRequiresTranscript(t *testing.T) {
	gen := &fakeGenerator{payload: reportJSON}
	stage := NewCritiqueStage(gen)

	rec := validRecord()
	err := stage.Run(context.Background(), rec)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if kind := models.KindOf(err); kind != models.KindMissingInput {
		t.Errorf("expected kind %q, got %q (%v)", models.KindMissingInput, kind, err)
	}
	if gen.calls != 0 {
		t.Errorf("generator must not be called without a transcript, got %d calls", gen.calls)
	}
}

func TestCritiqueStageFillsReport(t *testing.T) {
	gen := &fakeGenerator{payload: reportJSON}
	stage := NewCritiqueStage(gen)

	rec := validRecord()
	rec.InterviewTranscript = sixTurnTranscript()

	if err := stage.Run(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.FinalReview == nil {
		t.Fatal("expected final review to be set")
	}
	if rec.FinalReview.Decision != "PASS" && rec.FinalReview.Decision != "FAIL" {
		t.Errorf("expected decision PASS or FAIL, got %q", rec.FinalReview.Decision)
	}
	for _, category := range []string{"skill", "behavioral", "growth-potential"} {
		if _, ok := rec.FinalReview.FitAssessment[category]; !ok {
			t.Errorf("fit assessment is missing category %q", category)
		}
	}
	if len(rec.FinalReview.ImprovementPlan) == 0 {
		t.Error("expected a non-empty improvement plan")
	}
}

func TestCritiqueStageGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: models.Errf(models.KindSchemaViolation, "post-interview report response is not a valid JSON object")}
	stage := NewCritiqueStage(gen)

	rec := validRecord()
	rec.InterviewTranscript = sixTurnTranscript()

	err := stage.Run(context.Background(), rec)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "Failed to generate report:") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
	if rec.FinalReview != nil {
		t.Error("final review must not be set on failure")
	}
}
