package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"interview-prep-agent/internal/models"
)

func TestGenerateParsesValidResponse(t *testing.T) {
	llm := &fakeLLM{response: questionsJSON}
	gen := NewSchemaGenerator(llm, 5*time.Second, 0.3)

	var out models.QuestionSet
	if err := gen.Generate(context.Background(), "generate questions", QuestionSetSchema(), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.GeneralQuestions) != 2 {
		t.Errorf("expected 2 general questions, got %d", len(out.GeneralQuestions))
	}
	if len(out.CVBasedQuestions) != 2 {
		t.Errorf("expected 2 cv based questions, got %d", len(out.CVBasedQuestions))
	}
	if len(out.TechnicalQuestions) != 2 {
		t.Errorf("expected 2 technical questions, got %d", len(out.TechnicalQuestions))
	}
}

func TestGenerateAppendsFormatInstructions(t *testing.T) {
	llm := &fakeLLM{response: questionsJSON}
	gen := NewSchemaGenerator(llm, 5*time.Second, 0.3)

	var out models.QuestionSet
	if err := gen.Generate(context.Background(), "generate questions", QuestionSetSchema(), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if llm.calls != 1 {
		t.Fatalf("expected exactly 1 provider call, got %d", llm.calls)
	}
	prompt := llm.prompts[0]
	for _, field := range []string{"general_questions", "cv_based_questions", "technical_questions"} {
		if !strings.Contains(prompt, field) {
			t.Errorf("prompt is missing format instructions for %q", field)
		}
	}
}

func TestGenerateStripsMarkdownFences(t *testing.T) {
	llm := &fakeLLM{response: "Here you go:\n```json\n" + questionsJSON + "\n```\nHope that helps!"}
	gen := NewSchemaGenerator(llm, 5*time.Second, 0.3)

	var out models.QuestionSet
	if err := gen.Generate(context.Background(), "generate questions", QuestionSetSchema(), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Ordered()) != 6 {
		t.Errorf("expected 6 questions total, got %d", len(out.Ordered()))
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	llm := &fakeLLM{err: errors.New("rate limited")}
	gen := NewSchemaGenerator(llm, 5*time.Second, 0.3)

	var out models.QuestionSet
	err := gen.Generate(context.Background(), "generate questions", QuestionSetSchema(), &out)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if kind := models.KindOf(err); kind != models.KindGenerationFailure {
		t.Errorf("expected kind %q, got %q (%v)", models.KindGenerationFailure, kind, err)
	}
	if llm.calls != 1 {
		t.Errorf("expected exactly 1 provider call (no retry), got %d", llm.calls)
	}
}

func TestGenerateNonJSONResponse(t *testing.T) {
	llm := &fakeLLM{response: "I cannot produce questions for this CV, sorry."}
	gen := NewSchemaGenerator(llm, 5*time.Second, 0.3)

	var out models.QuestionSet
	err := gen.Generate(context.Background(), "generate questions", QuestionSetSchema(), &out)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if kind := models.KindOf(err); kind != models.KindSchemaViolation {
		t.Errorf("expected kind %q, got %q (%v)", models.KindSchemaViolation, kind, err)
	}
}

func TestGenerateMissingField(t *testing.T) {
	llm := &fakeLLM{response: `{"general_questions": ["q1"], "cv_based_questions": ["q2"]}`}
	gen := NewSchemaGenerator(llm, 5*time.Second, 0.3)

	var out models.QuestionSet
	err := gen.Generate(context.Background(), "generate questions", QuestionSetSchema(), &out)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if kind := models.KindOf(err); kind != models.KindSchemaViolation {
		t.Errorf("expected kind %q, got %q (%v)", models.KindSchemaViolation, kind, err)
	}
	if !strings.Contains(err.Error(), "technical_questions") {
		t.Errorf("error should name the missing field, got %q", err.Error())
	}
}

func TestGenerateWrongFieldShape(t *testing.T) {
	llm := &fakeLLM{response: `{
		"general_questions": "not a list",
		"cv_based_questions": ["q"],
		"technical_questions": ["q"]
	}`}
	gen := NewSchemaGenerator(llm, 5*time.Second, 0.3)

	var out models.QuestionSet
	err := gen.Generate(context.Background(), "generate questions", QuestionSetSchema(), &out)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if kind := models.KindOf(err); kind != models.KindSchemaViolation {
		t.Errorf("expected kind %q, got %q (%v)", models.KindSchemaViolation, kind, err)
	}
	if !strings.Contains(err.Error(), "general_questions") {
		t.Errorf("error should name the offending field, got %q", err.Error())
	}
}

func TestSchemaValidate(t *testing.T) {
	schema := PostInterviewReportSchema()

	parse := func(t *testing.T, s string) map[string]json.RawMessage {
		t.Helper()
		var raw map[string]json.RawMessage
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			t.Fatalf("bad test fixture: %v", err)
		}
		return raw
	}

	t.Run("complete report passes", func(t *testing.T) {
		if err := schema.Validate(parse(t, reportJSON)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("optional field may be absent", func(t *testing.T) {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal([]byte(reportJSON), &raw); err != nil {
			t.Fatalf("bad test fixture: %v", err)
		}
		delete(raw, "agentic_followup")
		if err := schema.Validate(raw); err != nil {
			t.Errorf("unexpected error without optional field: %v", err)
		}
	})

	t.Run("null required field fails", func(t *testing.T) {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal([]byte(reportJSON), &raw); err != nil {
			t.Fatalf("bad test fixture: %v", err)
		}
		raw["decision"] = json.RawMessage("null")
		err := schema.Validate(raw)
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if !strings.Contains(err.Error(), "decision") {
			t.Errorf("error should name the field, got %q", err.Error())
		}
	})

	t.Run("score map with non-string leaf fails", func(t *testing.T) {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal([]byte(reportJSON), &raw); err != nil {
			t.Fatalf("bad test fixture: %v", err)
		}
		raw["fit_assessment"] = json.RawMessage(`{"skill": {"score": 85}}`)
		err := schema.Validate(raw)
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if kind := models.KindOf(err); kind != models.KindSchemaViolation {
			t.Errorf("expected kind %q, got %q", models.KindSchemaViolation, kind)
		}
	})
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"fenced object", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding prose", `Sure! {"a": 1} Done.`, `{"a": 1}`},
		{"bare array", `[1, 2]`, `[1, 2]`},
		{"no json at all", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
