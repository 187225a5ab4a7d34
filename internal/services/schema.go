package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"interview-prep-agent/internal/models"
)

// FieldKind enumerates the value shapes a declared output schema may use.
type FieldKind int

const (
	// FieldString is a plain string.
	FieldString FieldKind = iota
	// FieldStringList is an ordered list of strings.
	FieldStringList
	// FieldScoreMap maps a category name to a {"score", "justification"}
	// string mapping.
	FieldScoreMap
	// FieldObjectList is an ordered list of flat string mappings.
	FieldObjectList
)

func (k FieldKind) describe() string {
	switch k {
	case FieldString:
		return "a string"
	case FieldStringList:
		return "a JSON array of strings"
	case FieldScoreMap:
		return `a JSON object mapping each category name to {"score": "<string>", "justification": "<string>"}`
	case FieldObjectList:
		return "a JSON array of objects whose values are all strings"
	default:
		return "a string"
	}
}

type Field struct {
	Name        string
	Kind        FieldKind
	Description string
	Optional    bool
}

// Schema declares the named fields an LLM response must contain. It drives
// both the formatting instructions sent with the prompt and the validation of
// the parsed response.
type Schema struct {
	Name   string
	Fields []Field
}

// FormatInstructions renders the machine-readable output contract appended to
// every prompt, mirroring what the declared fields will be validated against.
func (s Schema) FormatInstructions() string {
	var b strings.Builder
	b.WriteString("The output should be formatted as a JSON object containing exactly the following keys. ")
	b.WriteString("Do not wrap the JSON in markdown code fences and do not add any other text.\n")
	for _, f := range s.Fields {
		b.WriteString(fmt.Sprintf("- %q: %s", f.Name, f.Kind.describe()))
		if f.Description != "" {
			b.WriteString(": " + f.Description)
		}
		if f.Optional {
			b.WriteString(" (may be an empty value)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Validate checks a parsed JSON object field-by-field against the schema.
// Every violation is reported with the offending field name.
func (s Schema) Validate(raw map[string]json.RawMessage) error {
	for _, f := range s.Fields {
		value, ok := raw[f.Name]
		if !ok || string(value) == "null" {
			if f.Optional {
				continue
			}
			return models.Errf(models.KindSchemaViolation,
				"%s response is missing required field %q", s.Name, f.Name)
		}

		if err := validateKind(value, f.Kind); err != nil {
			return models.Errf(models.KindSchemaViolation,
				"%s response field %q: %v", s.Name, f.Name, err)
		}
	}
	return nil
}

func validateKind(value json.RawMessage, kind FieldKind) error {
	switch kind {
	case FieldString:
		var v string
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("expected a string")
		}
	case FieldStringList:
		var v []string
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("expected an array of strings")
		}
	case FieldScoreMap:
		var v map[string]map[string]string
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("expected a mapping of category to string mapping")
		}
	case FieldObjectList:
		var v []map[string]string
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("expected an array of string mappings")
		}
	}
	return nil
}

// QuestionSetSchema declares the three-category question set.
func QuestionSetSchema() Schema {
	return Schema{
		Name: "question set",
		Fields: []Field{
			{Name: "general_questions", Kind: FieldStringList, Description: "List of general behavioral questions"},
			{Name: "cv_based_questions", Kind: FieldStringList, Description: "List of questions based on the CV"},
			{Name: "technical_questions", Kind: FieldStringList, Description: "List of technical/professional questions"},
		},
	}
}

// PostInterviewReportSchema declares the structured post-interview report.
func PostInterviewReportSchema() Schema {
	return Schema{
		Name: "post-interview report",
		Fields: []Field{
			{Name: "performance_summary", Kind: FieldString, Description: "Short summary of candidate's overall performance"},
			{Name: "decision", Kind: FieldString, Description: "PASS / FAIL recommendation"},
			{Name: "strengths", Kind: FieldStringList, Description: "Candidate's top strengths based on CV and interview"},
			{Name: "weaknesses", Kind: FieldStringList, Description: "Candidate's weaknesses or areas to improve"},
			{Name: "fit_assessment", Kind: FieldScoreMap, Description: "Score and justification for skill, behavioral, and growth potential"},
			{Name: "topic_ratings", Kind: FieldScoreMap, Description: "Ratings for each relevant topic (1-5) with reasoning"},
			{Name: "improvement_plan", Kind: FieldObjectList, Description: "Actionable improvement plan with issue, rationale, action, and timeline"},
			{Name: "agentic_followup", Kind: FieldStringList, Description: "Optional actions AI can take to help candidate improve", Optional: true},
		},
	}
}
