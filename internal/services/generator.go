package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"interview-prep-agent/internal/models"
)

// Generator produces a schema-validated structured value from a single model
// call. It never retries: the provider call is expensive and the calling stage
// decides what to do with a failure.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema Schema, out interface{}) error
}

type schemaGenerator struct {
	llm         TextGenerator
	timeout     time.Duration
	temperature float32
}

func NewSchemaGenerator(llm TextGenerator, timeout time.Duration, temperature float32) Generator {
	return &schemaGenerator{
		llm:         llm,
		timeout:     timeout,
		temperature: temperature,
	}
}

// Generate sends the fully-substituted prompt plus the schema's formatting
// instructions to the provider, then parses and validates the response.
// Provider errors and timeouts surface as generation failures; a response that
// cannot be parsed into the declared fields surfaces as a schema violation.
func (g *schemaGenerator) Generate(ctx context.Context, prompt string, schema Schema, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	fullPrompt := prompt + "\n\n" + schema.FormatInstructions()

	response, err := g.llm.GenerateText(ctx, fullPrompt, g.temperature)
	if err != nil {
		return models.Errf(models.KindGenerationFailure,
			"%s generation failed: %w", schema.Name, err)
	}

	jsonStr := extractJSON(response)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return models.Errf(models.KindSchemaViolation,
			"%s response is not a valid JSON object: %v", schema.Name, err)
	}

	if err := schema.Validate(raw); err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		return models.Errf(models.KindSchemaViolation,
			"%s response does not match the declared structure: %v", schema.Name, err)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or
// other formatting around the object.
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
