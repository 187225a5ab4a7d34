package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"interview-prep-agent/internal/models"
)

const questionsJSON = `{
	"general_questions": ["Tell me about a time you disagreed with a teammate.", "Why this company?"],
	"cv_based_questions": ["You led 3 projects - which was the hardest and why?", "Why did you pick Python for your last project?"],
	"technical_questions": ["How would you design a rate limiter?", "Explain how you would debug a slow SQL query."]
}`

const reportJSON = `{
	"performance_summary": "The candidate answered clearly and backed claims with project examples.",
	"decision": "PASS",
	"strengths": ["Clear communication", "Project ownership", "Solid backend fundamentals"],
	"weaknesses": ["Limited distributed systems depth", "Answers occasionally too long"],
	"fit_assessment": {
		"skill": {"score": "85%", "justification": "Strong backend foundation"},
		"behavioral": {"score": "80%", "justification": "Structured, honest answers"},
		"growth-potential": {"score": "90%", "justification": "Learns from every project"}
	},
	"topic_ratings": {
		"Technical Knowledge": {"score": "4", "justification": "Good fundamentals"},
		"Communication": {"score": "4", "justification": "Concise and structured"}
	},
	"improvement_plan": [
		{"issue": "Distributed systems depth", "rationale": "Role involves scaling services", "action": "Build a small sharded service", "timeline": "1 month"}
	],
	"agentic_followup": ["Schedule a system design mock interview"]
}`

// fakeLLM is a canned TextGenerator. When respond is set it decides the
// answer per prompt; otherwise response/err are returned for every call.
type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	prompts  []string
	respond  func(prompt string) (string, error)
}

func (f *fakeLLM) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.respond != nil {
		return f.respond(prompt)
	}
	return f.response, f.err
}

func (f *fakeLLM) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("embedding not supported in fake")
}

// fakeGenerator is a canned schema generator: it unmarshals payload into out,
// or fails with err.
type fakeGenerator struct {
	payload string
	err     error
	calls   int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, schema Schema, out interface{}) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.payload), out)
}

// countingStage records invocations and optionally fails.
type countingStage struct {
	calls int
	err   error
	fill  func(rec *models.WorkflowRecord)
}

func (s *countingStage) Run(ctx context.Context, rec *models.WorkflowRecord) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	if s.fill != nil {
		s.fill(rec)
	}
	return nil
}

// countingInterviewer records invocations and returns a fixed transcript.
type countingInterviewer struct {
	calls      int
	transcript []models.TranscriptTurn
	err        error
}

func (i *countingInterviewer) Conduct(ctx context.Context, rec *models.WorkflowRecord) ([]models.TranscriptTurn, error) {
	i.calls++
	if i.err != nil {
		return nil, i.err
	}
	return i.transcript, nil
}

func validRecord() *models.WorkflowRecord {
	return &models.WorkflowRecord{
		CVText:     "Jane Doe, 5 years Python, led 3 projects",
		JobRole:    "Backend Engineer",
		JobCompany: "Acme",
		JobCountry: "Germany",
	}
}

func sixTurnTranscript() []models.TranscriptTurn {
	return []models.TranscriptTurn{
		{Speaker: "interviewer", Text: "Tell me about yourself."},
		{Speaker: "candidate", Text: "I am a backend engineer with 5 years of Python."},
		{Speaker: "interviewer", Text: "Which of your 3 projects was hardest?"},
		{Speaker: "candidate", Text: "The payments migration, because of the data backfill."},
		{Speaker: "interviewer", Text: "How would you design a rate limiter?"},
		{Speaker: "candidate", Text: "Token bucket per client, stored in Redis."},
	}
}
