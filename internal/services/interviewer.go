package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"interview-prep-agent/internal/models"
)

const (
	SpeakerInterviewer = "interviewer"
	SpeakerCandidate   = "candidate"
)

// Interviewer conducts the interview for a record whose questions are already
// generated and returns the ordered transcript. The live conversational agent
// behind the /start + /finish flow is one implementation (external, on the
// other side of the HTTP boundary); SimulatedInterviewer is the in-process
// one used for practice runs.
type Interviewer interface {
	Conduct(ctx context.Context, rec *models.WorkflowRecord) ([]models.TranscriptTurn, error)
}

// SimulatedInterviewer walks the generated questions in category order and
// has the model answer each one in the candidate's voice. One interviewer
// turn and one candidate turn per question.
type SimulatedInterviewer struct {
	llm         TextGenerator
	prompts     *PromptBuilder
	temperature float32
}

func NewSimulatedInterviewer(llm TextGenerator, temperature float32) *SimulatedInterviewer {
	return &SimulatedInterviewer{
		llm:         llm,
		prompts:     NewPromptBuilder(),
		temperature: temperature,
	}
}

func (s *SimulatedInterviewer) Conduct(ctx context.Context, rec *models.WorkflowRecord) ([]models.TranscriptTurn, error) {
	if rec.Questions == nil {
		return nil, models.Errf(models.KindMissingInput, "questions missing")
	}

	questions := rec.Questions.Ordered()
	log.Printf("🎤 Simulating interview with %d questions\n", len(questions))

	var transcript []models.TranscriptTurn

	for _, question := range questions {
		// Abort between turns if the caller has given up.
		select {
		case <-ctx.Done():
			return nil, models.Errf(models.KindGenerationFailure, "interview cancelled: %w", ctx.Err())
		default:
		}

		transcript = append(transcript, models.TranscriptTurn{
			Speaker: SpeakerInterviewer,
			Text:    question,
		})

		prompt := s.prompts.BuildCandidateAnswerPrompt(
			rec.CVText, rec.JobRole, rec.JobCompany, question, transcript)

		answer, err := s.llm.GenerateText(ctx, prompt, s.temperature)
		if err != nil {
			return nil, models.Errf(models.KindGenerationFailure,
				"Failed to conduct interview: %w", err)
		}

		transcript = append(transcript, models.TranscriptTurn{
			Speaker: SpeakerCandidate,
			Text:    strings.TrimSpace(answer),
		})
	}

	return transcript, nil
}

// ScriptedInterviewer replays a transcript supplied up front. Used when the
// interview already happened elsewhere and the full pipeline still needs to
// run over it.
type ScriptedInterviewer struct {
	Transcript []models.TranscriptTurn
}

func (s *ScriptedInterviewer) Conduct(ctx context.Context, rec *models.WorkflowRecord) ([]models.TranscriptTurn, error) {
	if len(s.Transcript) == 0 {
		return nil, fmt.Errorf("scripted transcript is empty")
	}
	return s.Transcript, nil
}
