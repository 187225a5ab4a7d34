package services

import (
	"context"
	"log"

	"interview-prep-agent/internal/models"
)

// Stage is one step of the pipeline. A stage validates its own inputs,
// performs its work, and writes exactly one output field of the record.
type Stage interface {
	Run(ctx context.Context, rec *models.WorkflowRecord) error
}

// PipelineRunner threads a single record through the three stages in fixed
// order. The first failing stage writes the record's error once and the run
// stops there; no stage is retried and no stage runs out of order.
type PipelineRunner struct {
	questions   Stage
	interviewer Interviewer
	critique    Stage

	// OnTransition, when set, observes every state the run enters.
	OnTransition func(models.RunState)
}

func NewPipelineRunner(questions Stage, interviewer Interviewer, critique Stage) *PipelineRunner {
	return &PipelineRunner{
		questions:   questions,
		interviewer: interviewer,
		critique:    critique,
	}
}

func (p *PipelineRunner) Run(ctx context.Context, rec *models.WorkflowRecord) models.RunState {
	p.enter(models.StateQuestioning)
	if err := p.questions.Run(ctx, rec); err != nil {
		return p.fail(rec, err)
	}

	p.enter(models.StateInterviewing)
	transcript, err := p.interviewer.Conduct(ctx, rec)
	if err != nil {
		return p.fail(rec, err)
	}
	if len(transcript) == 0 {
		return p.fail(rec, models.Errf(models.KindMissingInput, "interview produced no transcript"))
	}
	rec.InterviewTranscript = transcript

	p.enter(models.StateCritiquing)
	if err := p.critique.Run(ctx, rec); err != nil {
		return p.fail(rec, err)
	}

	p.enter(models.StateDone)
	return models.StateDone
}

func (p *PipelineRunner) enter(state models.RunState) {
	log.Printf("🔄 Pipeline state: %s\n", state)
	if p.OnTransition != nil {
		p.OnTransition(state)
	}
}

func (p *PipelineRunner) fail(rec *models.WorkflowRecord, err error) models.RunState {
	if rec.Error == "" {
		rec.Error = err.Error()
	}
	log.Printf("❌ Pipeline failed: %v\n", err)
	p.enter(models.StateFailed)
	return models.StateFailed
}
