package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"interview-prep-agent/internal/models"
)

// RunRecord is one asynchronous practice run: the inputs it was created with,
// its lifecycle status, and its outcome.
type RunRecord struct {
	ID           uuid.UUID
	Status       models.RunStatus
	Record       *models.WorkflowRecord
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RunStore keeps run records for the lifetime of the process. Nothing here is
// durable: a restart forgets all runs.
type RunStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*RunRecord
}

func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[uuid.UUID]*RunRecord),
	}
}

// Create registers a queued run for the given inputs and returns its record.
func (s *RunStore) Create(rec *models.WorkflowRecord) *RunRecord {
	now := time.Now()
	run := &RunRecord{
		ID:        uuid.New(),
		Status:    models.StatusQueued,
		Record:    rec,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()

	return run
}

// FindByID returns a copy of the run record.
func (s *RunStore) FindByID(id uuid.UUID) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run not found")
	}

	copied := *run
	return &copied, nil
}

// UpdateStatus moves the run to the given lifecycle status.
func (s *RunStore) UpdateStatus(id uuid.UUID, status models.RunStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return fmt.Errorf("run not found")
	}

	run.Status = status
	run.UpdatedAt = time.Now()
	return nil
}

// Complete marks the run completed.
func (s *RunStore) Complete(id uuid.UUID) error {
	return s.UpdateStatus(id, models.StatusCompleted)
}

// Fail marks the run failed with the given message.
func (s *RunStore) Fail(id uuid.UUID, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return fmt.Errorf("run not found")
	}

	run.Status = models.StatusFailed
	run.ErrorMessage = errorMsg
	run.UpdatedAt = time.Now()
	return nil
}
