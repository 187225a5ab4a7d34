package services

import (
	"strings"
	"sync"
	"testing"

	"interview-prep-agent/internal/models"
)

func TestSessionCreateAndTake(t *testing.T) {
	store := NewSessionStore()

	entry := &SessionEntry{
		CVText:     "Jane Doe, 5 years Python",
		JobRole:    "Backend Engineer",
		JobCompany: "Acme",
		JobCountry: "Germany",
		Questions:  &models.QuestionSet{GeneralQuestions: []string{"q1"}},
	}

	id := store.Create(entry)
	if !strings.HasPrefix(id, "session_") {
		t.Errorf("expected id with session_ prefix, got %q", id)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := store.Take(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != entry {
		t.Error("expected the stored entry back")
	}
}

func TestSessionTakeUnknownID(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Take("session_does-not-exist")
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if kind := models.KindOf(err); kind != models.KindSessionNotFound {
		t.Errorf("expected kind %q, got %q", models.KindSessionNotFound, kind)
	}
}

func TestSessionTakeConsumesEntry(t *testing.T) {
	store := NewSessionStore()
	id := store.Create(&SessionEntry{CVText: "cv"})

	if _, err := store.Take(id); err != nil {
		t.Fatalf("unexpected error on first take: %v", err)
	}

	_, err := store.Take(id)
	if err == nil {
		t.Fatal("expected the second take to fail")
	}
	if kind := models.KindOf(err); kind != models.KindSessionNotFound {
		t.Errorf("expected kind %q, got %q", models.KindSessionNotFound, kind)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	store := NewSessionStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := store.Create(&SessionEntry{CVText: "cv"})
		if seen[id] {
			t.Fatalf("duplicate session id %q", id)
		}
		seen[id] = true
	}
}

func TestSessionConcurrentTakeSingleWinner(t *testing.T) {
	store := NewSessionStore()
	id := store.Create(&SessionEntry{CVText: "cv"})

	const attempts = 16

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Take(id); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Errorf("expected exactly 1 winner among %d concurrent takes, got %d", attempts, winners)
	}
}
