package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditLogger appends one line per accepted upload to a plain-text metadata
// file. The file is write-only from the pipeline's point of view: nothing in
// the service ever reads it back.
type AuditLogger struct {
	mu   sync.Mutex
	path string
}

func NewAuditLogger(uploadPath string) *AuditLogger {
	return &AuditLogger{
		path: filepath.Join(uploadPath, "metadata.txt"),
	}
}

// Record appends "{timestamp} | name | role | company | country | filename".
func (a *AuditLogger) Record(name, jobRole, jobCompany, jobCountry, filename string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s | %s | %s | %s | %s | %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		name, jobRole, jobCompany, jobCountry, filename)

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}

	return nil
}
