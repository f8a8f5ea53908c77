package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"rangerblock/internal/core/domain"
)

// SecurityLogFile is the append-only, human-readable security log.
const SecurityLogFile = "security_audit.log"

// SecurityLog implements ports.SecurityEventRepository.
// Each event is one line: [RFC3339 time] TYPE: {details}.
type SecurityLog struct {
	path string
	mu   sync.Mutex
}

// NewSecurityLog appends to dir/security_audit.log.
func NewSecurityLog(dir string) *SecurityLog {
	return &SecurityLog{path: filepath.Join(dir, SecurityLogFile)}
}

// Append writes one line for event.
func (l *SecurityLog) Append(_ context.Context, event *domain.SecurityEvent) error {
	details := event.Details
	if details == nil {
		details = map[string]any{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encoding security event: %w", err)
	}
	line := fmt.Sprintf("[%s] %s: %s\n", event.CreatedAt.UTC().Format(time.RFC3339Nano), event.Type, payload)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), dirMode); err != nil {
		return fmt.Errorf("creating security log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("opening security log: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("writing security log: %w", err)
	}
	return f.Close()
}
