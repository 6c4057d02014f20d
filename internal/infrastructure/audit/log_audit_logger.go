package audit

import (
	"context"
	"encoding/json"
	"log"

	"github.com/you/kpaforms/domain"
)

// LogAuditLogger writes audit events to the process log as single JSON lines
type LogAuditLogger struct {
	logger *log.Logger
}

// NewLogAuditLogger creates an audit logger. A nil logger uses the standard logger.
func NewLogAuditLogger(logger *log.Logger) domain.AuditLogger {
	if logger == nil {
		logger = log.Default()
	}
	return &LogAuditLogger{logger: logger}
}

// LogEvent implements domain.AuditLogger
func (l *LogAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	l.logger.Printf("AUDIT: %s", payload)
	return nil
}
