// file: internal/server/logger.go
// version: 1.1.0
// guid: 1d2e3f4a-5b6c-7d8e-9f0a-1b2c3d4e5f6a

package server

import (
	"fmt"
	"log"
	"time"
)

// OperationLogger tracks the lifecycle of a handler operation
type OperationLogger struct {
	handler    string
	method     string
	path       string
	startTime  time.Time
	resourceID string
}

// NewOperationLogger creates a new operation logger
func NewOperationLogger(handler, method, path string) *OperationLogger {
	return &OperationLogger{
		handler:   handler,
		method:    method,
		path:      path,
		startTime: time.Now(),
	}
}

// SetResourceID sets the resource ID being operated on
func (ol *OperationLogger) SetResourceID(id string) {
	ol.resourceID = id
}

// LogSuccess logs the successful completion of the operation
func (ol *OperationLogger) LogSuccess(statusCode int) {
	duration := time.Since(ol.startTime)
	msg := fmt.Sprintf("[SUCCESS] %s %s (%d) in %v", ol.method, ol.path, statusCode, duration)
	if ol.resourceID != "" {
		msg = fmt.Sprintf("%s (resource: %s)", msg, ol.resourceID)
	}
	log.Printf("[INFO] %s", msg)
}

// LogError logs an error that occurred during the operation
func (ol *OperationLogger) LogError(statusCode int, err error) {
	duration := time.Since(ol.startTime)
	msg := fmt.Sprintf("[ERROR] %s %s (%d) in %v: %v", ol.method, ol.path, statusCode, duration, err)
	if ol.resourceID != "" {
		msg = fmt.Sprintf("%s (resource: %s)", msg, ol.resourceID)
	}
	log.Printf("[ERROR] %s", msg)
}

// LogWarning logs a warning message
func (ol *OperationLogger) LogWarning(message string) {
	log.Printf("[WARN] %s: %s", ol.handler, message)
}

// LogAuditEvent logs an important audit event
func LogAuditEvent(eventType string, userID string, resourceID string, action string, details string) {
	log.Printf("[AUDIT] %s by user %s on %s: %s - %s",
		eventType, userID, resourceID, action, details)
}
