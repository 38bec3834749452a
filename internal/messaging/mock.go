// file: internal/messaging/mock.go
// version: 1.0.0
// guid: 4f2326bd-4346-4a8f-a009-e4c24380e19e

package messaging

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// MockSMSProvider accepts everything and records what it saw. Used as the
// default provider and in tests.
type MockSMSProvider struct {
	mu   sync.Mutex
	Sent []struct{ To, Message string }
	seq  atomic.Int64

	// Fail makes every send report a provider error.
	Fail bool
}

func (p *MockSMSProvider) Name() string { return "mock" }

func (p *MockSMSProvider) SendSMS(_ context.Context, to, message string) SMSResult {
	p.mu.Lock()
	p.Sent = append(p.Sent, struct{ To, Message string }{to, message})
	p.mu.Unlock()

	if p.Fail {
		return SMSResult{To: to, Error: "mock failure"}
	}
	log.Printf("[INFO] mock sms to=%s len=%d", to, len(message))
	return SMSResult{Success: true, MessageID: fmt.Sprintf("mock_%d", p.seq.Add(1)), To: to}
}

// MockEmailProvider accepts everything and records what it saw.
type MockEmailProvider struct {
	mu   sync.Mutex
	Sent []Email
	seq  atomic.Int64

	Fail bool
}

func (p *MockEmailProvider) Name() string { return "mock" }

func (p *MockEmailProvider) SendEmail(_ context.Context, email Email) EmailResult {
	p.mu.Lock()
	p.Sent = append(p.Sent, email)
	p.mu.Unlock()

	if p.Fail {
		return EmailResult{To: email.To, Error: "mock failure"}
	}
	log.Printf("[INFO] mock email to=%s subject=%q", email.To, email.Subject)
	return EmailResult{Success: true, MessageID: fmt.Sprintf("mock_%d", p.seq.Add(1)), To: email.To}
}
