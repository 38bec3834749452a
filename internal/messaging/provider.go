// file: internal/messaging/provider.go
// version: 1.0.0
// guid: db9746fc-c958-4856-a6e7-a4a2b7fb797f

// Package messaging sends SMS and email through pluggable providers.
package messaging

import (
	"context"
	"net/http"
	"time"

	"github.com/acikyardim/yardim-paneli/internal/config"
)

// SMSResult reports the outcome of a single SMS send.
type SMSResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
	To        string `json:"to"`
}

// EmailResult reports the outcome of a single email send.
type EmailResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
	To        string `json:"to"`
}

// Email holds one outbound email.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
	From    string
	ReplyTo string
}

// SMSProvider sends SMS messages. Implementations return provider rejections
// inside SMSResult; the error return is reserved for transport failures that
// never reached the provider.
type SMSProvider interface {
	Name() string
	SendSMS(ctx context.Context, to, message string) SMSResult
}

// EmailProvider sends email messages.
type EmailProvider interface {
	Name() string
	SendEmail(ctx context.Context, email Email) EmailResult
}

// defaultHTTPClient is used when callers pass nil.
var defaultHTTPClient = &http.Client{Timeout: 15 * time.Second}

// NewSMSProvider builds the configured SMS provider. Unknown or empty
// provider names fall back to the mock provider.
func NewSMSProvider(cfg config.Config, client *http.Client) SMSProvider {
	if client == nil {
		client = defaultHTTPClient
	}
	switch cfg.SMSProvider {
	case "twilio":
		return &TwilioProvider{
			AccountSID: cfg.SMS.TwilioAccountSID,
			AuthToken:  cfg.SMS.TwilioAuthToken,
			FromNumber: cfg.SMS.TwilioFromNumber,
			Client:     client,
		}
	case "netgsm":
		return &NetGSMProvider{
			Username: cfg.SMS.NetGSMUsername,
			Password: cfg.SMS.NetGSMPassword,
			Header:   cfg.SMS.NetGSMHeader,
			APIURL:   cfg.SMS.NetGSMAPIURL,
			Client:   client,
		}
	default:
		return &MockSMSProvider{}
	}
}

// NewEmailProvider builds the configured email provider. Unknown or empty
// provider names fall back to the mock provider.
func NewEmailProvider(cfg config.Config, client *http.Client) EmailProvider {
	if client == nil {
		client = defaultHTTPClient
	}
	switch cfg.EmailProvider {
	case "resend":
		return &ResendProvider{
			APIKey:      cfg.Email.ResendAPIKey,
			FromAddress: cfg.Email.FromAddress,
			Client:      client,
		}
	case "sendgrid":
		return &SendGridProvider{
			APIKey:      cfg.Email.SendGridAPIKey,
			FromAddress: cfg.Email.FromAddress,
			Client:      client,
		}
	default:
		return &MockEmailProvider{}
	}
}
