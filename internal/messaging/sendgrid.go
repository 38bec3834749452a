// file: internal/messaging/sendgrid.go
// version: 1.0.0
// guid: 07e56ee9-a6a8-4021-968a-6bce0e85a749

package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
)

const sendgridDefaultAPIURL = "https://api.sendgrid.com/v3/mail/send"

var fromAngleAddr = regexp.MustCompile(`<(.+)>`)

// SendGridProvider sends email through the SendGrid v3 mail API.
type SendGridProvider struct {
	APIKey      string
	FromAddress string
	APIURL      string
	Client      *http.Client
}

func (p *SendGridProvider) Name() string { return "sendgrid" }

// splitFrom separates a "Name <addr>" from string into its parts.
func splitFrom(from string) (email, name string) {
	if m := fromAngleAddr.FindStringSubmatch(from); m != nil {
		email = strings.TrimSpace(m[1])
		name = strings.TrimSpace(strings.SplitN(from, "<", 2)[0])
		return email, name
	}
	return strings.TrimSpace(from), ""
}

func (p *SendGridProvider) SendEmail(ctx context.Context, email Email) EmailResult {
	if p.APIKey == "" {
		return EmailResult{To: email.To, Error: "SendGrid API key not configured"}
	}

	apiURL := p.APIURL
	if apiURL == "" {
		apiURL = sendgridDefaultAPIURL
	}

	from := email.From
	if from == "" {
		from = p.FromAddress
	}
	if from == "" {
		from = defaultFromAddress
	}
	fromEmail, fromName := splitFrom(from)
	if fromName == "" {
		fromName = "Yardım Yönetim Paneli"
	}

	html := email.HTML
	if html == "" {
		html = email.Text
	}

	payload := map[string]any{
		"personalizations": []map[string]any{
			{
				"to":      []map[string]string{{"email": email.To}},
				"subject": email.Subject,
			},
		},
		"from": map[string]string{"email": fromEmail, "name": fromName},
		"content": []map[string]string{
			{"type": "text/html", "value": html},
		},
	}
	if email.ReplyTo != "" {
		payload["reply_to"] = map[string]string{"email": email.ReplyTo}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return EmailResult{To: email.To, Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return EmailResult{To: email.To, Error: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return EmailResult{To: email.To, Error: err.Error()}
	}
	defer resp.Body.Close()

	// SendGrid returns 202 with an empty body on success.
	if resp.StatusCode == http.StatusAccepted {
		return EmailResult{Success: true, MessageID: resp.Header.Get("X-Message-Id"), To: email.To}
	}

	var data struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err == nil && len(data.Errors) > 0 {
		return EmailResult{To: email.To, Error: data.Errors[0].Message}
	}
	return EmailResult{To: email.To, Error: "SendGrid API error"}
}
