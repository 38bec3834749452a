// file: internal/messaging/resend.go
// version: 1.0.0
// guid: 4803ddd2-88ec-40dd-ab59-295219b946e7

package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

const (
	resendDefaultAPIURL = "https://api.resend.com/emails"
	defaultFromAddress  = "Yardım Yönetim Paneli <noreply@example.com>"
)

// ResendProvider sends email through the Resend JSON API.
type ResendProvider struct {
	APIKey      string
	FromAddress string
	APIURL      string
	Client      *http.Client
}

func (p *ResendProvider) Name() string { return "resend" }

func (p *ResendProvider) SendEmail(ctx context.Context, email Email) EmailResult {
	if p.APIKey == "" {
		return EmailResult{To: email.To, Error: "Resend API key not configured"}
	}

	apiURL := p.APIURL
	if apiURL == "" {
		apiURL = resendDefaultAPIURL
	}

	from := email.From
	if from == "" {
		from = p.FromAddress
	}
	if from == "" {
		from = defaultFromAddress
	}

	html := email.HTML
	if html == "" {
		html = email.Text
	}

	payload := map[string]any{
		"from":    from,
		"to":      email.To,
		"subject": email.Subject,
		"html":    html,
	}
	if email.Text != "" {
		payload["text"] = email.Text
	}
	if email.ReplyTo != "" {
		payload["reply_to"] = email.ReplyTo
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

	var data struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return EmailResult{To: email.To, Error: err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return EmailResult{Success: true, MessageID: data.ID, To: email.To}
	}
	errMsg := data.Message
	if errMsg == "" {
		errMsg = "Resend API error"
	}
	return EmailResult{To: email.To, Error: errMsg}
}
