// file: internal/messaging/twilio.go
// version: 1.0.0
// guid: 97f15bd4-8889-47af-abae-e0a8829ff6dd

package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

const twilioDefaultAPIBase = "https://api.twilio.com"

// TwilioProvider sends SMS through the Twilio Messages API.
type TwilioProvider struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	APIBase    string
	Client     *http.Client
}

func (p *TwilioProvider) Name() string { return "twilio" }

func (p *TwilioProvider) SendSMS(ctx context.Context, to, message string) SMSResult {
	if p.AccountSID == "" || p.AuthToken == "" {
		return SMSResult{To: to, Error: "Twilio credentials not configured"}
	}

	base := p.APIBase
	if base == "" {
		base = twilioDefaultAPIBase
	}
	apiURL := base + "/2010-04-01/Accounts/" + p.AccountSID + "/Messages.json"
	form := url.Values{
		"From": {p.FromNumber},
		"To":   {to},
		"Body": {message},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return SMSResult{To: to, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.AccountSID, p.AuthToken)

	resp, err := p.Client.Do(req)
	if err != nil {
		return SMSResult{To: to, Error: err.Error()}
	}
	defer resp.Body.Close()

	var data struct {
		SID     string `json:"sid"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return SMSResult{To: to, Error: err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return SMSResult{Success: true, MessageID: data.SID, To: to}
	}
	errMsg := data.Message
	if errMsg == "" {
		errMsg = "Twilio API error"
	}
	return SMSResult{To: to, Error: errMsg}
}
