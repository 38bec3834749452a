// file: internal/messaging/netgsm.go
// version: 1.0.0
// guid: c00397dc-b8e5-482c-9121-1e1df27378ef

package messaging

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const netgsmDefaultAPIURL = "https://api.netgsm.com.tr/sms/send/get"

// NetGSMProvider sends SMS through the NetGSM HTTP API. NetGSM responds with
// a plain-text status code: "00", "01" or "02" prefixes mean accepted, with
// the bulk job ID appended after the prefix.
type NetGSMProvider struct {
	Username string
	Password string
	Header   string // registered sender name (msgheader)
	APIURL   string
	Client   *http.Client
}

func (p *NetGSMProvider) Name() string { return "netgsm" }

func (p *NetGSMProvider) SendSMS(ctx context.Context, to, message string) SMSResult {
	if p.Username == "" || p.Password == "" {
		return SMSResult{To: to, Error: "NetGSM credentials not configured"}
	}

	apiURL := p.APIURL
	if apiURL == "" {
		apiURL = netgsmDefaultAPIURL
	}

	form := url.Values{
		"usercode":  {p.Username},
		"password":  {p.Password},
		"gsmno":     {to},
		"message":   {message},
		"msgheader": {p.Header},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return SMSResult{To: to, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.Client.Do(req)
	if err != nil {
		return SMSResult{To: to, Error: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return SMSResult{To: to, Error: err.Error()}
	}

	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "00") || strings.HasPrefix(text, "01") || strings.HasPrefix(text, "02") {
		return SMSResult{Success: true, MessageID: strings.TrimSpace(text[2:]), To: to}
	}
	return SMSResult{To: to, Error: "NetGSM error: " + text}
}
