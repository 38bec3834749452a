// file: internal/messaging/dispatcher.go
// version: 1.0.0
// guid: d185e86e-6094-4af1-a75a-db771ece9b0d

package messaging

import (
	"context"
	"log"

	"golang.org/x/time/rate"

	"github.com/acikyardim/yardim-paneli/internal/database"
	"github.com/acikyardim/yardim-paneli/internal/metrics"
	"github.com/acikyardim/yardim-paneli/internal/models"
)

// Dispatcher sends messages through the configured providers and records
// every attempt in the store, accepted or not.
type Dispatcher struct {
	store   database.Store
	sms     SMSProvider
	email   EmailProvider
	limiter *rate.Limiter
}

// NewDispatcher wires providers to a store. perSecond paces bulk sends;
// values <= 0 disable pacing.
func NewDispatcher(store database.Store, sms SMSProvider, email EmailProvider, perSecond float64) *Dispatcher {
	var limiter *rate.Limiter
	if perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return &Dispatcher{store: store, sms: sms, email: email, limiter: limiter}
}

// SendSMS sends one SMS and persists the attempt.
func (d *Dispatcher) SendSMS(ctx context.Context, orgID, to, body string) (*models.Message, error) {
	msg, err := d.store.CreateMessage(&models.Message{
		OrgID:     orgID,
		Channel:   models.ChannelSMS,
		Recipient: to,
		Body:      body,
	})
	if err != nil {
		return nil, err
	}

	result := d.sms.SendSMS(ctx, to, body)
	return d.finish(msg, result.Success, result.MessageID, result.Error, models.ChannelSMS)
}

// SendEmail sends one email and persists the attempt.
func (d *Dispatcher) SendEmail(ctx context.Context, orgID string, email Email) (*models.Message, error) {
	msg, err := d.store.CreateMessage(&models.Message{
		OrgID:     orgID,
		Channel:   models.ChannelEmail,
		Recipient: email.To,
		Subject:   email.Subject,
		Body:      firstNonEmpty(email.HTML, email.Text),
	})
	if err != nil {
		return nil, err
	}

	result := d.email.SendEmail(ctx, email)
	return d.finish(msg, result.Success, result.MessageID, result.Error, models.ChannelEmail)
}

// BulkSMSItem is one recipient in a bulk send.
type BulkSMSItem struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// SendBulkSMS sends a batch sequentially, paced by the dispatcher's rate
// limiter. A cancelled context stops the batch; the returned slice holds
// exactly the attempts made so far.
func (d *Dispatcher) SendBulkSMS(ctx context.Context, orgID string, items []BulkSMSItem) ([]models.Message, error) {
	out := make([]models.Message, 0, len(items))
	for _, item := range items {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return out, err
			}
		}
		msg, err := d.SendSMS(ctx, orgID, item.To, item.Body)
		if err != nil {
			return out, err
		}
		out = append(out, *msg)
	}
	return out, nil
}

// finish records the provider outcome on the stored message.
func (d *Dispatcher) finish(msg *models.Message, ok bool, providerID, providerErr, channel string) (*models.Message, error) {
	if ok {
		msg.Status = models.MessageSent
		msg.ProviderID = providerID
		metrics.IncMessageSent(channel)
	} else {
		msg.Status = models.MessageFailed
		msg.ProviderError = providerErr
		metrics.IncMessageFailed(channel)
		log.Printf("[WARN] %s send to %s failed: %s", channel, msg.Recipient, providerErr)
	}

	updated, err := d.store.UpdateMessage(msg.ID, msg)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return msg, nil
	}
	return updated, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
