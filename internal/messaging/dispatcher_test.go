// file: internal/messaging/dispatcher_test.go
// version: 1.0.0
// guid: b1b5b35f-a6a0-4e4e-82f2-605e47889861

package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acikyardim/yardim-paneli/internal/database"
	"github.com/acikyardim/yardim-paneli/internal/models"
)

func TestDispatcherSendSMSRecordsSent(t *testing.T) {
	store := database.NewMockStore()
	sms := &MockSMSProvider{}
	d := NewDispatcher(store, sms, &MockEmailProvider{}, 0)

	msg, err := d.SendSMS(context.Background(), "org1", "+905551112233", "Koliniz hazır")
	require.NoError(t, err)
	assert.Equal(t, models.MessageSent, msg.Status)
	assert.NotEmpty(t, msg.ProviderID)

	msgs, err := store.ListMessages("org1", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, models.MessageSent, msgs[0].Status)
	assert.Equal(t, "+905551112233", msgs[0].Recipient)
}

func TestDispatcherSendSMSRecordsFailure(t *testing.T) {
	store := database.NewMockStore()
	sms := &MockSMSProvider{Fail: true}
	d := NewDispatcher(store, sms, &MockEmailProvider{}, 0)

	msg, err := d.SendSMS(context.Background(), "org1", "+905551112233", "Koliniz hazır")
	require.NoError(t, err)
	assert.Equal(t, models.MessageFailed, msg.Status)
	assert.Equal(t, "mock failure", msg.ProviderError)
}

func TestDispatcherSendEmail(t *testing.T) {
	store := database.NewMockStore()
	email := &MockEmailProvider{}
	d := NewDispatcher(store, &MockSMSProvider{}, email, 0)

	msg, err := d.SendEmail(context.Background(), "org1", Email{
		To:      "kisi@example.org",
		Subject: "Bağış onayı",
		HTML:    "<p>Teşekkürler</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MessageSent, msg.Status)
	assert.Equal(t, models.ChannelEmail, msg.Channel)
	assert.Equal(t, "Bağış onayı", msg.Subject)
	require.Len(t, email.Sent, 1)
}

func TestDispatcherBulkSMS(t *testing.T) {
	store := database.NewMockStore()
	sms := &MockSMSProvider{}
	d := NewDispatcher(store, sms, &MockEmailProvider{}, 0)

	items := []BulkSMSItem{
		{To: "+905551110001", Body: "a"},
		{To: "+905551110002", Body: "b"},
		{To: "+905551110003", Body: "c"},
	}
	sent, err := d.SendBulkSMS(context.Background(), "org1", items)
	require.NoError(t, err)
	assert.Len(t, sent, 3)
	assert.Len(t, sms.Sent, 3)
}

func TestDispatcherBulkSMSContextCancel(t *testing.T) {
	store := database.NewMockStore()
	sms := &MockSMSProvider{}
	// Slow pacing so cancellation lands while waiting.
	d := NewDispatcher(store, sms, &MockEmailProvider{}, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	items := make([]BulkSMSItem, 10)
	for i := range items {
		items[i] = BulkSMSItem{To: "+905551110000", Body: "x"}
	}
	sent, err := d.SendBulkSMS(ctx, "org1", items)
	require.Error(t, err)
	assert.Less(t, len(sent), len(items))
}
