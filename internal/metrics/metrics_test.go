// file: internal/metrics/metrics_test.go
// version: 1.0.0
// guid: f773297a-bd5f-4d03-ad4c-ff25ba33a52f

package metrics

import (
	"testing"
	"time"
)

func TestRegisterIdempotent(t *testing.T) {
	Register()
	Register() // must not panic on duplicate registration
}

func TestIncRequest(t *testing.T) {
	IncRequest("/api/beneficiaries", "2xx")
}

func TestIncRateLimited(t *testing.T) {
	IncRateLimited()
}

func TestObserveSearch(t *testing.T) {
	ObserveSearch("beneficiaries", 2*time.Millisecond, 7)
}

func TestMessageCounters(t *testing.T) {
	IncMessageSent("sms")
	IncMessageFailed("email")
}

func TestGauges(t *testing.T) {
	SetBeneficiaries(120)
	SetDonations(34)
}
