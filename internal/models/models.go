// file: internal/models/models.go
// version: 1.0.0
// guid: 6f57716a-2c9c-4f56-8f81-0751c3068033

// Package models defines the aid-panel domain entities shared by the store
// backends and the HTTP layer.
package models

import "time"

// Beneficiary statuses.
const (
	BeneficiaryActive  = "active"
	BeneficiaryPassive = "passive"
	BeneficiaryPending = "pending"
)

// Beneficiary is a person or household receiving aid.
type Beneficiary struct {
	ID            string    `json:"id"`
	OrgID         string    `json:"org_id"`
	Name          string    `json:"name"`
	NationalID    string    `json:"national_id,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	Status        string    `json:"status"`
	HouseholdSize int       `json:"household_size,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidBeneficiaryStatus reports whether s is a known beneficiary status.
func ValidBeneficiaryStatus(s string) bool {
	return s == BeneficiaryActive || s == BeneficiaryPassive || s == BeneficiaryPending
}

// Donation statuses and types.
const (
	DonationPending  = "pending"
	DonationApproved = "approved"
	DonationRejected = "rejected"

	DonationCash   = "cash"
	DonationInKind = "in_kind"
)

// Donation records money or goods given to the organization, optionally
// earmarked for a beneficiary.
type Donation struct {
	ID            string    `json:"id"`
	OrgID         string    `json:"org_id"`
	DonorName     string    `json:"donor_name"`
	DonorPhone    string    `json:"donor_phone,omitempty"`
	DonorEmail    string    `json:"donor_email,omitempty"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	BeneficiaryID string    `json:"beneficiary_id,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// User roles.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
	RoleViewer    = "viewer"
)

// User is a staff account.
type User struct {
	ID           string    `json:"id"`
	OrgID        string    `json:"org_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is a bearer login session.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session can no longer authenticate.
func (s *Session) Expired(now time.Time) bool {
	return s.Revoked || now.After(s.ExpiresAt)
}

// Message channels and statuses.
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"

	MessageQueued = "queued"
	MessageSent   = "sent"
	MessageFailed = "failed"
)

// Message is an outbound SMS or email, recorded whether or not the provider
// accepted it.
type Message struct {
	ID            string    `json:"id"`
	OrgID         string    `json:"org_id"`
	Channel       string    `json:"channel"`
	Recipient     string    `json:"recipient"`
	Subject       string    `json:"subject,omitempty"`
	Body          string    `json:"body"`
	Status        string    `json:"status"`
	ProviderID    string    `json:"provider_id,omitempty"`
	ProviderError string    `json:"provider_error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ActivityEntry is one audit-log row.
type ActivityEntry struct {
	ID         string    `json:"id"`
	OrgID      string    `json:"org_id"`
	UserID     string    `json:"user_id,omitempty"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
