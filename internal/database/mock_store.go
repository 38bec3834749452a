// file: internal/database/mock_store.go
// version: 1.0.0
// guid: a7af7bfa-3f6b-4e4d-8e25-adef0c3f351b

package database

import (
	"sort"
	"sync"
	"time"

	"github.com/acikyardim/yardim-paneli/internal/models"
)

// MockStore is an in-memory Store implementation for tests. It keeps the
// same newest-first list ordering as the real backends.
type MockStore struct {
	mu            sync.Mutex
	beneficiaries map[string]models.Beneficiary
	donations     map[string]models.Donation
	users         map[string]models.User
	sessions      map[string]models.Session
	messages      map[string]models.Message
	activity      []models.ActivityEntry
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		beneficiaries: make(map[string]models.Beneficiary),
		donations:     make(map[string]models.Donation),
		users:         make(map[string]models.User),
		sessions:      make(map[string]models.Session),
		messages:      make(map[string]models.Message),
	}
}

func (m *MockStore) Close() error { return nil }

// Beneficiaries

func (m *MockStore) CreateBeneficiary(b *models.Beneficiary) (*models.Beneficiary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		id, err := newULID()
		if err != nil {
			return nil, err
		}
		b.ID = id
	}
	if b.Status == "" {
		b.Status = models.BeneficiaryPending
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	m.beneficiaries[b.ID] = *b
	return b, nil
}

func (m *MockStore) GetBeneficiaryByID(id string) (*models.Beneficiary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.beneficiaries[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *MockStore) ListBeneficiaries(orgID string) ([]models.Beneficiary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Beneficiary
	for _, b := range m.beneficiaries {
		if b.OrgID == orgID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockStore) UpdateBeneficiary(id string, b *models.Beneficiary) (*models.Beneficiary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.beneficiaries[id]
	if !ok {
		return nil, nil
	}
	b.ID = id
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now().UTC()
	m.beneficiaries[id] = *b
	return b, nil
}

func (m *MockStore) DeleteBeneficiary(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.beneficiaries, id)
	return nil
}

func (m *MockStore) CountBeneficiaries(orgID string) (int, error) {
	list, _ := m.ListBeneficiaries(orgID)
	return len(list), nil
}

// Donations

func (m *MockStore) CreateDonation(d *models.Donation) (*models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		id, err := newULID()
		if err != nil {
			return nil, err
		}
		d.ID = id
	}
	if d.Status == "" {
		d.Status = models.DonationPending
	}
	if d.Currency == "" {
		d.Currency = "TRY"
	}
	if d.Type == "" {
		d.Type = models.DonationCash
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	m.donations[d.ID] = *d
	return d, nil
}

func (m *MockStore) GetDonationByID(id string) (*models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.donations[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *MockStore) ListDonations(orgID string) ([]models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Donation
	for _, d := range m.donations {
		if d.OrgID == orgID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockStore) UpdateDonation(id string, d *models.Donation) (*models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.donations[id]
	if !ok {
		return nil, nil
	}
	d.ID = id
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = time.Now().UTC()
	m.donations[id] = *d
	return d, nil
}

func (m *MockStore) DeleteDonation(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.donations, id)
	return nil
}

func (m *MockStore) CountDonations(orgID string) (int, error) {
	list, _ := m.ListDonations(orgID)
	return len(list), nil
}

func (m *MockStore) SumDonationAmounts(orgID, status string) (float64, error) {
	list, _ := m.ListDonations(orgID)
	var total float64
	for _, d := range list {
		if d.Status == status {
			total += d.Amount
		}
	}
	return total, nil
}

// Users

func (m *MockStore) CreateUser(u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		id, err := newULID()
		if err != nil {
			return nil, err
		}
		u.ID = id
	}
	if u.Role == "" {
		u.Role = models.RoleViewer
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = *u
	return u, nil
}

func (m *MockStore) GetUserByID(id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MockStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (m *MockStore) ListUsers(orgID string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		if u.OrgID == orgID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockStore) UpdateUser(id string, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	u.ID = id
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	m.users[id] = *u
	return u, nil
}

func (m *MockStore) DeleteUser(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *MockStore) CountUsers() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// Sessions

func (m *MockStore) CreateSession(userID string, ttl time.Duration) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	session := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	m.sessions[token] = session
	return &session, nil
}

func (m *MockStore) GetSession(token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MockStore) RevokeSession(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		s.Revoked = true
		m.sessions[token] = s
	}
	return nil
}

func (m *MockStore) DeleteExpiredSessions(now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

// Messages

func (m *MockStore) CreateMessage(msg *models.Message) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ID == "" {
		id, err := newULID()
		if err != nil {
			return nil, err
		}
		msg.ID = id
	}
	if msg.Status == "" {
		msg.Status = models.MessageQueued
	}
	msg.CreatedAt = time.Now().UTC()
	m.messages[msg.ID] = *msg
	return msg, nil
}

func (m *MockStore) UpdateMessage(id string, msg *models.Message) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.messages[id]
	if !ok {
		return nil, nil
	}
	existing.Status = msg.Status
	existing.ProviderID = msg.ProviderID
	existing.ProviderError = msg.ProviderError
	m.messages[id] = existing
	return &existing, nil
}

func (m *MockStore) ListMessages(orgID string, limit int) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	var out []models.Message
	for _, msg := range m.messages {
		if msg.OrgID == orgID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Activity

func (m *MockStore) AddActivity(e *models.ActivityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		id, err := newULID()
		if err != nil {
			return err
		}
		e.ID = id
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m.activity = append(m.activity, *e)
	return nil
}

func (m *MockStore) ListActivity(orgID string, limit int) ([]models.ActivityEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	var out []models.ActivityEntry
	for i := len(m.activity) - 1; i >= 0 && len(out) < limit; i-- {
		if m.activity[i].OrgID == orgID {
			out = append(out, m.activity[i])
		}
	}
	return out, nil
}
