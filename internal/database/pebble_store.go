// file: internal/database/pebble_store.go
// version: 1.1.0
// guid: 76563e0b-9fbe-4617-9a99-51e1a6250e3b

package database

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/pebble/v2"

	"github.com/acikyardim/yardim-paneli/internal/models"
)

// PebbleStore implements the Store interface using PebbleDB (LSM key-value store)
//
// Key Schema:
// - beneficiary:<id>      -> Beneficiary JSON
// - donation:<id>         -> Donation JSON
// - user:<id>             -> User JSON
// - user:email:<email>    -> user_id (for lookups)
// - session:<token>       -> Session JSON
// - message:<id>          -> Message JSON
// - activity:<id>         -> ActivityEntry JSON
//
// IDs are ULIDs, so iterating a prefix in key order walks entities oldest
// first; list operations walk backwards for newest-first output.
type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore creates a new PebbleDB store
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

// Close closes the database
func (p *PebbleStore) Close() error {
	return p.db.Close()
}

// Helper functions

// prefixBounds returns iterator bounds covering every key with the prefix.
func prefixBounds(prefix string) ([]byte, []byte) {
	upper := []byte(prefix)
	upper[len(upper)-1]++
	return []byte(prefix), upper
}

func (p *PebbleStore) getJSON(key string, out any) (bool, error) {
	value, closer, err := p.db.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer closer.Close()
	if err := json.Unmarshal(value, out); err != nil {
		return false, err
	}
	return true, nil
}

func (p *PebbleStore) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.db.Set([]byte(key), data, pebble.Sync)
}

// Beneficiary operations

func (p *PebbleStore) CreateBeneficiary(b *models.Beneficiary) (*models.Beneficiary, error) {
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
	if err := p.setJSON("beneficiary:"+b.ID, b); err != nil {
		return nil, fmt.Errorf("failed to create beneficiary: %w", err)
	}
	return b, nil
}

func (p *PebbleStore) GetBeneficiaryByID(id string) (*models.Beneficiary, error) {
	var b models.Beneficiary
	found, err := p.getJSON("beneficiary:"+id, &b)
	if err != nil || !found {
		return nil, err
	}
	return &b, nil
}

func (p *PebbleStore) ListBeneficiaries(orgID string) ([]models.Beneficiary, error) {
	lower, upper := prefixBounds("beneficiary:")
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []models.Beneficiary
	for valid := iter.Last(); valid; valid = iter.Prev() {
		var b models.Beneficiary
		if err := json.Unmarshal(iter.Value(), &b); err != nil {
			return nil, err
		}
		if b.OrgID == orgID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (p *PebbleStore) UpdateBeneficiary(id string, b *models.Beneficiary) (*models.Beneficiary, error) {
	existing, err := p.GetBeneficiaryByID(id)
	if err != nil || existing == nil {
		return nil, err
	}
	b.ID = id
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now().UTC()
	if err := p.setJSON("beneficiary:"+id, b); err != nil {
		return nil, fmt.Errorf("failed to update beneficiary: %w", err)
	}
	return b, nil
}

func (p *PebbleStore) DeleteBeneficiary(id string) error {
	return p.db.Delete([]byte("beneficiary:"+id), pebble.Sync)
}

func (p *PebbleStore) CountBeneficiaries(orgID string) (int, error) {
	list, err := p.ListBeneficiaries(orgID)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// Donation operations

func (p *PebbleStore) CreateDonation(d *models.Donation) (*models.Donation, error) {
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
	if err := p.setJSON("donation:"+d.ID, d); err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}
	return d, nil
}

func (p *PebbleStore) GetDonationByID(id string) (*models.Donation, error) {
	var d models.Donation
	found, err := p.getJSON("donation:"+id, &d)
	if err != nil || !found {
		return nil, err
	}
	return &d, nil
}

func (p *PebbleStore) ListDonations(orgID string) ([]models.Donation, error) {
	lower, upper := prefixBounds("donation:")
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []models.Donation
	for valid := iter.Last(); valid; valid = iter.Prev() {
		var d models.Donation
		if err := json.Unmarshal(iter.Value(), &d); err != nil {
			return nil, err
		}
		if d.OrgID == orgID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (p *PebbleStore) UpdateDonation(id string, d *models.Donation) (*models.Donation, error) {
	existing, err := p.GetDonationByID(id)
	if err != nil || existing == nil {
		return nil, err
	}
	d.ID = id
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = time.Now().UTC()
	if err := p.setJSON("donation:"+id, d); err != nil {
		return nil, fmt.Errorf("failed to update donation: %w", err)
	}
	return d, nil
}

func (p *PebbleStore) DeleteDonation(id string) error {
	return p.db.Delete([]byte("donation:"+id), pebble.Sync)
}

func (p *PebbleStore) CountDonations(orgID string) (int, error) {
	list, err := p.ListDonations(orgID)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func (p *PebbleStore) SumDonationAmounts(orgID, status string) (float64, error) {
	list, err := p.ListDonations(orgID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, d := range list {
		if d.Status == status {
			total += d.Amount
		}
	}
	return total, nil
}

// User operations

func (p *PebbleStore) CreateUser(u *models.User) (*models.User, error) {
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
	if err := p.setJSON("user:"+u.ID, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := p.db.Set([]byte("user:email:"+u.Email), []byte(u.ID), pebble.Sync); err != nil {
		return nil, fmt.Errorf("failed to index user email: %w", err)
	}
	return u, nil
}

func (p *PebbleStore) GetUserByID(id string) (*models.User, error) {
	var u models.User
	found, err := p.getJSON("user:"+id, &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (p *PebbleStore) GetUserByEmail(email string) (*models.User, error) {
	value, closer, err := p.db.Get([]byte("user:email:" + email))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id := string(value)
	closer.Close()
	return p.GetUserByID(id)
}

func (p *PebbleStore) ListUsers(orgID string) ([]models.User, error) {
	lower, upper := prefixBounds("user:")
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []models.User
	for iter.First(); iter.Valid(); iter.Next() {
		// Skip index keys
		if strings.HasPrefix(string(iter.Key()), "user:email:") {
			continue
		}
		var u models.User
		if err := json.Unmarshal(iter.Value(), &u); err != nil {
			return nil, err
		}
		if u.OrgID == orgID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (p *PebbleStore) UpdateUser(id string, u *models.User) (*models.User, error) {
	existing, err := p.GetUserByID(id)
	if err != nil || existing == nil {
		return nil, err
	}
	u.ID = id
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	if err := p.setJSON("user:"+id, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if existing.Email != u.Email {
		if err := p.db.Delete([]byte("user:email:"+existing.Email), pebble.Sync); err != nil {
			return nil, err
		}
		if err := p.db.Set([]byte("user:email:"+u.Email), []byte(id), pebble.Sync); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (p *PebbleStore) DeleteUser(id string) error {
	existing, err := p.GetUserByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if err := p.db.Delete([]byte("user:email:"+existing.Email), pebble.Sync); err != nil {
		return err
	}
	return p.db.Delete([]byte("user:"+id), pebble.Sync)
}

func (p *PebbleStore) CountUsers() (int, error) {
	lower, upper := prefixBounds("user:")
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	count := 0
	for iter.First(); iter.Valid(); iter.Next() {
		if strings.HasPrefix(string(iter.Key()), "user:email:") {
			continue
		}
		count++
	}
	return count, nil
}

// Session operations

func (p *PebbleStore) CreateSession(userID string, ttl time.Duration) (*models.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := p.setJSON("session:"+token, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (p *PebbleStore) GetSession(token string) (*models.Session, error) {
	var s models.Session
	found, err := p.getJSON("session:"+token, &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

func (p *PebbleStore) RevokeSession(token string) error {
	session, err := p.GetSession(token)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	session.Revoked = true
	return p.setJSON("session:"+token, session)
}

func (p *PebbleStore) DeleteExpiredSessions(now time.Time) (int, error) {
	lower, upper := prefixBounds("session:")
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	var stale [][]byte
	for iter.First(); iter.Valid(); iter.Next() {
		var s models.Session
		if err := json.Unmarshal(iter.Value(), &s); err != nil {
			return 0, err
		}
		if s.Expired(now) {
			key := make([]byte, len(iter.Key()))
			copy(key, iter.Key())
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		if err := p.db.Delete(key, pebble.Sync); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// Message operations

func (p *PebbleStore) CreateMessage(m *models.Message) (*models.Message, error) {
	if m.ID == "" {
		id, err := newULID()
		if err != nil {
			return nil, err
		}
		m.ID = id
	}
	if m.Status == "" {
		m.Status = models.MessageQueued
	}
	m.CreatedAt = time.Now().UTC()
	if err := p.setJSON("message:"+m.ID, m); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return m, nil
}

func (p *PebbleStore) UpdateMessage(id string, m *models.Message) (*models.Message, error) {
	var existing models.Message
	found, err := p.getJSON("message:"+id, &existing)
	if err != nil || !found {
		return nil, err
	}
	existing.Status = m.Status
	existing.ProviderID = m.ProviderID
	existing.ProviderError = m.ProviderError
	if err := p.setJSON("message:"+id, &existing); err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	return &existing, nil
}

func (p *PebbleStore) ListMessages(orgID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	lower, upper := prefixBounds("message:")
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []models.Message
	for valid := iter.Last(); valid && len(out) < limit; valid = iter.Prev() {
		var m models.Message
		if err := json.Unmarshal(iter.Value(), &m); err != nil {
			return nil, err
		}
		if m.OrgID == orgID {
			out = append(out, m)
		}
	}
	return out, nil
}

// Activity log operations

func (p *PebbleStore) AddActivity(e *models.ActivityEntry) error {
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
	return p.setJSON("activity:"+e.ID, e)
}

func (p *PebbleStore) ListActivity(orgID string, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	lower, upper := prefixBounds("activity:")
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []models.ActivityEntry
	for valid := iter.Last(); valid && len(out) < limit; valid = iter.Prev() {
		var e models.ActivityEntry
		if err := json.Unmarshal(iter.Value(), &e); err != nil {
			return nil, err
		}
		if e.OrgID == orgID {
			out = append(out, e)
		}
	}
	return out, nil
}
