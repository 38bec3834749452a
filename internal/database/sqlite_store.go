// file: internal/database/sqlite_store.go
// version: 1.1.0
// guid: 593bd745-0ccf-43a9-9bb2-a29c9a1d0bd5

package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/acikyardim/yardim-paneli/internal/models"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

const beneficiarySelectColumns = `
	id, org_id, name, national_id, phone, email, address, city,
	status, household_size, notes, created_at, updated_at
`

func scanBeneficiary(scanner rowScanner, b *models.Beneficiary) error {
	return scanner.Scan(
		&b.ID, &b.OrgID, &b.Name, &b.NationalID, &b.Phone, &b.Email,
		&b.Address, &b.City, &b.Status, &b.HouseholdSize, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

const donationSelectColumns = `
	id, org_id, donor_name, donor_phone, donor_email, amount, currency,
	type, status, beneficiary_id, notes, created_at, updated_at
`

func scanDonation(scanner rowScanner, d *models.Donation) error {
	return scanner.Scan(
		&d.ID, &d.OrgID, &d.DonorName, &d.DonorPhone, &d.DonorEmail,
		&d.Amount, &d.Currency, &d.Type, &d.Status, &d.BeneficiaryID,
		&d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
}

const userSelectColumns = `
	id, org_id, email, name, password_hash, role, active, created_at, updated_at
`

func scanUser(scanner rowScanner, u *models.User) error {
	return scanner.Scan(
		&u.ID, &u.OrgID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
}

// SQLiteStore implements the Store interface using SQLite3
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

// createTables creates all required tables
func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS beneficiaries (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		name TEXT NOT NULL,
		national_id TEXT,
		phone TEXT,
		email TEXT,
		address TEXT,
		city TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		household_size INTEGER DEFAULT 0,
		notes TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_beneficiaries_org ON beneficiaries(org_id);
	CREATE INDEX IF NOT EXISTS idx_beneficiaries_name ON beneficiaries(name);
	CREATE INDEX IF NOT EXISTS idx_beneficiaries_status ON beneficiaries(status);

	CREATE TABLE IF NOT EXISTS donations (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		donor_name TEXT NOT NULL,
		donor_phone TEXT,
		donor_email TEXT,
		amount REAL NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'TRY',
		type TEXT NOT NULL DEFAULT 'cash',
		status TEXT NOT NULL DEFAULT 'pending',
		beneficiary_id TEXT,
		notes TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_donations_org ON donations(org_id);
	CREATE INDEX IF NOT EXISTS idx_donations_status ON donations(status);
	CREATE INDEX IF NOT EXISTS idx_donations_beneficiary ON donations(beneficiary_id);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'viewer',
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		channel TEXT NOT NULL,
		recipient TEXT NOT NULL,
		subject TEXT,
		body TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'queued',
		provider_id TEXT,
		provider_error TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_messages_org ON messages(org_id);

	CREATE TABLE IF NOT EXISTS activity_log (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		user_id TEXT,
		action TEXT NOT NULL,
		resource TEXT NOT NULL,
		resource_id TEXT,
		detail TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_activity_org ON activity_log(org_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Beneficiary operations

func (s *SQLiteStore) CreateBeneficiary(b *models.Beneficiary) (*models.Beneficiary, error) {
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

	_, err := s.db.Exec(`INSERT INTO beneficiaries (`+beneficiarySelectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.OrgID, b.Name, b.NationalID, b.Phone, b.Email, b.Address,
		b.City, b.Status, b.HouseholdSize, b.Notes, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create beneficiary: %w", err)
	}
	return b, nil
}

func (s *SQLiteStore) GetBeneficiaryByID(id string) (*models.Beneficiary, error) {
	row := s.db.QueryRow(`SELECT `+beneficiarySelectColumns+` FROM beneficiaries WHERE id = ?`, id)
	var b models.Beneficiary
	if err := scanBeneficiary(row, &b); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (s *SQLiteStore) ListBeneficiaries(orgID string) ([]models.Beneficiary, error) {
	rows, err := s.db.Query(`SELECT `+beneficiarySelectColumns+`
		FROM beneficiaries WHERE org_id = ? ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Beneficiary
	for rows.Next() {
		var b models.Beneficiary
		if err := scanBeneficiary(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateBeneficiary(id string, b *models.Beneficiary) (*models.Beneficiary, error) {
	b.ID = id
	b.UpdatedAt = time.Now().UTC()
	res, err := s.db.Exec(`UPDATE beneficiaries SET
		org_id = ?, name = ?, national_id = ?, phone = ?, email = ?,
		address = ?, city = ?, status = ?, household_size = ?, notes = ?,
		updated_at = ?
		WHERE id = ?`,
		b.OrgID, b.Name, b.NationalID, b.Phone, b.Email, b.Address, b.City,
		b.Status, b.HouseholdSize, b.Notes, b.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update beneficiary: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetBeneficiaryByID(id)
}

func (s *SQLiteStore) DeleteBeneficiary(id string) error {
	_, err := s.db.Exec(`DELETE FROM beneficiaries WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) CountBeneficiaries(orgID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM beneficiaries WHERE org_id = ?`, orgID).Scan(&n)
	return n, err
}

// Donation operations

func (s *SQLiteStore) CreateDonation(d *models.Donation) (*models.Donation, error) {
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

	_, err := s.db.Exec(`INSERT INTO donations (`+donationSelectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.OrgID, d.DonorName, d.DonorPhone, d.DonorEmail, d.Amount,
		d.Currency, d.Type, d.Status, d.BeneficiaryID, d.Notes,
		d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) GetDonationByID(id string) (*models.Donation, error) {
	row := s.db.QueryRow(`SELECT `+donationSelectColumns+` FROM donations WHERE id = ?`, id)
	var d models.Donation
	if err := scanDonation(row, &d); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (s *SQLiteStore) ListDonations(orgID string) ([]models.Donation, error) {
	rows, err := s.db.Query(`SELECT `+donationSelectColumns+`
		FROM donations WHERE org_id = ? ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := scanDonation(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateDonation(id string, d *models.Donation) (*models.Donation, error) {
	d.ID = id
	d.UpdatedAt = time.Now().UTC()
	res, err := s.db.Exec(`UPDATE donations SET
		org_id = ?, donor_name = ?, donor_phone = ?, donor_email = ?,
		amount = ?, currency = ?, type = ?, status = ?, beneficiary_id = ?,
		notes = ?, updated_at = ?
		WHERE id = ?`,
		d.OrgID, d.DonorName, d.DonorPhone, d.DonorEmail, d.Amount,
		d.Currency, d.Type, d.Status, d.BeneficiaryID, d.Notes,
		d.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update donation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetDonationByID(id)
}

func (s *SQLiteStore) DeleteDonation(id string) error {
	_, err := s.db.Exec(`DELETE FROM donations WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) CountDonations(orgID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM donations WHERE org_id = ?`, orgID).Scan(&n)
	return n, err
}

func (s *SQLiteStore) SumDonationAmounts(orgID, status string) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRow(`SELECT SUM(amount) FROM donations WHERE org_id = ? AND status = ?`,
		orgID, status).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}

// User operations

func (s *SQLiteStore) CreateUser(u *models.User) (*models.User, error) {
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

	_, err := s.db.Exec(`INSERT INTO users (`+userSelectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.OrgID, u.Email, u.Name, u.PasswordHash, u.Role, u.Active,
		u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) GetUserByID(id string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userSelectColumns+` FROM users WHERE id = ?`, id)
	var u models.User
	if err := scanUser(row, &u); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *SQLiteStore) GetUserByEmail(email string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userSelectColumns+` FROM users WHERE email = ?`, email)
	var u models.User
	if err := scanUser(row, &u); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *SQLiteStore) ListUsers(orgID string) ([]models.User, error) {
	rows, err := s.db.Query(`SELECT `+userSelectColumns+`
		FROM users WHERE org_id = ? ORDER BY created_at`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateUser(id string, u *models.User) (*models.User, error) {
	u.ID = id
	u.UpdatedAt = time.Now().UTC()
	res, err := s.db.Exec(`UPDATE users SET
		org_id = ?, email = ?, name = ?, password_hash = ?, role = ?,
		active = ?, updated_at = ?
		WHERE id = ?`,
		u.OrgID, u.Email, u.Name, u.PasswordHash, u.Role, u.Active,
		u.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetUserByID(id)
}

func (s *SQLiteStore) DeleteUser(id string) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) CountUsers() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// Session operations

func (s *SQLiteStore) CreateSession(userID string, ttl time.Duration) (*models.Session, error) {
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
	_, err = s.db.Exec(`INSERT INTO sessions (token, user_id, expires_at, revoked, created_at)
		VALUES (?, ?, ?, 0, ?)`,
		session.Token, session.UserID, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *SQLiteStore) GetSession(token string) (*models.Session, error) {
	row := s.db.QueryRow(`SELECT token, user_id, expires_at, revoked, created_at
		FROM sessions WHERE token = ?`, token)
	var sess models.Session
	if err := row.Scan(&sess.Token, &sess.UserID, &sess.ExpiresAt, &sess.Revoked, &sess.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

func (s *SQLiteStore) RevokeSession(token string) error {
	_, err := s.db.Exec(`UPDATE sessions SET revoked = 1 WHERE token = ?`, token)
	return err
}

func (s *SQLiteStore) DeleteExpiredSessions(now time.Time) (int, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at < ? OR revoked = 1`, now.UTC())
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Message operations

func (s *SQLiteStore) CreateMessage(m *models.Message) (*models.Message, error) {
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

	_, err := s.db.Exec(`INSERT INTO messages
		(id, org_id, channel, recipient, subject, body, status, provider_id, provider_error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.OrgID, m.Channel, m.Recipient, m.Subject, m.Body, m.Status,
		m.ProviderID, m.ProviderError, m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return m, nil
}

func (s *SQLiteStore) UpdateMessage(id string, m *models.Message) (*models.Message, error) {
	m.ID = id
	res, err := s.db.Exec(`UPDATE messages SET
		status = ?, provider_id = ?, provider_error = ?
		WHERE id = ?`,
		m.Status, m.ProviderID, m.ProviderError, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return m, nil
}

func (s *SQLiteStore) ListMessages(orgID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`SELECT
		id, org_id, channel, recipient, subject, body, status, provider_id, provider_error, created_at
		FROM messages WHERE org_id = ? ORDER BY created_at DESC LIMIT ?`, orgID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.OrgID, &m.Channel, &m.Recipient, &m.Subject,
			&m.Body, &m.Status, &m.ProviderID, &m.ProviderError, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Activity log operations

func (s *SQLiteStore) AddActivity(e *models.ActivityEntry) error {
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
	_, err := s.db.Exec(`INSERT INTO activity_log
		(id, org_id, user_id, action, resource, resource_id, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.OrgID, e.UserID, e.Action, e.Resource, e.ResourceID, e.Detail, e.CreatedAt)
	return err
}

func (s *SQLiteStore) ListActivity(orgID string, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`SELECT
		id, org_id, user_id, action, resource, resource_id, detail, created_at
		FROM activity_log WHERE org_id = ? ORDER BY created_at DESC LIMIT ?`, orgID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ActivityEntry
	for rows.Next() {
		var e models.ActivityEntry
		if err := rows.Scan(&e.ID, &e.OrgID, &e.UserID, &e.Action, &e.Resource,
			&e.ResourceID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
