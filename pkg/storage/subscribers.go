package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrInvalidEmail is returned when an address does not look like an e-mail.
var ErrInvalidEmail = errors.New("invalid email")

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Subscriber is a mailing list entry.
type Subscriber struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriberDB keeps the e-mail subscribers in SQLite.
type SubscriberDB struct {
	sql *sql.DB
}

// OpenSubscribers opens (and creates if needed) the subscriber database at path.
func OpenSubscribers(path string) (*SubscriberDB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS subscribers (
  id         INTEGER PRIMARY KEY,
  email      TEXT NOT NULL UNIQUE,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
    `); err != nil {
		db.Close()
		return nil, err
	}
	return &SubscriberDB{sql: db}, nil
}

func (d *SubscriberDB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// NormalizeEmail trims and lower-cases an address and validates its shape.
func NormalizeEmail(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return "", ErrInvalidEmail
	}
	return s, nil
}

// Add subscribes email. It reports false when the address was already present.
func (d *SubscriberDB) Add(ctx context.Context, email string) (bool, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return false, err
	}
	res, err := d.sql.ExecContext(ctx, `INSERT INTO subscribers(email) VALUES(?) ON CONFLICT(email) DO NOTHING`, email)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// Remove unsubscribes email. It reports false when the address was not present.
func (d *SubscriberDB) Remove(ctx context.Context, email string) (bool, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return false, err
	}
	res, err := d.sql.ExecContext(ctx, `DELETE FROM subscribers WHERE email = ?`, email)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// List returns subscribers in sign-up order. A limit <= 0 returns everyone.
func (d *SubscriberDB) List(ctx context.Context, limit int) ([]Subscriber, error) {
	q := "SELECT email, created_at FROM subscribers ORDER BY id"
	args := []interface{}{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []Subscriber{}
	for rows.Next() {
		var s Subscriber
		var createdAt string
		if err := rows.Scan(&s.Email, &createdAt); err != nil {
			return nil, err
		}
		// CURRENT_TIMESTAMP format, or RFC3339 depending on the driver
		if t, perr := time.Parse("2006-01-02 15:04:05", createdAt); perr == nil {
			s.CreatedAt = t
		} else if t2, perr2 := time.Parse(time.RFC3339, createdAt); perr2 == nil {
			s.CreatedAt = t2
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Count returns the number of subscribers.
func (d *SubscriberDB) Count(ctx context.Context) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers").Scan(&n)
	return n, err
}
