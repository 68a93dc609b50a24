// Package mail stores messages written in the mail window.
//
// Nothing is delivered. Messages are kept in a local SQLite outbox so the
// owner can read them later with `folio mail list`.
package mail

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Gaurav-Gosain/folio/internal/mail/migrations"
)

// ErrEmptyMessage is returned when a message has no body.
var ErrEmptyMessage = errors.New("message body is required")

// SentNotice is shown after a message is saved.
const SentNotice = "Message sent! (This is a demo)"

// Message is one composed mail.
type Message struct {
	ID        string    `yaml:"id"`
	To        string    `yaml:"to"`
	Subject   string    `yaml:"subject"`
	Body      string    `yaml:"body"`
	Session   string    `yaml:"session,omitempty"` // ssh user or "local"
	CreatedAt time.Time `yaml:"created_at"`
}

// Outbox persists messages in SQLite.
type Outbox struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the outbox at path, creating it and applying migrations.
func Open(path string) (*Outbox, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("outbox path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Outbox{db: db, now: time.Now}, nil
}

// Close closes the database handle.
func (o *Outbox) Close() error {
	if o == nil || o.db == nil {
		return nil
	}
	return o.db.Close()
}

// Save validates and stores msg, returning the stored copy.
func (o *Outbox) Save(ctx context.Context, msg Message) (Message, error) {
	if err := ctx.Err(); err != nil {
		return Message{}, err
	}
	if o == nil || o.db == nil {
		return Message{}, fmt.Errorf("outbox is not configured")
	}
	msg.To = strings.TrimSpace(msg.To)
	msg.Subject = strings.TrimSpace(msg.Subject)
	if strings.TrimSpace(msg.Body) == "" {
		return Message{}, ErrEmptyMessage
	}
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = o.now()
	}
	msg.CreatedAt = msg.CreatedAt.UTC()

	_, err := o.db.ExecContext(ctx,
		`INSERT INTO outbox (id, recipient, subject, body, session, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.To, msg.Subject, msg.Body, msg.Session, msg.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

// List returns up to limit messages, newest first. A limit of zero or less
// returns all of them.
func (o *Outbox) List(ctx context.Context, limit int) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if o == nil || o.db == nil {
		return nil, fmt.Errorf("outbox is not configured")
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := o.db.QueryContext(ctx,
		`SELECT id, recipient, subject, body, session, created_at
		 FROM outbox ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Message
	for rows.Next() {
		var (
			m       Message
			created int64
		)
		if err := rows.Scan(&m.ID, &m.To, &m.Subject, &m.Body, &m.Session, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}

// Count returns the number of stored messages.
func (o *Outbox) Count(ctx context.Context) (int, error) {
	if o == nil || o.db == nil {
		return 0, fmt.Errorf("outbox is not configured")
	}
	var n int
	if err := o.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM outbox").Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
