package repos

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB connects to sqlite or postgres and makes sure the schema exists.
func OpenDB(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	var name string
	switch driver {
	case "sqlite":
		name = "sqlite"
	case "postgres":
		name = "pgx"
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
	db, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, err
	}
	if name == "sqlite" {
		// one connection keeps :memory: databases shared and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts(
  username TEXT PRIMARY KEY,
  email TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('customer','photographer','admin')),
  photographer_id TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email ON accounts(LOWER(email)) WHERE email <> ''`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_photographer ON accounts(photographer_id)`,

	`CREATE TABLE IF NOT EXISTS photographers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  specialization TEXT NOT NULL,
  rate INTEGER NOT NULL CHECK (rate > 0),
  contact TEXT NOT NULL DEFAULT '',
  bio TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  experience INTEGER NOT NULL DEFAULT 0 CHECK (experience >= 0),
  location TEXT NOT NULL DEFAULT '',
  skills_json TEXT NOT NULL DEFAULT '[]',
  availability_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL
)`,

	// no foreign key to photographers: bookings outlive deleted profiles
	`CREATE TABLE IF NOT EXISTS bookings(
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  photographer_id TEXT NOT NULL,
  booking_date TEXT NOT NULL,
  booking_time TEXT NOT NULL,
  location TEXT NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'Pending',
  created_at TEXT NOT NULL
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_slot ON bookings(photographer_id, booking_date, booking_time)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings(customer_id)`,

	`CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  role TEXT NOT NULL,
  photographer_id TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_username ON sessions(username)`,
}

// EnsureSchema creates missing tables and indexes. Statements run one by one
// so the same list works on both drivers.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %s: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
