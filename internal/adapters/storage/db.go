package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
)

// DateFormat is the date-only storage format used for all date columns.
const DateFormat = "2006-01-02"

// sqliteConstraintUnique is the SQLite extended result code for a UNIQUE
// constraint violation (SQLITE_CONSTRAINT_UNIQUE).
const sqliteConstraintUnique = 2067

// IsUniqueViolation reports whether err is a UNIQUE constraint violation.
// Duplicate-email races are mapped onto typed domain errors via this check
// rather than by matching database error text.
func IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqliteConstraintUnique
}

// FormatDate renders a time as a date-only column value. Zero times map to
// the empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

// ParseDate parses a date-only column value. Empty or malformed input yields
// a zero time.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NullableDate converts a date to a driver value, mapping zero to NULL.
func NullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(DateFormat)
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS members (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL,
		address TEXT,
		date_of_birth TEXT,
		emergency_contact_name TEXT,
		emergency_contact_phone TEXT,
		membership_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Active',
		membership_start_date TEXT,
		membership_expiry_date TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trainers (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL,
		specialization TEXT,
		experience_years INTEGER,
		certification TEXT,
		hire_date TEXT,
		status TEXT NOT NULL DEFAULT 'Active',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_plans (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		trainer_id TEXT,
		plan_name TEXT NOT NULL,
		plan_type TEXT,
		description TEXT,
		goals TEXT,
		notes TEXT,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		sessions_per_week INTEGER,
		session_duration INTEGER,
		duration_weeks INTEGER,
		difficulty_level TEXT,
		exercises TEXT NOT NULL DEFAULT '[]',
		status TEXT NOT NULL DEFAULT 'Draft',
		created_at TEXT NOT NULL,
		FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE,
		FOREIGN KEY (trainer_id) REFERENCES trainers(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_members_expiry ON members(membership_expiry_date);
	CREATE INDEX IF NOT EXISTS idx_workout_plans_member ON workout_plans(member_id);
	CREATE INDEX IF NOT EXISTS idx_workout_plans_trainer ON workout_plans(trainer_id);
	CREATE INDEX IF NOT EXISTS idx_workout_plans_status ON workout_plans(status);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
