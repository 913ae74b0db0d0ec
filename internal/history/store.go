package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"onboard/internal/config"
	"onboard/internal/onboarding"
	"onboard/internal/portal"
	"onboard/internal/upload"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users delete the database to adopt the new schema.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store manages the local attempt journal backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StateDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// StartAttempt journals a new attempt for a staged file.
func (s *Store) StartAttempt(ctx context.Context, file *upload.CandidateFile) (*Attempt, error) {
	if file == nil {
		return nil, errors.New("nil candidate file")
	}
	now := time.Now().UTC()
	attempt := &Attempt{
		ID:        uuid.NewString(),
		FileName:  file.Name,
		FileSize:  file.Size,
		State:     upload.StateUploading,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO upload_attempts (id, file_name, file_size, state, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		attempt.ID, attempt.FileName, attempt.FileSize, string(attempt.State),
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}
	return attempt, nil
}

// MarkSucceeded finalizes an attempt with the server's candidate projection.
func (s *Store) MarkSucceeded(ctx context.Context, id string, result *portal.UploadResult) error {
	candidateName := ""
	skillCount := 0
	hasEmbeddings := false
	if result != nil {
		candidateName = result.Name
		skillCount = len(result.Skills)
		hasEmbeddings = result.HasEmbeddings
	}
	return s.finishAttempt(ctx, id, upload.StateSucceeded, "", candidateName, skillCount, hasEmbeddings)
}

// MarkFailed finalizes an attempt with its user-facing failure reason.
func (s *Store) MarkFailed(ctx context.Context, id, reason string) error {
	return s.finishAttempt(ctx, id, upload.StateFailed, reason, "", 0, false)
}

func (s *Store) finishAttempt(ctx context.Context, id string, state upload.AttemptState, reason, candidateName string, skillCount int, hasEmbeddings bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE upload_attempts
         SET state = ?, failure_reason = ?, candidate_name = ?, skill_count = ?, has_embeddings = ?, updated_at = ?
         WHERE id = ?`,
		string(state), reason, candidateName, skillCount, boolToInt(hasEmbeddings),
		time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("update attempt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update attempt: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("attempt %s not found", id)
	}
	return nil
}

// Recent returns the most recent attempts, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, file_size, state, failure_reason, candidate_name, skill_count, has_embeddings, created_at, updated_at
         FROM upload_attempts
         ORDER BY created_at DESC, id DESC
         LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var attempt Attempt
		var state, createdAt, updatedAt string
		var hasEmbeddings int
		if err := rows.Scan(
			&attempt.ID, &attempt.FileName, &attempt.FileSize, &state,
			&attempt.FailureReason, &attempt.CandidateName, &attempt.SkillCount,
			&hasEmbeddings, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempt.State = upload.AttemptState(state)
		attempt.HasEmbeddings = hasEmbeddings != 0
		attempt.CreatedAt = parseTimestamp(createdAt)
		attempt.UpdatedAt = parseTimestamp(updatedAt)
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}

// SaveSnapshot caches the authoritative user record after a refetch.
func (s *Store) SaveSnapshot(ctx context.Context, record *portal.UserRecord) error {
	if record == nil {
		return errors.New("nil user record")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_snapshot (slot, user_id, name, email, role, status, refreshed_at)
         VALUES (1, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(slot) DO UPDATE SET
             user_id = excluded.user_id,
             name = excluded.name,
             email = excluded.email,
             role = excluded.role,
             status = excluded.status,
             refreshed_at = excluded.refreshed_at`,
		record.ID, record.Name, record.Email, record.Role, string(record.Status),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Snapshot returns the cached user record and when it was refreshed. A
// missing snapshot resolves to nil without error.
func (s *Store) Snapshot(ctx context.Context) (*portal.UserRecord, time.Time, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, email, role, status, refreshed_at FROM user_snapshot WHERE slot = 1`)

	var record portal.UserRecord
	var status, refreshedAt string
	err := row.Scan(&record.ID, &record.Name, &record.Email, &record.Role, &status, &refreshedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("scan snapshot: %w", err)
	}
	record.Status = onboarding.Status(status)
	return &record, parseTimestamp(refreshedAt), nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
