package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var (
	ErrNoSession     = errors.New("no stored session")
	ErrDuplicateNode = errors.New("node already recorded")
)

// SessionRecord is the persisted login.
type SessionRecord struct {
	Username    string
	DisplayName string
	StartedAt   time.Time
}

// SQLiteRepository keeps client-side state: the current session and nodes
// declared locally that the backend has not seen yet.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveSession replaces the stored session.
func (r *SQLiteRepository) SaveSession(ctx context.Context, s SessionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, username, display_name, started_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username = excluded.username,
			display_name = excluded.display_name,
			started_at = excluded.started_at`,
		s.Username, s.DisplayName, s.StartedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) LoadSession(ctx context.Context) (SessionRecord, error) {
	var rec SessionRecord
	var started string
	err := r.db.QueryRowContext(ctx,
		`SELECT username, display_name, started_at FROM sessions WHERE id = 1`).
		Scan(&rec.Username, &rec.DisplayName, &started)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNoSession
	}
	if err != nil {
		return rec, fmt.Errorf("load session: %w", err)
	}
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return rec, fmt.Errorf("parse session start %q: %w", started, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) DeleteSession(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// AddLocalNode records a node created on this client.
func (r *SQLiteRepository) AddLocalNode(ctx context.Context, user, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO local_nodes (username, name, created_at) VALUES (?, ?, ?)`,
		user, name, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateNode
		}
		return fmt.Errorf("add local node: %w", err)
	}
	return nil
}

// LocalNodes returns the user's locally recorded nodes in creation order.
func (r *SQLiteRepository) LocalNodes(ctx context.Context, user string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM local_nodes WHERE username = ? ORDER BY id`, user)
	if err != nil {
		return nil, fmt.Errorf("list local nodes: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan local node: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// RenameLocalNode follows a rename. Renaming an unrecorded node is a no-op.
func (r *SQLiteRepository) RenameLocalNode(ctx context.Context, user, oldName, newName string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE local_nodes SET name = ? WHERE username = ? AND name = ?`, newName, user, oldName)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateNode
		}
		return fmt.Errorf("rename local node: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) RemoveLocalNode(ctx context.Context, user, name string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM local_nodes WHERE username = ? AND name = ?`, user, name); err != nil {
		return fmt.Errorf("remove local node: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
