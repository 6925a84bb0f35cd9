// Package sqlite keeps a per-user snapshot of the last fetched task set, so
// the CLI and TUI can paint something useful before (or without) a network
// round-trip. Snapshots are replaced wholesale; this is not a response cache.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dwaring87/rtm-api/internal/domain"
	"github.com/dwaring87/rtm-api/internal/ports"
)

// Cache implements ports.TaskCache on a local SQLite database.
type Cache struct {
	db *sql.DB
}

var _ ports.TaskCache = (*Cache)(nil)

// Open creates or opens the snapshot database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS tasks (
			user_id      INTEGER NOT NULL,
			list_id      INTEGER NOT NULL,
			series_id    INTEGER NOT NULL,
			task_id      INTEGER NOT NULL,
			name         TEXT NOT NULL,
			url          TEXT NOT NULL,
			source       TEXT NOT NULL,
			tags         TEXT NOT NULL,
			priority     INTEGER NOT NULL,
			due          INTEGER NOT NULL,
			has_due_time INTEGER NOT NULL,
			added        INTEGER NOT NULL,
			completed    INTEGER NOT NULL,
			deleted      INTEGER NOT NULL,
			PRIMARY KEY (user_id, list_id, series_id, task_id)
		);
		CREATE TABLE IF NOT EXISTS sync_meta (
			user_id   INTEGER PRIMARY KEY,
			synced_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("setup cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Replace swaps the user's snapshot for tasks, atomically.
func (c *Cache) Replace(userID int64, tasks []domain.Task) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tasks (user_id, list_id, series_id, task_id, name, url,
		                   source, tags, priority, due, has_due_time, added,
		                   completed, deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		_, err := stmt.Exec(
			userID, t.ListID, t.SeriesID, t.TaskID, t.Name, t.URL,
			t.Source, strings.Join(t.Tags, ","), int(t.Priority),
			unix(t.Due), boolInt(t.HasDueTime), unix(t.Added),
			unix(t.Completed), unix(t.Deleted),
		)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO sync_meta (user_id, synced_at) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET synced_at = excluded.synced_at
	`, userID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("update sync meta: %w", err)
	}

	return tx.Commit()
}

// Tasks returns the user's snapshot, oldest added first.
func (c *Cache) Tasks(userID int64) ([]domain.Task, error) {
	rows, err := c.db.Query(`
		SELECT list_id, series_id, task_id, name, url, source, tags,
		       priority, due, has_due_time, added, completed, deleted
		FROM tasks WHERE user_id = ?
		ORDER BY added, task_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var (
			t                              domain.Task
			tags                           string
			priority, hasDueTime           int
			due, added, completed, deleted int64
		)
		err := rows.Scan(&t.ListID, &t.SeriesID, &t.TaskID, &t.Name, &t.URL,
			&t.Source, &tags, &priority, &due, &hasDueTime, &added,
			&completed, &deleted)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}

		if tags != "" {
			t.Tags = strings.Split(tags, ",")
		}
		t.Priority = domain.Priority(priority)
		t.HasDueTime = hasDueTime == 1
		t.Due = fromUnix(due)
		t.Added = fromUnix(added)
		t.Completed = fromUnix(completed)
		t.Deleted = fromUnix(deleted)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// LastSync returns when the user's snapshot was last replaced.
func (c *Cache) LastSync(userID int64) (time.Time, error) {
	var syncedAt int64
	err := c.db.QueryRow(
		`SELECT synced_at FROM sync_meta WHERE user_id = ?`, userID,
	).Scan(&syncedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query sync meta: %w", err)
	}
	return time.Unix(syncedAt, 0), nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func fromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
