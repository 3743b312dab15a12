package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/blogkit/models"
	"github.com/google/uuid"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned when no run matches an ID or ID prefix.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded command invocation.
type Run struct {
	RunID        string     `yaml:"run_id"`
	Command      string     `yaml:"command"`
	Root         string     `yaml:"root"`
	DryRun       bool       `yaml:"dry_run,omitempty"`
	StartedAt    time.Time  `yaml:"started_at"`
	FinishedAt   *time.Time `yaml:"finished_at,omitempty"`
	FilesSeen    int        `yaml:"files_seen"`
	FilesChanged int        `yaml:"files_changed"`
	Failures     int        `yaml:"failures"`
}

// RunStats are the totals recorded when a run finishes.
type RunStats struct {
	FilesSeen    int
	FilesChanged int
	Failures     int
}

// FileEvent is the outcome for one file in a repair or migrate run.
type FileEvent struct {
	Path   string `yaml:"path"`
	Action string `yaml:"action"`
	Target string `yaml:"target,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

// StartRun records a new run and returns its ID.
func (db *DB) StartRun(command, root string, dryRun bool) (string, error) {
	runID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO runs (run_id, command, root, dry_run, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, command, root, dryRun, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	return runID, nil
}

// FinishRun stamps the finish time and totals of a run.
func (db *DB) FinishRun(runID string, stats RunStats) error {
	res, err := db.Exec(`
		UPDATE runs
		SET finished_at = ?, files_seen = ?, files_changed = ?, failures = ?
		WHERE run_id = ?
	`, time.Now().UTC().Format(timeLayout), stats.FilesSeen, stats.FilesChanged, stats.Failures, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// InsertMentions stores a run's mentions in a single transaction.
func (db *DB) InsertMentions(runID string, mentions []models.ToolMention) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO mentions (run_id, title, url, description, enhanced_description,
		                      category, source, article_title, article_slug, file_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare mention insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range mentions {
		if _, err := stmt.Exec(runID, m.Title, m.URL, m.Description, m.EnhancedDescription,
			string(m.Category), string(m.Source), m.ArticleTitle, m.ArticleSlug, m.FilePath); err != nil {
			return fmt.Errorf("failed to insert mention %q: %w", m.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mentions: %w", err)
	}
	return nil
}

// InsertFileEvent records the outcome for one file.
func (db *DB) InsertFileEvent(runID string, ev FileEvent) error {
	_, err := db.Exec(`
		INSERT INTO file_events (run_id, path, action, target, error)
		VALUES (?, ?, ?, ?, ?)
	`, runID, ev.Path, ev.Action, NewNullString(ev.Target), NewNullString(ev.Error))
	if err != nil {
		return fmt.Errorf("failed to insert file event: %w", err)
	}
	return nil
}

const runColumns = `run_id, command, root, dry_run, started_at, finished_at, files_seen, files_changed, failures`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		r          Run
		startedAt  string
		finishedAt sql.NullString
	)
	if err := row.Scan(&r.RunID, &r.Command, &r.Root, &r.DryRun, &startedAt, &finishedAt,
		&r.FilesSeen, &r.FilesChanged, &r.Failures); err != nil {
		return nil, err
	}

	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("bad started_at %q: %w", startedAt, err)
	}
	r.StartedAt = t
	if finishedAt.Valid {
		t, err := time.Parse(timeLayout, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("bad finished_at %q: %w", finishedAt.String, err)
		}
		r.FinishedAt = &t
	}
	return &r, nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRun looks a run up by its full ID or a unique ID prefix.
func (db *DB) GetRun(id string) (*Run, error) {
	rows, err := db.Query(`SELECT `+runColumns+` FROM runs WHERE run_id LIKE ? || '%' LIMIT 2`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer rows.Close()

	var found []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// RunMentions returns a run's mentions in insertion order.
func (db *DB) RunMentions(runID string) ([]models.ToolMention, error) {
	rows, err := db.Query(`
		SELECT title, url, description, enhanced_description, category, source,
		       article_title, article_slug, file_path
		FROM mentions
		WHERE run_id = ?
		ORDER BY mention_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mentions: %w", err)
	}
	defer rows.Close()

	var mentions []models.ToolMention
	for rows.Next() {
		var (
			m                models.ToolMention
			category, source string
		)
		if err := rows.Scan(&m.Title, &m.URL, &m.Description, &m.EnhancedDescription, &category,
			&source, &m.ArticleTitle, &m.ArticleSlug, &m.FilePath); err != nil {
			return nil, fmt.Errorf("failed to scan mention: %w", err)
		}
		m.Category = models.Category(category)
		m.Source = models.Source(source)
		mentions = append(mentions, m)
	}
	return mentions, rows.Err()
}

// RunEvents returns a run's file events in insertion order.
func (db *DB) RunEvents(runID string) ([]FileEvent, error) {
	rows, err := db.Query(`
		SELECT path, action, target, error
		FROM file_events
		WHERE run_id = ?
		ORDER BY event_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file events: %w", err)
	}
	defer rows.Close()

	var events []FileEvent
	for rows.Next() {
		var (
			ev             FileEvent
			target, errMsg sql.NullString
		)
		if err := rows.Scan(&ev.Path, &ev.Action, &target, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan file event: %w", err)
		}
		ev.Target = target.String
		ev.Error = errMsg.String
		events = append(events, ev)
	}
	return events, rows.Err()
}

// NewNullString maps "" to NULL.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
