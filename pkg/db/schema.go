package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per command invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    command TEXT NOT NULL,        -- tools, repair, migrate
    root TEXT NOT NULL,
    dry_run BOOLEAN DEFAULT 0,
    started_at TEXT NOT NULL,     -- RFC 3339
    finished_at TEXT,
    files_seen INTEGER DEFAULT 0,
    files_changed INTEGER DEFAULT 0,
    failures INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

-- Tool mentions found by a tools run, in discovery order
CREATE TABLE IF NOT EXISTS mentions (
    mention_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    title TEXT NOT NULL,
    url TEXT,
    description TEXT,
    enhanced_description TEXT,
    category TEXT NOT NULL,
    source TEXT NOT NULL,
    article_title TEXT,
    article_slug TEXT,
    file_path TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_mentions_run ON mentions(run_id);
CREATE INDEX IF NOT EXISTS idx_mentions_category ON mentions(category);

-- Per-file outcome of a repair or migrate run
CREATE TABLE IF NOT EXISTS file_events (
    event_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    path TEXT NOT NULL,
    action TEXT NOT NULL,         -- repaired, slug_added, migrated, skipped, unchanged, failed
    target TEXT,
    error TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_file_events_run ON file_events(run_id);
`
