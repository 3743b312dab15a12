package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/blogkit/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestRunLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.StartRun("repair", "content/articles", true)
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	run, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.FinishedAt != nil {
		t.Error("FinishedAt set before FinishRun()")
	}
	if !run.DryRun || run.Command != "repair" {
		t.Errorf("GetRun() = %+v", run)
	}

	if err := db.FinishRun(runID, RunStats{FilesSeen: 4, FilesChanged: 2, Failures: 1}); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	run, err = db.GetRun(runID[:8])
	if err != nil {
		t.Fatalf("GetRun(prefix) error = %v", err)
	}
	if run.FinishedAt == nil {
		t.Fatal("FinishedAt not set")
	}
	if run.FilesSeen != 4 || run.FilesChanged != 2 || run.Failures != 1 {
		t.Errorf("stats = %d/%d/%d, want 4/2/1", run.FilesSeen, run.FilesChanged, run.Failures)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetRun("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun() error = %v, want ErrRunNotFound", err)
	}
	if err := db.FinishRun("nope", RunStats{}); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("FinishRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, cmd := range []string{"tools", "repair", "migrate"} {
		if _, err := db.StartRun(cmd, "content", false); err != nil {
			t.Fatalf("StartRun(%s) error = %v", cmd, err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 0, []string{"migrate", "repair", "tools"}},
		{"limited", 2, []string{"migrate", "repair"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := db.ListRuns(tt.limit)
			if err != nil {
				t.Fatalf("ListRuns() error = %v", err)
			}
			if len(runs) != len(tt.want) {
				t.Fatalf("ListRuns() returned %d runs, want %d", len(runs), len(tt.want))
			}
			for i, r := range runs {
				if r.Command != tt.want[i] {
					t.Errorf("runs[%d].Command = %q, want %q", i, r.Command, tt.want[i])
				}
			}
		})
	}
}

func TestMentionsAndEvents(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.StartRun("tools", "content/posts", false)
	if err != nil {
		t.Fatal(err)
	}

	mentions := []models.ToolMention{
		{Title: "JSON Formatter", URL: "https://x.dev/json", Category: models.CategoryTextProcessing, Source: models.SourceSectionList, ArticleTitle: "A", ArticleSlug: "a"},
		{Title: "Regex Tool", Category: models.CategoryPatternMatching, Source: models.SourcePlainText, ArticleTitle: "B", ArticleSlug: "b"},
	}
	if err := db.InsertMentions(runID, mentions); err != nil {
		t.Fatalf("InsertMentions() error = %v", err)
	}

	got, err := db.RunMentions(runID)
	if err != nil {
		t.Fatalf("RunMentions() error = %v", err)
	}
	if len(got) != 2 || got[0].Title != "JSON Formatter" || got[1].Category != models.CategoryPatternMatching {
		t.Errorf("RunMentions() = %+v", got)
	}

	events := []FileEvent{
		{Path: "a.md", Action: "migrated", Target: filepath.Join("2024", "03-march", "a.md")},
		{Path: "b.md", Action: "failed", Error: "boom"},
	}
	for _, ev := range events {
		if err := db.InsertFileEvent(runID, ev); err != nil {
			t.Fatalf("InsertFileEvent() error = %v", err)
		}
	}
	gotEvents, err := db.RunEvents(runID)
	if err != nil {
		t.Fatalf("RunEvents() error = %v", err)
	}
	if len(gotEvents) != 2 || gotEvents[0] != events[0] || gotEvents[1] != events[1] {
		t.Errorf("RunEvents() = %+v, want %+v", gotEvents, events)
	}
}

func TestOpenPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	if _, err := db.StartRun("tools", "x", false); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = OpenPath(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()
	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	runs, err := db.ListRuns(0)
	if err != nil || len(runs) != 1 {
		t.Errorf("ListRuns() = %d runs, %v; want 1", len(runs), err)
	}
}
