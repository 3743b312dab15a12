package migrate

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/blogkit/models"
	"github.com/dtnitsch/blogkit/pkg/frontmatter"
	"github.com/dtnitsch/blogkit/pkg/lang"
)

type fixedLanguage lang.Language

func (f fixedLanguage) Detect(string) lang.Language { return lang.Language(f) }

func newTestMigrator(t *testing.T, l lang.Language) (*Migrator, string, string) {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "posts")
	dst := filepath.Join(root, "articles")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatal(err)
	}
	m := New(models.MigrateConfig{Source: src, Dest: dst}, fixedLanguage(l))
	m.Now = func() time.Time { return time.Date(2025, time.July, 9, 0, 0, 0, 0, time.UTC) }
	m.Out = &bytes.Buffer{}
	return m, src, dst
}

func TestRewrite(t *testing.T) {
	m, _, dst := newTestMigrator(t, lang.English)

	tests := []struct {
		name     string
		file     string
		raw      string
		target   string
		contains []string
		absent   []string
	}{
		{
			name:   "dated post with title",
			file:   "cool.md",
			raw:    "---\ntitle: \"My Cool Tool\"\ndate: 2024-03-15\ndraft: false\n---\nBody\n",
			target: "2024/03-march/my-cool-tool.md",
			contains: []string{
				"title: \"My Cool Tool\"\ndate: 2024-03-15\ndraft: false\nslug: \"my-cool-tool\"\nlastmod: 2024-03-15T12:00:00+08:00\n",
				"description: \"My Cool Tool: practical development tips and solutions from the tech blog\"\n",
				"keywords: [\"tech blog\", \"developer tools\", \"programming tips\"]\n",
				"reading_time: true\ntoc: true\n---\nBody\n",
			},
		},
		{
			name:     "date from file name",
			file:     "2023-11-02-notes.md",
			raw:      "---\ntitle: Notes!\n---\nBody\n",
			target:   "2023/11-november/notes.md",
			contains: []string{"date: 2023-11-02\n", "lastmod: 2023-11-02T12:00:00+08:00\n"},
		},
		{
			name:     "no frontmatter falls back to clock and file name",
			file:     "Some_Post.md",
			raw:      "Just text\n",
			target:   "2025/07-july/some-post.md",
			contains: []string{"slug: \"some-post\"\ndate: 2025-07-01\n"},
			absent:   []string{"description:"},
		},
		{
			name:     "existing fields are kept",
			file:     "kept.md",
			raw:      "---\ntitle: Kept\nslug: custom\ndate: 2024-01-05T08:30:00+08:00\ndescription: mine\ntoc: false\n---\n",
			target:   "2024/01-january/kept.md",
			contains: []string{"slug: custom\n", "lastmod: 2024-01-05T08:30:00+08:00\n", "description: mine\n", "toc: false\n"},
			absent:   []string{"keywords:"},
		},
		{
			name:     "title wins over a different slug",
			file:     "cool.md",
			raw:      "---\ntitle: \"My Cool Tool\"\ndate: 2024-03-15\nslug: old-name\n---\nBody\n",
			target:   "2024/03-march/my-cool-tool.md",
			contains: []string{"slug: old-name\n"},
		},
		{
			name:   "path-like slug does not reach the target",
			file:   "escape.md",
			raw:    "---\ndate: 2024-03-15\nslug: \"../../../escaped\"\n---\n",
			target: "2024/03-march/escape.md",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := m.Rewrite(tt.file, tt.raw)
			if err != nil {
				t.Fatalf("Rewrite() error = %v", err)
			}
			if want := filepath.Join(dst, filepath.FromSlash(tt.target)); plan.Target != want {
				t.Errorf("Target = %q, want %q", plan.Target, want)
			}
			for _, want := range tt.contains {
				if !strings.Contains(plan.Content, want) {
					t.Errorf("Content missing %q:\n%s", want, plan.Content)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(plan.Content, unwanted) {
					t.Errorf("Content unexpectedly has %q:\n%s", unwanted, plan.Content)
				}
			}
			if !frontmatter.WellFormed(plan.Content) {
				t.Errorf("Content is not well formed:\n%s", plan.Content)
			}
		})
	}
}

func TestRewrite_ChinesePlaceholders(t *testing.T) {
	m, _, _ := newTestMigrator(t, lang.Unknown)

	plan, err := m.Rewrite("a.md", "---\ntitle: '格式化指南'\ndate: 2024-02-01\n---\n")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if plan.Language != lang.Chinese {
		t.Errorf("Language = %q, want zh", plan.Language)
	}
	if !strings.Contains(plan.Content, "从技术博客格式化指南，提供实用的开发技巧和解决方案") {
		t.Errorf("Content missing Chinese description:\n%s", plan.Content)
	}
	if plan.Target != filepath.Join(m.Config.Dest, "2024", "02-february", "格式化指南.md") {
		t.Errorf("Target = %q", plan.Target)
	}
}

func TestRun(t *testing.T) {
	m, src, dst := newTestMigrator(t, lang.English)

	files := map[string]string{
		"cool.md":  "---\ntitle: \"My Cool Tool\"\ndate: 2024-03-15\n---\nBody\n",
		"other.md": "---\ntitle: \"My Cool Tool\"\ndate: 2024-03-20\n---\nSame slug\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := m.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Run() returned %d results, want 2", len(results))
	}

	if results[0].Action != ActionMigrated {
		t.Fatalf("cool.md action = %s (%v)", results[0].Action, results[0].Error)
	}
	target := filepath.Join(dst, "2024", "03-march", "my-cool-tool.md")
	if _, err := os.Stat(target); err != nil {
		t.Errorf("target not written: %v", err)
	}
	backup := filepath.Join(src, "backup", "cool.md")
	data, err := os.ReadFile(backup)
	if err != nil || string(data) != files["cool.md"] {
		t.Errorf("backup = %q, %v; want original content", data, err)
	}
	if _, err := os.Stat(filepath.Join(src, "cool.md")); !os.IsNotExist(err) {
		t.Error("original still in source directory")
	}

	// other.md lands on the same path and is left alone.
	if results[1].Action != ActionSkipped || !errors.Is(results[1].Error, ErrTargetExists) {
		t.Errorf("other.md = %s (%v), want skipped with ErrTargetExists", results[1].Action, results[1].Error)
	}
	if _, err := os.Stat(filepath.Join(src, "other.md")); err != nil {
		t.Error("skipped post was moved")
	}
}

func TestRewrite_InvalidSlug(t *testing.T) {
	m, _, _ := newTestMigrator(t, lang.English)

	if _, err := m.Rewrite("___.md", "---\ntitle: \"!!!\"\n---\n"); !errors.Is(err, ErrInvalidSlug) {
		t.Errorf("Rewrite() error = %v, want ErrInvalidSlug", err)
	}
}

func TestWithin(t *testing.T) {
	root := filepath.Join("content", "articles")
	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "2024", "03-march", "a.md"), true},
		{filepath.Join(root, "..", "a.md"), false},
		{filepath.Join(root, "2024", "..", "..", "..", "a.md"), false},
		{filepath.Join(root, "..a.md"), true},
	}
	for _, tt := range tests {
		if got := within(root, tt.path); got != tt.want {
			t.Errorf("within(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRun_InvalidSlugFails(t *testing.T) {
	m, src, _ := newTestMigrator(t, lang.English)

	if err := os.WriteFile(filepath.Join(src, "___.md"), []byte("no frontmatter\n"), 0644); err != nil {
		t.Fatal(err)
	}
	results, err := m.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 1 || results[0].Action != ActionFailed || results[0].ErrorType != "invalid_slug" {
		t.Fatalf("Run() = %+v, want one invalid_slug failure", results)
	}
	if _, err := os.Stat(filepath.Join(src, "___.md")); err != nil {
		t.Error("failed post was moved")
	}
}

func TestRun_KeepsEarlierBackup(t *testing.T) {
	m, src, _ := newTestMigrator(t, lang.English)

	backupDir := filepath.Join(src, "backup")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(backupDir, "cool.md"), []byte("earlier"), 0644); err != nil {
		t.Fatal(err)
	}
	original := "---\ntitle: Cool\ndate: 2024-03-15\n---\n"
	if err := os.WriteFile(filepath.Join(src, "cool.md"), []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	results, err := m.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 1 || results[0].Action != ActionMigrated {
		t.Fatalf("Run() = %+v", results)
	}
	if want := filepath.Join(backupDir, "cool-1.md"); results[0].Backup != want {
		t.Errorf("Backup = %q, want %q", results[0].Backup, want)
	}
	if data, _ := os.ReadFile(filepath.Join(backupDir, "cool.md")); string(data) != "earlier" {
		t.Errorf("earlier backup replaced: %q", data)
	}
	if data, _ := os.ReadFile(filepath.Join(backupDir, "cool-1.md")); string(data) != original {
		t.Errorf("new backup = %q, want original content", data)
	}
}

func TestRun_DryRun(t *testing.T) {
	m, src, dst := newTestMigrator(t, lang.English)
	m.Config.DryRun = true

	path := filepath.Join(src, "cool.md")
	if err := os.WriteFile(path, []byte("---\ntitle: Cool\ndate: 2024-03-15\n---\n"), 0644); err != nil {
		t.Fatal(err)
	}

	results, err := m.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 1 || results[0].Action != ActionMigrated {
		t.Fatalf("Run() = %+v", results)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("dry run created the destination")
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("dry run moved the source")
	}
}

func TestRun_MissingSource(t *testing.T) {
	m := New(models.MigrateConfig{Source: filepath.Join(t.TempDir(), "none"), Dest: t.TempDir()}, nil)
	if _, err := m.Run(); err == nil {
		t.Error("Run() error = nil for missing source")
	}
}
