// Package migrate moves posts from a flat directory into the dated
// <year>/<MM>-<month>/<slug>.md layout, filling in frontmatter fields the new
// layout relies on.
package migrate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/blogkit/models"
	"github.com/dtnitsch/blogkit/pkg/frontmatter"
	"github.com/dtnitsch/blogkit/pkg/lang"
	"github.com/dtnitsch/blogkit/pkg/permalink"
	"github.com/dtnitsch/blogkit/pkg/storage"
	"github.com/dtnitsch/blogkit/pkg/walker"
)

const DefaultTime = "12:00:00+08:00"

var (
	// ErrTargetExists is returned when a migrated post would replace an
	// existing file and overwriting is off.
	ErrTargetExists = errors.New("target already exists")
	// ErrInvalidSlug is returned when no usable slug can be derived or the
	// target would land outside the destination directory.
	ErrInvalidSlug = errors.New("invalid slug")
)

type Action string

const (
	ActionMigrated Action = "migrated"
	ActionSkipped  Action = "skipped"
	ActionFailed   Action = "failed"
)

// Detector guesses the language of a title.
type Detector interface {
	Detect(text string) lang.Language
}

// Plan is the rewritten post and where it goes.
type Plan struct {
	Content  string
	Slug     string
	Date     permalink.PubDate
	Target   string
	Language lang.Language
	Warnings []string
}

// Result is the outcome for one post.
type Result struct {
	Path      string
	Target    string
	Backup    string
	Action    Action
	Plan      *Plan
	Error     error
	ErrorType string
}

type Migrator struct {
	Config   models.MigrateConfig
	Detector Detector
	Now      func() time.Time
	Out      io.Writer

	storage storage.Storage
}

func New(cfg models.MigrateConfig, detector Detector) *Migrator {
	if cfg.BackupDir == "" {
		cfg.BackupDir = filepath.Join(cfg.Source, "backup")
	}
	if cfg.DefaultTime == "" {
		cfg.DefaultTime = DefaultTime
	}
	return &Migrator{Config: cfg, Detector: detector, Now: time.Now}
}

func (m *Migrator) out() io.Writer {
	if m.Out == nil {
		return os.Stdout
	}
	return m.Out
}

// Run migrates every *.md file directly inside the source directory.
func (m *Migrator) Run() ([]Result, error) {
	files, err := walker.Markdown(m.Config.Source, walker.Options{})
	if err != nil {
		return nil, err
	}

	var results []Result
	migrated := 0
	for _, f := range files {
		res := m.MigrateFile(f)
		results = append(results, res)

		switch res.Action {
		case ActionMigrated:
			migrated++
			if res.Plan != nil {
				for _, w := range res.Plan.Warnings {
					fmt.Fprintf(m.out(), "warning %s: %s\n", f.Rel, w)
				}
			}
			fmt.Fprintf(m.out(), "migrated %s -> %s\n", f.Rel, res.Target)
		case ActionSkipped:
			fmt.Fprintf(m.out(), "skipped %s: %v\n", f.Rel, res.Error)
		default:
			fmt.Fprintf(m.out(), "failed %s: %v\n", f.Rel, res.Error)
		}
	}

	verb := "migrated"
	if m.Config.DryRun {
		verb = "would migrate"
	}
	fmt.Fprintf(m.out(), "%s %d of %d files\n", verb, migrated, len(files))
	return results, nil
}

// MigrateFile rewrites one post into the destination tree and moves the
// original into the backup directory.
func (m *Migrator) MigrateFile(f walker.File) Result {
	res := Result{Path: f.Rel}
	fail := func(err error, kind string) Result {
		res.Action = ActionFailed
		res.Error = err
		res.ErrorType = kind
		return res
	}

	data, err := m.storage.ReadFile(f.Path)
	if err != nil {
		return fail(err, "read_error")
	}

	plan, err := m.Rewrite(filepath.Base(f.Path), string(data))
	if errors.Is(err, ErrInvalidSlug) {
		return fail(err, "invalid_slug")
	}
	if err != nil {
		return fail(err, "encode_error")
	}
	res.Plan = plan
	res.Target = plan.Target
	res.Backup = m.backupPath(filepath.Base(f.Path))

	if m.storage.HasFile(plan.Target) && !m.Config.Overwrite {
		res.Action = ActionSkipped
		res.Error = fmt.Errorf("%w: %s", ErrTargetExists, plan.Target)
		res.ErrorType = "target_exists"
		return res
	}

	res.Action = ActionMigrated
	if m.Config.DryRun {
		return res
	}
	if err := m.storage.SaveFile(plan.Target, []byte(plan.Content)); err != nil {
		return fail(err, "save_error")
	}
	if err := m.storage.Move(f.Path, res.Backup); err != nil {
		return fail(err, "backup_error")
	}
	return res
}

// Rewrite computes the migrated content and target path for a post named
// name. It touches no files.
func (m *Migrator) Rewrite(name, raw string) (*Plan, error) {
	rec := frontmatter.Recover(raw)
	fields := rec.Fields
	title := fields.Get("title")

	plan := &Plan{Date: permalink.ResolveDate(fields.Get("date"), name, m.Now())}
	if plan.Date.Source == permalink.FromClock {
		plan.Warnings = append(plan.Warnings, "no date found, using the current month")
	}

	// The path always comes from the title or file name; a slug already in
	// the frontmatter is kept as metadata only.
	plan.Slug = permalink.Slug(title)
	if plan.Slug == "" {
		plan.Slug = permalink.FileSlug(name)
	}
	if plan.Slug == "" {
		return nil, fmt.Errorf("%w: no usable title or file name in %s", ErrInvalidSlug, name)
	}
	if !permalink.URLSafe(plan.Slug) {
		plan.Warnings = append(plan.Warnings, fmt.Sprintf("slug %q is not URL safe", plan.Slug))
	}
	plan.Target = permalink.TargetPath(m.Config.Dest, plan.Date, plan.Slug)
	if !within(m.Config.Dest, plan.Target) {
		return nil, fmt.Errorf("%w: %q leaves %s", ErrInvalidSlug, plan.Slug, m.Config.Dest)
	}

	if fields.Get("slug") == "" {
		fields.SetString("slug", plan.Slug)
	}
	if !fields.Has("date") {
		fields.Set("date", plan.Date.String())
	}
	if !fields.Has("lastmod") {
		fields.Set("lastmod", m.lastmod(fields.Get("date"), plan.Date))
	}
	if title != "" && !fields.Has("description") && !fields.Has("keywords") {
		plan.Language = m.language(title)
		seo := placeholders(plan.Language, title)
		fields.SetString("description", seo.description)
		fields.SetList("keywords", seo.keywords)
	}
	if !fields.Has("reading_time") {
		fields.SetBool("reading_time", true)
	}
	if !fields.Has("toc") {
		fields.SetBool("toc", true)
	}

	content, err := frontmatter.Compose(fields, rec.Body)
	if err != nil {
		return nil, err
	}
	plan.Content = content
	return plan, nil
}

// within reports whether path stays under root once both are cleaned.
func within(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// backupPath picks a name under the backup directory that does not replace an
// earlier backup: name.md, then name-1.md, name-2.md and so on.
func (m *Migrator) backupPath(name string) string {
	candidate := filepath.Join(m.Config.BackupDir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; m.storage.HasFile(candidate); i++ {
		candidate = filepath.Join(m.Config.BackupDir, fmt.Sprintf("%s-%d%s", stem, i, ext))
	}
	return candidate
}

// lastmod keeps a date value that already has a time part, otherwise appends
// the configured default time to the publication date.
func (m *Migrator) lastmod(dateValue string, d permalink.PubDate) string {
	if strings.Contains(dateValue, "T") {
		return dateValue
	}
	return d.String() + "T" + m.Config.DefaultTime
}

func (m *Migrator) language(title string) lang.Language {
	if m.Detector == nil {
		return lang.Chinese
	}
	if l := m.Detector.Detect(title); l != lang.Unknown {
		return l
	}
	return lang.Chinese
}

type seoText struct {
	description string
	keywords    []string
}

func placeholders(l lang.Language, title string) seoText {
	if l == lang.English {
		return seoText{
			description: title + ": practical development tips and solutions from the tech blog",
			keywords:    []string{"tech blog", "developer tools", "programming tips"},
		}
	}
	return seoText{
		description: "从技术博客" + title + "，提供实用的开发技巧和解决方案",
		keywords:    []string{"技术博客", "开发者工具", "编程技巧"},
	}
}
