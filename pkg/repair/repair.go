// Package repair rebuilds broken frontmatter blocks and adds missing slugs.
package repair

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dtnitsch/blogkit/pkg/frontmatter"
	"github.com/dtnitsch/blogkit/pkg/permalink"
	"github.com/dtnitsch/blogkit/pkg/storage"
	"github.com/dtnitsch/blogkit/pkg/walker"
)

// Action describes what happened to a file.
type Action string

const (
	ActionUnchanged Action = "unchanged"
	ActionRepaired  Action = "repaired"
	ActionSlugAdded Action = "slug_added"
	ActionFailed    Action = "failed"
)

// Result is the outcome for one file.
type Result struct {
	Path      string
	Actions   []Action
	Slug      string // set when a slug was added
	Warning   string
	Problem   error // what made the block malformed, if anything
	Dropped   int
	Error     error
	ErrorType string
}

// Changed reports whether the file content was (or in a dry run would be)
// rewritten.
func (r Result) Changed() bool {
	for _, a := range r.Actions {
		if a == ActionRepaired || a == ActionSlugAdded {
			return true
		}
	}
	return false
}

type Repairer struct {
	DryRun   bool
	SkipDirs []string
	Out      io.Writer

	storage storage.Storage
}

func New(dryRun bool) *Repairer {
	return &Repairer{DryRun: dryRun, SkipDirs: []string{"backup"}}
}

func (r *Repairer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Run repairs every Markdown file under root. Per-file failures are recorded
// and the walk continues.
func (r *Repairer) Run(root string) ([]Result, error) {
	files, err := walker.Markdown(root, walker.Options{Recursive: true, SkipDirs: r.SkipDirs})
	if err != nil {
		return nil, err
	}

	var results []Result
	changed := 0
	for _, f := range files {
		res := r.RepairFile(f)
		results = append(results, res)
		if res.Warning != "" {
			fmt.Fprintf(r.out(), "warning %s: %s\n", f.Rel, res.Warning)
		}
		switch {
		case res.Error != nil:
			fmt.Fprintf(r.out(), "failed %s: %v\n", f.Rel, res.Error)
		case res.Changed():
			changed++
			for _, a := range res.Actions {
				switch a {
				case ActionRepaired:
					fmt.Fprintf(r.out(), "repaired frontmatter in %s (%v)\n", f.Rel, res.Problem)
				case ActionSlugAdded:
					fmt.Fprintf(r.out(), "added slug %q to %s\n", res.Slug, f.Rel)
				}
			}
		}
	}

	verb := "changed"
	if r.DryRun {
		verb = "would change"
	}
	fmt.Fprintf(r.out(), "checked %d files, %s %d\n", len(files), verb, changed)
	return results, nil
}

// RepairFile checks one file and rewrites it when needed.
func (r *Repairer) RepairFile(f walker.File) Result {
	data, err := r.storage.ReadFile(f.Path)
	if err != nil {
		return Result{Path: f.Rel, Actions: []Action{ActionFailed}, Error: err, ErrorType: "read_error"}
	}

	fixed, res := Fix(f.Path, string(data))
	res.Path = f.Rel
	if !res.Changed() || r.DryRun {
		return res
	}

	if err := r.storage.SaveFile(f.Path, []byte(fixed)); err != nil {
		res.Error = err
		res.ErrorType = "save_error"
		res.Actions = append(res.Actions, ActionFailed)
	}
	return res
}

// Fix returns the repaired text of a document at path. The text is returned
// unchanged when its block is well formed and already carries a slug, so
// running Fix on its own output is a no-op.
func Fix(path, text string) (string, Result) {
	res := Result{Path: path}
	rec := frontmatter.Recover(text)
	res.Dropped = rec.Dropped

	if rec.Problem != nil && !errors.Is(rec.Problem, frontmatter.ErrMissing) {
		res.Problem = rec.Problem
		res.Actions = append(res.Actions, ActionRepaired)
	}
	if !rec.Fields.Has("slug") || rec.Fields.Get("slug") == "" {
		if slug := permalink.FileSlug(path); slug != "" {
			res.Slug = slug
			rec.Fields.SetString("slug", slug)
			res.Actions = append(res.Actions, ActionSlugAdded)
		} else {
			res.Warning = "no slug: file name has no usable characters"
		}
	}

	if !res.Changed() {
		res.Actions = []Action{ActionUnchanged}
		return text, res
	}

	out, err := frontmatter.Compose(rec.Fields, rec.Body)
	if err != nil {
		res.Error = err
		res.ErrorType = "encode_error"
		res.Actions = []Action{ActionFailed}
		return text, res
	}
	return out, res
}
