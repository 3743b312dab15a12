// Package walker discovers Markdown files under a content root.
package walker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/dtnitsch/blogkit/pkg/storage"
)

// IgnoreFile is read from the root when present; it uses gitignore syntax.
const IgnoreFile = ".blogignore"

// ErrNotDir is returned when the root is missing or not a directory.
var ErrNotDir = errors.New("content directory does not exist")

// Options controls discovery.
type Options struct {
	// Recursive descends into sub-directories; otherwise only the root's own
	// files are returned.
	Recursive bool
	// SkipDirs are directory names never entered (e.g. "backup").
	SkipDirs []string
}

// File is a discovered Markdown file.
type File struct {
	Path string // absolute or root-joined path
	Rel  string // relative to the root, slash separated
}

// Markdown returns the *.md files under root in lexical order of Rel. Hidden
// files and directories are skipped.
func Markdown(root string, opts Options) ([]File, error) {
	s := &storage.Storage{}
	if !s.IsDir(root) {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, root)
	}

	skip := make(map[string]struct{}, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		skip[d] = struct{}{}
	}
	gi := loadIgnore(root)

	var files []File
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == root {
				return nil
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			if _, ok := skip[name]; ok || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(name), ".md") {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		files = append(files, File{Path: path, Rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Rel < files[j].Rel
	})
	return files, nil
}

func loadIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, IgnoreFile))
	if err != nil {
		return nil
	}
	return gi
}
