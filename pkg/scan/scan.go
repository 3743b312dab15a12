// Package scan runs the tool extraction pipeline over a content tree.
package scan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/blogkit/models"
	"github.com/dtnitsch/blogkit/pkg/enricher"
	"github.com/dtnitsch/blogkit/pkg/extractor"
	"github.com/dtnitsch/blogkit/pkg/frontmatter"
	"github.com/dtnitsch/blogkit/pkg/storage"
	"github.com/dtnitsch/blogkit/pkg/walker"
)

// Result is the outcome for one article.
type Result struct {
	Path      string
	Title     string
	Mentions  int
	Error     error
	ErrorType string
}

// Outcome collects everything a scan produced.
type Outcome struct {
	Mentions []models.ToolMention
	Results  []Result
}

// Failed returns the results that carry an error.
func (o *Outcome) Failed() []Result {
	var failed []Result
	for _, r := range o.Results {
		if r.Error != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// ArticlesWithTools counts results with at least one mention.
func (o *Outcome) ArticlesWithTools() int {
	n := 0
	for _, r := range o.Results {
		if r.Mentions > 0 {
			n++
		}
	}
	return n
}

type Scanner struct {
	Extractor *extractor.Extractor
	Rules     enricher.Rules
	// SkipDirs are directory names the walk does not enter.
	SkipDirs []string
	// Out receives progress lines; nil means stdout.
	Out io.Writer

	storage storage.Storage
}

func New(ex *extractor.Extractor, rules enricher.Rules) *Scanner {
	return &Scanner{
		Extractor: ex,
		Rules:     rules,
		SkipDirs:  []string{"backup"},
	}
}

func (s *Scanner) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

// Scan walks root recursively. Per-file failures are recorded in the outcome
// and do not stop the walk; only an unreadable root is an error.
func (s *Scanner) Scan(root string) (*Outcome, error) {
	files, err := walker.Markdown(root, walker.Options{Recursive: true, SkipDirs: s.SkipDirs})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{}
	for _, f := range files {
		mentions, result := s.ScanFile(f)
		outcome.Results = append(outcome.Results, result)
		if result.Error != nil {
			fmt.Fprintf(s.out(), "failed %s: %v\n", f.Rel, result.Error)
			continue
		}
		if len(mentions) > 0 {
			fmt.Fprintf(s.out(), "found %d tools in %s\n", len(mentions), result.Title)
		}
		outcome.Mentions = append(outcome.Mentions, mentions...)
	}

	fmt.Fprintf(s.out(), "scanned %d articles, %d with tools, %d tools total\n",
		len(outcome.Results), outcome.ArticlesWithTools(), len(outcome.Mentions))
	return outcome, nil
}

// ScanFile reads one article and returns its enriched mentions.
func (s *Scanner) ScanFile(f walker.File) ([]models.ToolMention, Result) {
	result := Result{Path: f.Rel}

	data, err := s.storage.ReadFile(f.Path)
	if err != nil {
		result.Error = err
		result.ErrorType = "read_error"
		return nil, result
	}

	doc := Parse(f.Rel, string(data))
	title := ArticleTitle(doc)
	slug := ArticleSlug(doc)
	result.Title = title

	mentions := enricher.EnrichAll(s.Extractor.Extract(doc.Body), s.Rules)
	for i := range mentions {
		mentions[i].ArticleTitle = title
		mentions[i].ArticleSlug = slug
		mentions[i].FilePath = f.Rel
	}
	result.Mentions = len(mentions)
	return mentions, result
}

// Parse builds a Document from raw text.
func Parse(path, raw string) models.Document {
	meta, body := frontmatter.Read(raw)
	return models.Document{Path: path, Raw: raw, Metadata: meta, Body: body}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ArticleTitle is the title field, or the file stem.
func ArticleTitle(doc models.Document) string {
	if t := doc.Metadata.String("title"); t != "" {
		return t
	}
	return stem(doc.Path)
}

// ArticleSlug is the slug field, or the file stem.
func ArticleSlug(doc models.Document) string {
	if s := doc.Metadata.String("slug"); s != "" {
		return s
	}
	return stem(doc.Path)
}
