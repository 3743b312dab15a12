package manifest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/blogkit/pkg/report"
	"github.com/dtnitsch/blogkit/pkg/storage"
)

// ArticleResult is the scan outcome for one article.
// This is passed from the tools command to avoid a dependency on pkg/scan.
type ArticleResult struct {
	Path      string
	Mentions  int
	Error     error
	ErrorType string
}

// Options identify the run a manifest describes.
type Options struct {
	RunID      string
	ContentDir string
	ReportPath string
	Now        time.Time
}

// Build aggregates article results and the finished report.
func Build(results []ArticleResult, r report.Report, opts Options) SummaryManifest {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	m := SummaryManifest{
		GeneratedAt:    now.Format(time.RFC3339),
		RunID:          opts.RunID,
		ContentDir:     opts.ContentDir,
		Report:         opts.ReportPath,
		TotalTools:     r.Total,
		CategoryCounts: r.CategoryTotals(),
		TopCategories:  report.TopCounts(r.CategoryCounts, 5),
		TopArticles:    report.TopCounts(r.ArticleCounts, 5),
	}

	for _, res := range results {
		m.ArticlesScanned++
		if res.Error != nil {
			m.Failed = append(m.Failed, FailedFile{
				Path:         res.Path,
				ErrorType:    res.ErrorType,
				ErrorMessage: res.Error.Error(),
			})
			continue
		}
		if res.Mentions > 0 {
			m.ArticlesWithTools++
		}
	}
	return m
}

// SummaryPath is "<report path without .md>.summary.json".
func SummaryPath(reportPath string) string {
	return strings.TrimSuffix(reportPath, ".md") + ".summary.json"
}

// GenerateSummary builds the manifest and saves it next to the report.
// Returns the path to the generated manifest file and any error.
func GenerateSummary(results []ArticleResult, r report.Report, opts Options, s *storage.Storage) (string, error) {
	manifest := Build(results, r, opts)

	manifestPath := SummaryPath(opts.ReportPath)
	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	if err := s.SaveFile(manifestPath, manifestData); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}

	return manifestPath, nil
}
