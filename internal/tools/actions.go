package tools

import (
	"fmt"

	"github.com/dtnitsch/blogkit/internal/common"
	"github.com/dtnitsch/blogkit/models"
	"github.com/dtnitsch/blogkit/pkg/db"
	"github.com/dtnitsch/blogkit/pkg/enricher"
	"github.com/dtnitsch/blogkit/pkg/extractor"
	"github.com/dtnitsch/blogkit/pkg/manifest"
	"github.com/dtnitsch/blogkit/pkg/report"
	"github.com/dtnitsch/blogkit/pkg/scan"
	"github.com/dtnitsch/blogkit/pkg/storage"
	"github.com/urfave/cli/v2"
)

const htmlTitle = "Related Tools in Blog Articles"

func ToolsAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	// Initialize runtime config from CLI flags
	config := models.ToolsConfig{
		ContentDir: c.String("content-dir"),
		Output:     c.String("output"),
		RulesPath:  c.String("rules"),
		Dedupe:     c.Bool("dedupe"),
		HTML:       c.Bool("html"),
		Summary:    c.Bool("summary"),
	}

	if err := common.RequireDir(config.ContentDir, "content"); err != nil {
		return err
	}

	rules := enricher.DefaultRules()
	if config.RulesPath != "" {
		var err error
		rules, err = enricher.LoadRules(config.RulesPath)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: invalid rules file: %v", err), 2)
		}
		logger.Info("Loaded enrichment rules", "path", config.RulesPath,
			"functions", len(rules.Functions), "categories", len(rules.Categories))
	}

	history := common.StartRecorder(c, logger, "tools", config.ContentDir, false)

	scanner := scan.New(extractor.Default(), rules)
	outcome, err := scanner.Scan(config.ContentDir)
	if err != nil {
		history.Finish(db.RunStats{Failures: 1})
		return fmt.Errorf("scan failed: %w", err)
	}

	results := make([]manifest.ArticleResult, 0, len(outcome.Results))
	for _, r := range outcome.Results {
		if r.Error != nil {
			logger.Error("failed to scan article", "path", r.Path, "error_type", r.ErrorType, "error", r.Error)
		}
		results = append(results, manifest.ArticleResult{
			Path:      r.Path,
			Mentions:  r.Mentions,
			Error:     r.Error,
			ErrorType: r.ErrorType,
		})
	}

	mentions := outcome.Mentions
	if config.Dedupe {
		before := len(mentions)
		mentions = extractor.Dedupe(mentions)
		logger.Info("Deduplicated mentions", "before", before, "after", len(mentions))
	}

	s := &storage.Storage{}
	rep := report.Build(mentions)
	markdown := rep.Markdown()
	if err := s.SaveFile(config.Output, []byte(markdown)); err != nil {
		history.Finish(db.RunStats{FilesSeen: len(outcome.Results), Failures: len(outcome.Failed()) + 1})
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("Report written to %s (%d tools in %d categories)\n", config.Output, rep.Total, len(rep.Categories))

	if config.HTML {
		htmlPath := report.HTMLPath(config.Output)
		html, err := report.RenderHTML(htmlTitle, markdown)
		if err == nil {
			err = s.SaveFile(htmlPath, html)
		}
		if err != nil {
			logger.Error("failed to write HTML report", "path", htmlPath, "error", err)
		} else {
			fmt.Printf("HTML report written to %s\n", htmlPath)
		}
	}

	history.Mentions(mentions)

	if config.Summary {
		manifestPath, err := manifest.GenerateSummary(results, rep, manifest.Options{
			RunID:      history.RunID(),
			ContentDir: config.ContentDir,
			ReportPath: config.Output,
		}, s)
		if err != nil {
			logger.Error("failed to write summary manifest", "error", err)
		} else {
			logger.Info("Summary manifest written", "path", manifestPath)
		}
	}

	history.Finish(db.RunStats{
		FilesSeen: len(outcome.Results),
		Failures:  len(outcome.Failed()),
	})
	return nil
}
