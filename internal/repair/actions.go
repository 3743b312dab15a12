package repair

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/blogkit/internal/common"
	"github.com/dtnitsch/blogkit/models"
	"github.com/dtnitsch/blogkit/pkg/db"
	repairpkg "github.com/dtnitsch/blogkit/pkg/repair"
	"github.com/urfave/cli/v2"
)

func RepairAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	config := models.RepairConfig{
		ContentDir: c.String("content-dir"),
		DryRun:     c.Bool("dry-run"),
	}
	if err := common.RequireDir(config.ContentDir, "content"); err != nil {
		return err
	}

	history := common.StartRecorder(c, logger, "repair", config.ContentDir, config.DryRun)

	r := repairpkg.New(config.DryRun)
	results, err := r.Run(config.ContentDir)
	if err != nil {
		history.Finish(db.RunStats{Failures: 1})
		return fmt.Errorf("repair failed: %w", err)
	}

	stats := db.RunStats{FilesSeen: len(results)}
	for _, res := range results {
		ev := db.FileEvent{Path: res.Path, Action: joinActions(res.Actions)}
		if res.Warning != "" {
			logger.Warn("file left without slug", "path", res.Path, "reason", res.Warning)
		}
		switch {
		case res.Error != nil:
			stats.Failures++
			ev.Error = res.Error.Error()
			logger.Error("failed to repair file", "path", res.Path, "error_type", res.ErrorType, "error", res.Error)
		case res.Changed():
			stats.FilesChanged++
			if res.Dropped > 0 {
				logger.Warn("dropped unparseable frontmatter lines", "path", res.Path, "lines", res.Dropped)
			}
		}
		history.Event(ev)
	}

	history.Finish(stats)
	return nil
}

func joinActions(actions []repairpkg.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, ",")
}
