package migrate

import (
	"errors"
	"fmt"

	"github.com/dtnitsch/blogkit/internal/common"
	"github.com/dtnitsch/blogkit/models"
	"github.com/dtnitsch/blogkit/pkg/db"
	"github.com/dtnitsch/blogkit/pkg/lang"
	migratepkg "github.com/dtnitsch/blogkit/pkg/migrate"
	"github.com/urfave/cli/v2"
)

func MigrateAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	config := models.MigrateConfig{
		Source:      c.String("source"),
		Dest:        c.String("dest"),
		BackupDir:   c.String("backup-dir"),
		DefaultTime: c.String("default-time"),
		Overwrite:   c.Bool("overwrite"),
		DryRun:      c.Bool("dry-run"),
	}
	if err := common.RequireDir(config.Source, "source"); err != nil {
		return err
	}

	history := common.StartRecorder(c, logger, "migrate", config.Source, config.DryRun)

	m := migratepkg.New(config, lang.NewDetector())
	logger.Info("Migrating posts", "source", m.Config.Source, "dest", m.Config.Dest,
		"backup", m.Config.BackupDir, "dry_run", config.DryRun)

	results, err := m.Run()
	if err != nil {
		history.Finish(db.RunStats{Failures: 1})
		return fmt.Errorf("migrate failed: %w", err)
	}

	stats := db.RunStats{FilesSeen: len(results)}
	for _, res := range results {
		ev := db.FileEvent{Path: res.Path, Action: string(res.Action), Target: res.Target}
		switch res.Action {
		case migratepkg.ActionMigrated:
			stats.FilesChanged++
		case migratepkg.ActionSkipped:
			ev.Error = res.Error.Error()
			if errors.Is(res.Error, migratepkg.ErrTargetExists) {
				logger.Warn("target exists, use --overwrite to replace it", "path", res.Path, "target", res.Target)
			}
		default:
			stats.Failures++
			ev.Error = res.Error.Error()
			logger.Error("failed to migrate file", "path", res.Path, "error_type", res.ErrorType, "error", res.Error)
		}
		history.Event(ev)
	}

	history.Finish(stats)
	return nil
}
