package common

import (
	"log/slog"

	"github.com/dtnitsch/blogkit/models"
	"github.com/dtnitsch/blogkit/pkg/db"
	"github.com/urfave/cli/v2"
)

// OpenDB opens the history database named by --db, or the default one next to
// the binary.
func OpenDB(c *cli.Context) (*db.DB, error) {
	if path := c.String("db"); path != "" {
		return db.OpenPath(path)
	}
	return db.Open()
}

// Recorder writes run history. History is best effort: failures are logged and
// never stop a run. A Recorder with no database does nothing.
type Recorder struct {
	database *db.DB
	logger   *slog.Logger
	runID    string
}

// StartRecorder opens the history database and starts a run, unless
// --no-history is set.
func StartRecorder(c *cli.Context, logger *slog.Logger, command, root string, dryRun bool) *Recorder {
	rec := &Recorder{logger: logger}
	if c.Bool("no-history") {
		return rec
	}

	database, err := OpenDB(c)
	if err != nil {
		logger.Error("failed to open history database", "error", err)
		return rec
	}
	runID, err := database.StartRun(command, root, dryRun)
	if err != nil {
		logger.Error("failed to record run", "error", err)
		_ = database.Close()
		return rec
	}

	rec.database = database
	rec.runID = runID
	logger.Info("Run started", "run_id", runID, "command", command, "root", root)
	return rec
}

// RunID is empty when history is off.
func (r *Recorder) RunID() string {
	return r.runID
}

func (r *Recorder) Mentions(mentions []models.ToolMention) {
	if r.database == nil {
		return
	}
	if err := r.database.InsertMentions(r.runID, mentions); err != nil {
		r.logger.Error("failed to record mentions", "error", err)
	}
}

func (r *Recorder) Event(ev db.FileEvent) {
	if r.database == nil {
		return
	}
	if err := r.database.InsertFileEvent(r.runID, ev); err != nil {
		r.logger.Error("failed to record file event", "path", ev.Path, "error", err)
	}
}

// Finish stamps the run totals and closes the database.
func (r *Recorder) Finish(stats db.RunStats) {
	if r.database == nil {
		return
	}
	if err := r.database.FinishRun(r.runID, stats); err != nil {
		r.logger.Error("failed to finish run", "error", err)
	}
	_ = r.database.Close()
	r.database = nil
}
