// Package common holds helpers shared by the command actions.
package common

import (
	"log/slog"
	"os"

	"github.com/dtnitsch/blogkit/pkg/storage"
	"github.com/urfave/cli/v2"
)

// NewLogger returns the JSON stderr logger every command uses. --quiet raises
// the level to error.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// RequireDir exits with code 2 when dir is not a directory.
func RequireDir(dir, what string) error {
	s := &storage.Storage{}
	if !s.IsDir(dir) {
		return cli.Exit("Error: "+what+" directory not found: "+dir, 2)
	}
	return nil
}
