package main

import (
	"log/slog"

	"github.com/dkoosis/chasten/internal/logging"
)

// initLogging applies --debug-level and --debug-dest. Console logs go to the
// command's stderr.
func (a *app) initLogging(level, dest string) (func() error, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, usageError{err}
	}
	d, err := logging.ParseDestination(dest)
	if err != nil {
		return nil, usageError{err}
	}
	closer, err := logging.Init(lvl, d, a.stderr)
	if err != nil {
		return nil, err
	}
	slog.Debug("logging initialized", slog.String("level", logging.LevelName(lvl)), slog.String("destination", d.String()))
	return closer, nil
}
