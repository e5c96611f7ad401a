package preflight

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"lumen/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Runtime directory", cfg.Paths.RuntimeDir))

	if file := strings.TrimSpace(cfg.Logging.File); file != "" {
		results = append(results, CheckDirectoryAccess("Log directory", filepath.Dir(file)))
	}

	results = append(results, CheckBindAvailable(ctx, cfg.API.Bind))
	return results
}

// Err folds failed results into a single error, or nil when all passed.
func Err(results []Result) error {
	var failures []string
	for _, r := range results {
		if !r.Passed {
			failures = append(failures, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return errors.New("preflight failed: " + strings.Join(failures, "; "))
}
