// Package batch runs every merge described by a configuration file.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/AndreyAkinshin/junitmerge/internal/config"
	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/locate"
	"github.com/AndreyAkinshin/junitmerge/internal/merge"
	"github.com/AndreyAkinshin/junitmerge/internal/project"
	"github.com/AndreyAkinshin/junitmerge/internal/report"
)

// JobResult is the outcome of one configured report.
type JobResult struct {
	Name   string
	Output string        // Absolute path of the written report
	Result *merge.Result // Nil when the job failed or never ran
	Err    error         // Set when the job failed
}

// Options tunes a batch run.
type Options struct {
	// Parallelism overrides the configured job limit when positive.
	Parallelism int
	// Only restricts the run to the named reports. Empty runs all of them.
	Only   []string
	Logger *slog.Logger
}

// Run merges every configured report of proj. Jobs run concurrently up to
// the parallelism limit, each with its own merge engine. The first failure
// cancels jobs that have not started yet and is returned alongside the
// results, which stay in configuration order.
func Run(ctx context.Context, proj *project.Project, opts Options) ([]JobResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reports, err := selectReports(proj.Config.Reports, opts.Only)
	if err != nil {
		return nil, err
	}

	limit := proj.Config.Parallelism
	if opts.Parallelism > 0 {
		limit = opts.Parallelism
	}
	if limit < 1 {
		limit = config.DefaultParallelism
	}

	results := make([]JobResult, len(reports))
	for i, r := range reports {
		results[i] = JobResult{Name: r.Name, Output: proj.Resolve(r.Output)}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, r := range reports {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			res, err := runJob(proj, r, logger.With("report", r.Name))
			if err != nil {
				results[i].Err = err
				return fmt.Errorf("report %q: %w", r.Name, err)
			}
			results[i].Result = res
			return nil
		})
	}

	return results, g.Wait()
}

// runJob performs locate, merge and write for a single report.
func runJob(proj *project.Project, r config.ReportConfig, logger *slog.Logger) (*merge.Result, error) {
	paths, err := inputs(proj, r)
	if err != nil {
		return nil, err
	}
	logger.Debug("located reports", "count", len(paths))

	output := proj.Resolve(r.Output)
	engine := merge.New(merge.WithLogger(logger))
	res, err := engine.Run(paths, filepath.Base(output))
	if err != nil {
		return nil, err
	}

	if err := report.Write(output, res.Document, r.ShouldCreateOutputDir()); err != nil {
		return nil, err
	}
	logger.Info("wrote merged report", "path", output)

	return res, nil
}

func inputs(proj *project.Project, r config.ReportConfig) ([]string, error) {
	if len(r.Files) > 0 {
		paths := make([]string, len(r.Files))
		for i, f := range r.Files {
			paths[i] = proj.Resolve(f)
		}
		return paths, nil
	}

	loc := locate.New(
		locate.WithExclude(r.Exclude...),
		locate.WithIgnore(proj.Resolve(r.Output)),
		locate.WithSorted(r.IsSorted()),
	)
	return loc.Locate(proj.Resolve(r.Dir), r.IsRecursive())
}

func selectReports(all []config.ReportConfig, only []string) ([]config.ReportConfig, error) {
	if len(only) == 0 {
		return all, nil
	}

	byName := make(map[string]config.ReportConfig, len(all))
	for _, r := range all {
		byName[r.Name] = r
	}

	selected := make([]config.ReportConfig, 0, len(only))
	for _, name := range only {
		r, ok := byName[name]
		if !ok {
			return nil, errors.Configf("report %q not found", name)
		}
		selected = append(selected, r)
	}
	return selected, nil
}
