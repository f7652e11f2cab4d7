package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/gsea/gsea/internal/config"
)

// Result is the outcome of one task.
type Result struct {
	Task
	InSize  int64
	OutSize int64
	Err     error
}

// Report summarizes a run.
type Report struct {
	Results  []Result // in task order
	Failed   int
	BytesIn  int64
	BytesOut int64
}

// Err returns an error describing the failed files, or nil if every file
// succeeded.
func (r Report) Err() error {
	if r.Failed == 0 {
		return nil
	}
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Input, res.Err))
		}
	}
	return fmt.Errorf("%d of %d files failed: %w", r.Failed, len(r.Results), errors.Join(errs...))
}

// Run processes tasks with at most cfg.Workers files in flight. A file
// that fails is logged and recorded in the report; it does not stop the
// others. The returned error is non-nil only if the run could not start
// or ctx was canceled.
func Run(ctx context.Context, cfg config.Config, tasks []Task, logger *slog.Logger) (Report, error) {
	p, err := NewProcessor(cfg)
	if err != nil {
		return Report{}, err
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(tasks))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			results[i] = p.processFile(ctx, task, logger)
			return nil
		})
	}
	g.Wait()

	report := Report{Results: results}
	for _, r := range results {
		if r.Err != nil {
			report.Failed++
			continue
		}
		report.BytesIn += r.InSize
		report.BytesOut += r.OutSize
	}

	logger.Info("run complete",
		"files", len(results),
		"failed", report.Failed,
		"in", humanize.Bytes(uint64(report.BytesIn)),
		"out", humanize.Bytes(uint64(report.BytesOut)),
	)
	return report, ctx.Err()
}

func (p *Processor) processFile(ctx context.Context, task Task, logger *slog.Logger) Result {
	result := Result{Task: task}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	start := time.Now()
	data, err := os.ReadFile(task.Input)
	if err != nil {
		result.Err = err
		logger.Error("skipping file", "input", task.Input, "error", err)
		return result
	}
	result.InSize = int64(len(data))

	out, err := p.Process(ctx, data)
	if err == nil {
		err = os.WriteFile(task.Output, out, 0o600)
	}
	if err != nil {
		result.Err = err
		logger.Error("skipping file", "input", task.Input, "error", err)
		return result
	}
	result.OutSize = int64(len(out))

	logger.Debug("processed file",
		"input", task.Input,
		"output", task.Output,
		"in", humanize.Bytes(uint64(result.InSize)),
		"out", humanize.Bytes(uint64(result.OutSize)),
		"duration", time.Since(start),
	)
	return result
}
