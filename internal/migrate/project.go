package migrate

import (
	"context"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// FileResult is one file's migration outcome, folded into a Report.
type FileResult struct {
	Path           string
	Convertibility Convertibility
	Result         ConversionResult
	Err            error
	Metrics        FileMetrics
}

// FileMetrics holds the optional before/after sizing spec §4.6
// "Aggregate a report" names, used to compute a file's advantage ratio.
type FileMetrics struct {
	SourceTokens, SourceLines, SourceChars int
	OutputTokens, OutputLines, OutputChars int
}

// AdvantageRatio is the token ratio of source over output (spec §4.6);
// a ratio above 1 means the Calor output is more compact than the
// source it was migrated from.
func (m FileMetrics) AdvantageRatio() float64 {
	if m.OutputTokens == 0 {
		return 0
	}
	return float64(m.SourceTokens) / float64(m.OutputTokens)
}

// Report aggregates a whole project migration run (spec §4.6
// "Aggregate a report").
type Report struct {
	Successful, Partial, Failed, Skipped int
	TotalIssues                          int
	Files                                []FileResult
}

// AggregateAdvantage averages each successfully-migrated file's
// advantage ratio.
func (r Report) AggregateAdvantage() float64 {
	var sum float64
	var n int
	for _, f := range r.Files {
		if f.Err != nil || f.Convertibility == Skip {
			continue
		}
		sum += f.Metrics.AdvantageRatio()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AnyFailed reports whether at least one file failed conversion — the
// signal the outer driver's exit status reflects (spec §4.6 "Failure
// semantics").
func (r Report) AnyFailed() bool {
	return r.Failed > 0
}

// Options configures a project-wide migration run.
type Options struct {
	// Concurrency caps in-flight workers; 0 defaults to the logical
	// processor count (spec §4.6 "default = logical-processor count").
	Concurrency int
	Convert     ConvertOptions
}

// RunProject discovers, plans, and converts every candidate file under
// root with a bounded-parallelism worker pool, isolating a single
// file's failure from the rest of the project (spec §4.6 "Project
// migration" / §5 "Project migration is the only parallel stage").
// Project-wide parallel migration is grounded on the worker-pool shape
// golang.org/x/sync/errgroup + semaphore.Weighted gives: a semaphore
// caps concurrent workers, errgroup collects the first error without
// aborting sibling goroutines already in flight.
func RunProject(ctx context.Context, root string, opts Options) (*Report, error) {
	plan, err := BuildPlan(root)
	if err != nil {
		return nil, err
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	sem := semaphore.NewWeighted(int64(concurrency))
	g, gctx := errgroup.WithContext(ctx)

	results := make([]FileResult, len(plan))
	var mu sync.Mutex // guards the append-only report builder fields only

	for i, entry := range plan {
		i, entry := i, entry
		if entry.Convertibility == Skip {
			results[i] = FileResult{Path: entry.Path, Convertibility: Skip}
			continue
		}

		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			result := migrateOneFile(entry, opts.Convert)
			mu.Lock()
			results[i] = result
			mu.Unlock()
			return nil
		})
	}

	// Cancellation propagated to workers; in-flight tasks finish their
	// current file and then stop (spec §5 "Cancellation") — errgroup's
	// derived context already does this the moment one worker errors or
	// the caller cancels ctx.
	if err := g.Wait(); err != nil && err != context.Canceled {
		return nil, err
	}

	return buildReport(results), nil
}

func migrateOneFile(entry PlanEntry, opts ConvertOptions) FileResult {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return FileResult{Path: entry.Path, Convertibility: entry.Convertibility, Err: err}
	}

	result := Convert(entry.Path, string(data), opts)
	result.Issues = dedupeAmbiguous(result.Issues)

	metrics := FileMetrics{
		SourceChars: len(data),
		SourceLines: countLines(string(data)),
		SourceTokens: approxTokenCount(string(data)),
		OutputChars:  len(result.Output),
		OutputLines:  countLines(result.Output),
		OutputTokens: approxTokenCount(result.Output),
	}

	var fileErr error
	for _, issue := range result.Issues {
		if issue.Severity == Error {
			fileErr = fileConversionError(issue.Message)
			break
		}
	}

	return FileResult{Path: entry.Path, Convertibility: entry.Convertibility, Result: result, Err: fileErr, Metrics: metrics}
}

func buildReport(results []FileResult) *Report {
	report := &Report{Files: results}
	for _, r := range results {
		switch {
		case r.Convertibility == Skip:
			report.Skipped++
		case r.Err != nil:
			report.Failed++
		case r.Convertibility == Partial:
			report.Partial++
		default:
			report.Successful++
		}
		report.TotalIssues += len(r.Result.Issues)
	}
	return report
}

func countLines(s string) int {
	n := 1
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}

// approxTokenCount is a whitespace/punctuation-boundary approximation,
// adequate for the advantage-ratio comparison spec §4.6 calls for
// without pulling in a full lexer for either source language.
func approxTokenCount(s string) int {
	count := 0
	inToken := false
	for _, c := range s {
		isBoundary := c == ' ' || c == '\t' || c == '\n' || c == '(' || c == ')' ||
			c == '{' || c == '}' || c == ';' || c == ','
		if isBoundary {
			inToken = false
			continue
		}
		if !inToken {
			count++
			inToken = true
		}
	}
	return count
}

type fileConversionError string

func (e fileConversionError) Error() string { return string(e) }
