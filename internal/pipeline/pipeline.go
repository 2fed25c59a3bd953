// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one search-and-export pass: search PubMed, fetch
// details for every identifier in order, classify authors and write the
// records out.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/pubmed-papers/internal/classify"
	"github.com/pdiddy/pubmed-papers/internal/export"
	"github.com/pdiddy/pubmed-papers/internal/httputil"
	"github.com/pdiddy/pubmed-papers/internal/pubmed"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// ErrSearchFailed marks a failure of the initial search request. Nothing
// can be exported without it, so callers treat it as fatal.
var ErrSearchFailed = errors.New("search failed")

// Source issues the two PubMed request kinds a run needs.
type Source interface {
	Search(ctx context.Context, term string) ([]byte, error)
	Detail(ctx context.Context, id string) ([]byte, error)
}

// Summary holds the records of a run and per-record outcome counts.
type Summary struct {
	Papers  []types.Paper
	Fetched int
	Failed  int
}

// Total returns the number of identifiers processed.
func (s Summary) Total() int {
	return s.Fetched + s.Failed
}

// Runner executes runs. Per-record diagnostics go to Out.
type Runner struct {
	Source     Source
	Classifier classify.Classifier

	// RequestDelay is waited before every detail request after the first.
	RequestDelay time.Duration

	Debug bool
	Out   io.Writer
}

// Collect searches for query and returns one record per identifier in
// search order. A failed detail fetch or parse yields an empty record and a
// diagnostic line; only a failed search (ErrSearchFailed) or a cancelled
// context aborts the run.
func (r *Runner) Collect(ctx context.Context, query string) (Summary, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	classifier := r.Classifier
	if classifier == nil {
		classifier = classify.None{}
	}

	body, err := r.Source.Search(ctx, query)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	ids, err := pubmed.ExtractIDs(body)
	if err != nil {
		fmt.Fprintf(out, "warning: could not parse search response: %v\n", err)
		ids = nil
	}
	if r.Debug {
		fmt.Fprintf(out, "Found %d paper IDs\n", len(ids))
	}

	summary := Summary{Papers: make([]types.Paper, 0, len(ids))}
	for i, id := range ids {
		if i > 0 && r.RequestDelay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(r.RequestDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		paper, err := r.fetchPaper(ctx, id, out)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return summary, ctxErr
			}
			summary.Failed++
			summary.Papers = append(summary.Papers, types.Paper{})
			continue
		}

		classifier.Classify(&paper)
		summary.Fetched++
		summary.Papers = append(summary.Papers, paper)
	}
	return summary, nil
}

// fetchPaper fetches and parses one identifier, reporting failures on out.
func (r *Runner) fetchPaper(ctx context.Context, id string, out io.Writer) (types.Paper, error) {
	body, err := r.Source.Detail(ctx, id)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			fmt.Fprintf(out, "Failed to fetch details for ID %s: HTTP %d\n", id, se.StatusCode)
		} else {
			fmt.Fprintf(out, "Failed to fetch details for ID %s: %v\n", id, err)
		}
		return types.Paper{}, err
	}

	paper, err := pubmed.ExtractPaper(body)
	if err != nil {
		fmt.Fprintf(out, "Error parsing details for ID %s: %v\n", id, err)
		return types.Paper{}, err
	}
	return paper, nil
}

// Run collects records for query and writes them to outputFile. On
// ErrSearchFailed no file is created or modified.
func (r *Runner) Run(ctx context.Context, query, outputFile string) (Summary, error) {
	summary, err := r.Collect(ctx, query)
	if err != nil {
		return summary, err
	}

	out := r.Out
	if out == nil {
		out = io.Discard
	}
	if err := export.Write(outputFile, summary.Papers, out); err != nil {
		return summary, err
	}
	if r.Debug {
		fmt.Fprintf(out, "%d papers exported (%d fetched, %d failed)\n",
			summary.Total(), summary.Fetched, summary.Failed)
	}
	return summary, nil
}
