package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FileResult holds the judged outcome and timing for one instance file.
type FileResult struct {
	Name       string `json:"name"`
	Targets    int    `json:"targets"`
	Operations int    `json:"operations"`
	Cost       int64  `json:"cost"`
	Score      int64  `json:"score"`
	TimeMs     int64  `json:"timeMs"`
	// Error is set when the judge rejected the solution.
	Error string `json:"error,omitempty"`
}

// BenchSummary aggregates the accepted results of a run.
type BenchSummary struct {
	Accepted int     `json:"accepted"`
	Rejected int     `json:"rejected"`
	Mean     float64 `json:"mean"`
	Max      int64   `json:"max"`
	MaxName  string  `json:"maxName,omitempty"`
	Min      int64   `json:"min"`
	MinName  string  `json:"minName,omitempty"`
}

// BenchOutput is the JSON-serializable result of a full benchmark run.
type BenchOutput struct {
	Date    string       `json:"date"`
	Workers int          `json:"workers"`
	Results []FileResult `json:"results"`
	Summary BenchSummary `json:"summary"`
	TotalMs int64        `json:"totalMs"`
}

func runFile(ctx context.Context, path string, cfg Config, outDir string, logger *zap.Logger) (FileResult, error) {
	name := filepath.Base(path)
	inst, err := readInstance(path)
	if err != nil {
		return FileResult{}, err
	}

	res := NewSolver(inst.Targets, cfg, logger.With(zap.String("file", name))).Solve(ctx)
	r := FileResult{
		Name:       name,
		Targets:    len(inst.Targets),
		Operations: len(res.Operations),
		Cost:       res.Cost,
		TimeMs:     res.Elapsed.Milliseconds(),
	}
	if v, err := Judge(inst, res.Operations); err != nil {
		r.Error = err.Error()
	} else {
		r.Score = v.Score
	}

	if outDir != "" {
		out, err := os.Create(filepath.Join(outDir, name))
		if err != nil {
			return r, err
		}
		if err := WriteOperations(out, res.Operations); err != nil {
			out.Close()
			return r, fmt.Errorf("%s: %w", name, err)
		}
		if err := out.Close(); err != nil {
			return r, err
		}
	}
	return r, nil
}

// runBench solves every file on a pool of workers. Results keep the order of
// paths.
func runBench(ctx context.Context, paths []string, cfg Config, workers int, outDir string, logger *zap.Logger) (BenchOutput, error) {
	start := time.Now()
	if workers <= 0 {
		workers = 1
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return BenchOutput{}, err
		}
	}

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			r, err := runFile(gctx, path, cfg, outDir, logger)
			if err != nil {
				return err
			}
			results[i] = r
			logger.Info("instance solved",
				zap.String("file", r.Name),
				zap.Int64("score", r.Score),
				zap.Int64("time_ms", r.TimeMs),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BenchOutput{}, err
	}

	return BenchOutput{
		Date:    time.Now().UTC().Format(time.RFC3339),
		Workers: workers,
		Results: results,
		Summary: summarize(results),
		TotalMs: time.Since(start).Milliseconds(),
	}, nil
}

func summarize(results []FileResult) BenchSummary {
	var s BenchSummary
	var scores []float64
	var names []string
	for _, r := range results {
		if r.Error != "" {
			s.Rejected++
			continue
		}
		s.Accepted++
		scores = append(scores, float64(r.Score))
		names = append(names, r.Name)
	}
	if len(scores) == 0 {
		return s
	}
	s.Mean = stat.Mean(scores, nil)
	hi, lo := floats.MaxIdx(scores), floats.MinIdx(scores)
	s.Max, s.MaxName = int64(scores[hi]), names[hi]
	s.Min, s.MinName = int64(scores[lo]), names[lo]
	return s
}

func printTable(w io.Writer, out BenchOutput) {
	fmt.Fprintf(w, "%-16s %8s %16s %16s %8s\n", "Input", "Ops", "Cost", "Score", "Time")
	fmt.Fprintf(w, "%-16s %8s %16s %16s %8s\n", "----------------", "--------", "----------------", "----------------", "--------")
	for _, r := range out.Results {
		if r.Error != "" {
			fmt.Fprintf(w, "%-16s %8d %16s %16s %7.1fs  WA: %s\n", r.Name, r.Operations,
				humanize.Comma(r.Cost), "0", float64(r.TimeMs)/1000, r.Error)
			continue
		}
		fmt.Fprintf(w, "%-16s %8d %16s %16s %7.1fs\n", r.Name, r.Operations,
			humanize.Comma(r.Cost), humanize.Comma(r.Score), float64(r.TimeMs)/1000)
	}
	s := out.Summary
	fmt.Fprintf(w, "%-16s %8s %16s %16s %8s\n", "----------------", "--------", "----------------", "----------------", "--------")
	fmt.Fprintf(w, "AC: %d\nWA: %d\n", s.Accepted, s.Rejected)
	fmt.Fprintf(w, "avg: %s\n", humanize.CommafWithDigits(s.Mean, 1))
	if s.Accepted > 0 {
		fmt.Fprintf(w, "max: %s (%s)\n", humanize.Comma(s.Max), s.MaxName)
		fmt.Fprintf(w, "min: %s (%s)\n", humanize.Comma(s.Min), s.MinName)
	}
	fmt.Fprintf(w, "total: %.1fs\n", float64(out.TotalMs)/1000)
}
