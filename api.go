package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

type solveResponse struct {
	Operations [][4]int64 `json:"operations"`
	Cost       int64      `json:"cost"`
	Score      int64      `json:"score"`
	TimeMs     int64      `json:"timeMs"`
}

// requestConfig overlays the optional tuning fields of a request body on base.
func requestConfig(body string, base Config) (Config, error) {
	cfg := base
	if v := gjson.Get(body, "timeLimitMs"); v.Exists() {
		cfg.TimeLimit = time.Duration(v.Int()) * time.Millisecond
	}
	if v := gjson.Get(body, "beamWidth"); v.Exists() {
		cfg.BeamWidth = int(v.Int())
	}
	if v := gjson.Get(body, "beamDepth"); v.Exists() {
		cfg.BeamDepth = int(v.Int())
	}
	if v := gjson.Get(body, "beamRounds"); v.Exists() {
		cfg.BeamRounds = int(v.Int())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return cfg, nil
}

// handleSolve decodes a JSON solve request, runs the solver and returns the
// judged solution. Errors wrapping errBadRequest are the caller's fault.
func handleSolve(ctx context.Context, body string, base Config, logger *zap.Logger) (solveResponse, error) {
	inst, err := ParseInstanceJSON(body)
	if err != nil {
		return solveResponse{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	cfg, err := requestConfig(body, base)
	if err != nil {
		return solveResponse{}, err
	}

	res := NewSolver(inst.Targets, cfg, logger).Solve(ctx)
	v, err := Judge(inst, res.Operations)
	if err != nil {
		return solveResponse{}, fmt.Errorf("solver produced an invalid log: %w", err)
	}

	ops := make([][4]int64, len(res.Operations))
	for i, op := range res.Operations {
		ops[i] = [4]int64{op.Source.Sweetness, op.Source.Fizziness, op.Result.Sweetness, op.Result.Fizziness}
	}
	return solveResponse{
		Operations: ops,
		Cost:       v.Cost,
		Score:      v.Score,
		TimeMs:     res.Elapsed.Milliseconds(),
	}, nil
}
