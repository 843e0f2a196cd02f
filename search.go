package main

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ── Lookahead ───────────────────────────────────────────────────────

// Action is the first move of a lookahead branch.
type Action int

const (
	// ActionNone marks the root candidate, which has not moved yet.
	ActionNone Action = iota - 1
	ActionGreedy
	ActionReplenishBefore
	ActionReplenishAfter
)

var branchActions = [...]Action{ActionGreedy, ActionReplenishBefore, ActionReplenishAfter}

func (a Action) String() string {
	switch a {
	case ActionGreedy:
		return "greedy"
	case ActionReplenishBefore:
		return "replenish-before"
	case ActionReplenishAfter:
		return "replenish-after"
	}
	return "none"
}

// play advances b by one branch of the search tree. A replenish whose drink
// already exists returns false but still drops two multiset values, which
// shifts the costs of later branches.
func (b *Blender) play(a Action) {
	if a == ActionReplenishBefore {
		b.ReplenishStep()
	}
	b.GreedyStep()
	if a == ActionReplenishAfter {
		b.ReplenishStep()
	}
}

// BeamParams bounds one lookahead step.
type BeamParams struct {
	Width  int // states expanded per depth per round
	Depth  int // number of plies below the current state
	Rounds int // passes over all depths
}

type candidate struct {
	state *Blender
	first Action
	seq   int
}

// cheaper orders candidates by cumulative cost; the one pushed first wins a tie.
func cheaper(a, b *candidate) bool {
	if a.state.totalCost != b.state.totalCost {
		return a.state.totalCost < b.state.totalCost
	}
	return a.seq < b.seq
}

// BoundedLookaheadStep explores a few plies ahead of the current state and
// commits only the first move of the best branch it found. The explored tree
// is thrown away; the next call plans again from the new state.
func (b *Blender) BoundedLookaheadStep(p BeamParams) bool {
	if b.IsComplete() {
		return false
	}

	beams := make([]*Heap[*candidate], p.Depth+1)
	for t := range beams {
		beams[t] = NewHeap(cheaper)
	}
	seq := 0
	push := func(t int, c *candidate) {
		c.seq = seq
		seq++
		beams[t].Push(c)
	}
	push(0, &candidate{state: b.snapshot(), first: ActionNone})

	for range p.Rounds {
		for t := 0; t < p.Depth; t++ {
			cur := beams[t]
			for range p.Width {
				if cur.Len() == 0 || cur.Peek().state.IsComplete() {
					break
				}
				c := cur.Pop()
				for _, a := range branchActions {
					next := &candidate{state: c.state.snapshot(), first: c.first}
					next.state.play(a)
					if t == 0 {
						next.first = a
					}
					push(t+1, next)
				}
			}
		}
	}

	// deepest non-empty frontier decides
	for t := p.Depth; t >= 0; t-- {
		if beams[t].Len() == 0 {
			continue
		}
		best := beams[t].Peek()
		if best.first == ActionNone {
			return false
		}
		b.play(best.first)
		return true
	}
	return false
}

// ── Solver ──────────────────────────────────────────────────────────

// Solver drives a Blender to completion: lookahead steps while time remains,
// then the replenish/greedy fallback.
type Solver struct {
	blender *Blender
	cfg     Config
	logger  *zap.Logger
}

// Result summarises a finished run.
type Result struct {
	Operations     []Operation
	Cost           int64
	LookaheadSteps int
	FallbackSteps  int
	// TimedOut is set when the deadline, not completion or a stall, ended
	// the lookahead phase.
	TimedOut bool
	Elapsed  time.Duration
}

// NewSolver creates a solver for targets. A nil logger disables logging.
func NewSolver(targets []Drink, cfg Config, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{
		blender: NewBlender(targets),
		cfg:     cfg,
		logger:  logger,
	}
}

// Blender exposes the underlying state.
func (s *Solver) Blender() *Blender { return s.blender }

// Solve runs until every target is produced. The deadline is taken from ctx,
// tightened by cfg.TimeLimit when that is positive, and checked only between
// lookahead steps.
func (s *Solver) Solve(ctx context.Context) Result {
	start := time.Now()
	if s.cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.TimeLimit)
		defer cancel()
	}

	b := s.blender
	p := s.cfg.Beam()
	var res Result

	s.logger.Info("solve started",
		zap.Int("targets", len(b.pending)),
		zap.Int("beam_width", p.Width),
		zap.Int("beam_depth", p.Depth),
		zap.Int("beam_rounds", p.Rounds),
		zap.Duration("time_limit", s.cfg.TimeLimit),
	)

	for !b.IsComplete() {
		if ctx.Err() != nil {
			res.TimedOut = true
			s.logger.Debug("lookahead deadline reached", zap.Int("pending", len(b.pending)))
			break
		}
		if !b.BoundedLookaheadStep(p) {
			s.logger.Warn("lookahead stalled", zap.Int("pending", len(b.pending)))
			break
		}
		res.LookaheadSteps++
		if ce := s.logger.Check(zap.DebugLevel, "lookahead step"); ce != nil {
			ce.Write(
				zap.Int("step", res.LookaheadSteps),
				zap.Int("pending", len(b.pending)),
				zap.Int64("cost", b.totalCost),
			)
		}
	}

	for !b.IsComplete() {
		b.ReplenishStep()
		b.GreedyStep()
		res.FallbackSteps++
	}

	res.Operations = b.Operations()
	res.Cost = b.TotalCost()
	res.Elapsed = time.Since(start)
	s.logger.Info("solve finished",
		zap.Int("operations", len(res.Operations)),
		zap.Int64("cost", res.Cost),
		zap.Int("lookahead_steps", res.LookaheadSteps),
		zap.Int("fallback_steps", res.FallbackSteps),
		zap.Bool("timed_out", res.TimedOut),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res
}
