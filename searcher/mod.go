package searcher

import (
	"halma/experiments/metrics"
	"halma/game"
	"math"
)

// Bounds for a fresh alpha-beta window
const (
	MinScore = math.MinInt
	MaxScore = math.MaxInt
)

// Cutoff returns how many of the ordered candidates are searched at a node,
// given the number of candidates and the depth the whole search started with.
type Cutoff func(candidates, maxDepth int) int

// ThrottledCutoff keeps floor(n / D^(D/2)) + 1 candidates, never fewer
// than 3, so deeper searches look at fewer, better ordered moves.
func ThrottledCutoff(candidates, maxDepth int) int {
	d := float64(maxDepth)
	keep := int(math.Floor(float64(candidates)/math.Pow(d, d/2))) + 1
	return max(keep, 3)
}

// FullWidth searches every candidate.
func FullWidth(candidates, _ int) int {
	return candidates
}

type Option func(s *Searcher)

// Searcher runs depth-limited minimax with alpha-beta pruning. It holds no
// per-search state besides its metrics collector.
type Searcher struct {
	cutoff   Cutoff
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func WithCutoff(cutoff Cutoff) Option {
	return func(s *Searcher) {
		if cutoff != nil {
			s.cutoff = cutoff
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		cutoff:   ThrottledCutoff,
		evaluate: game.EvaluateDistance,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Result is the outcome of a search to a given depth. Found is false when
// the side to move had no candidate move; Score is still meaningful then.
type Result struct {
	Depth int
	Score int
	Move  game.Move
	Found bool
}
