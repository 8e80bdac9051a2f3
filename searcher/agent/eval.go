package agent

import (
	"context"
	"fmt"
	"halma/experiments/metrics"
	"halma/game"
	"halma/searcher"
)

type minimaxAgent struct {
	searcher *searcher.Searcher
	depth    int
}

// NewMinimaxAgent returns an agent that searches depth plies ahead. Depths
// 1 to 5 are the difficulty levels offered to players.
func NewMinimaxAgent(s *searcher.Searcher, depth int) Agent {
	if depth < 1 {
		panic("search depth must be at least 1")
	}
	return minimaxAgent{searcher: s, depth: depth}
}

func (a minimaxAgent) Name() string {
	return fmt.Sprintf("AI Difficulty %d", a.depth)
}

func (a minimaxAgent) FindMove(ctx context.Context, state game.Position, camp game.Camp) (game.Move, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	result, metric := a.searcher.FindMove(state, camp, a.depth)
	if !result.Found {
		return game.Move{}, metric, fmt.Errorf("camp %v has no move to play", camp)
	}
	return result.Move, metric, nil
}
