package agent

import (
	"context"
	"fmt"
	"halma/experiments/metrics"
	"halma/game"
	"time"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly random legal
// moves. The same seed replays the same game.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) Name() string {
	return "Random"
}

func (a *randomAgent) FindMove(ctx context.Context, state game.Position, camp game.Camp) (game.Move, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	start := time.Now()
	moves := game.LegalMoves(state, camp)
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("camp %v has no move to play", camp)
	}
	move := moves[a.rng.Intn(len(moves))]
	return move, metrics.SearchMetric{Duration: time.Since(start), Nodes: 1}, nil
}
