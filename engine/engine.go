package engine

import (
	"context"
	"halma/experiments/metrics"
	"halma/game"
)

type Engine interface {
	// Run plays a game till there's a winner or a max number of turns is reached
	Run(ctx context.Context) (winner game.Camp, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
