package agent

import (
	"context"
	"halma/experiments/metrics"
	"halma/game"
)

type Agent interface {
	// FindMove returns the move to play for camp and the metrics of the search behind it (if collected)
	FindMove(ctx context.Context, state game.Position, camp game.Camp) (game.Move, metrics.SearchMetric, error)
	Name() string
}
