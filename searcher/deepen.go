package searcher

import (
	"context"
	"halma/game"

	"github.com/rs/zerolog/log"
)

// Analyse runs successively deeper searches from depth 1 to maxDepth,
// calling report after every completed depth. ctx is only checked between
// depths: a running depth always finishes. It returns the deepest completed
// result, and ctx.Err() if the analysis was cancelled before maxDepth.
func (s *Searcher) Analyse(ctx context.Context, p game.Position, camp game.Camp, maxDepth int, report func(Result)) (Result, error) {
	var best Result
	for depth := 1; depth <= maxDepth; depth++ {
		if err := ctx.Err(); err != nil {
			log.Debug().Int("depth", depth).Msg("analysis cancelled")
			return best, err
		}
		result, metric := s.FindMove(p, camp, depth)
		best = result
		log.Debug().
			Int("depth", depth).
			Int("score", result.Score).
			Str("move", result.Move.String()).
			Int("nodes", metric.Nodes).
			Dur("elapsed", metric.Duration).
			Msg("deepened")
		if report != nil {
			report(result)
		}
	}
	return best, nil
}

// Deepen is Analyse on a background goroutine. Completed depths are sent on
// the returned channel, which is closed when maxDepth is reached or ctx is
// cancelled. The deepest completed result is always the last one sent, even
// after cancellation, so callers must drain the channel until it is closed.
func (s *Searcher) Deepen(ctx context.Context, p game.Position, camp game.Camp, maxDepth int) <-chan Result {
	results := make(chan Result)
	go func() {
		defer close(results)
		sent := 0
		best, _ := s.Analyse(ctx, p, camp, maxDepth, func(r Result) {
			select {
			case results <- r:
				sent = r.Depth
			case <-ctx.Done():
			}
		})
		if best.Depth > sent {
			results <- best
		}
	}()
	return results
}
