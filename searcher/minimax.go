package searcher

import (
	"cmp"
	"halma/experiments/metrics"
	"halma/game"
	"slices"
)

// FindMove searches depth plies ahead for camp and returns the chosen move.
func (s *Searcher) FindMove(p game.Position, camp game.Camp, depth int) (Result, metrics.SearchMetric) {
	s.metrics.Start(depth)
	score, move, found := s.Search(p, depth, MinScore, MaxScore, camp.Maximizing())
	return Result{Depth: depth, Score: score, Move: move, Found: found}, s.metrics.Complete()
}

// Search is minimax with alpha-beta pruning from CampA's point of view.
// depth is also the depth the move cutoff is keyed on for the whole tree.
func (s *Searcher) Search(p game.Position, depth, alpha, beta int, maximizing bool) (int, game.Move, bool) {
	return s.minimax(p, depth, alpha, beta, maximizing, depth)
}

func (s *Searcher) minimax(p game.Position, depth, alpha, beta int, maximizing bool, maxDepth int) (int, game.Move, bool) {
	s.metrics.AddNode()
	if depth <= 0 || game.Winner(p) != game.None {
		s.metrics.AddLeaf()
		return s.evaluate(p), game.Move{}, false
	}

	camp := game.CampB
	if maximizing {
		camp = game.CampA
	}
	moves := s.OrderMoves(p, game.LegalMoves(p, camp), maximizing)
	if len(moves) == 0 {
		s.metrics.AddLeaf()
		return s.evaluate(p), game.Move{}, false
	}
	moves = moves[:min(s.cutoff(len(moves), maxDepth), len(moves))]

	var best game.Move
	found := false
	if maximizing {
		maxEval := MinScore
		for i, move := range moves {
			eval, _, _ := s.minimax(game.MustApply(p, move), depth-1, alpha, beta, false, maxDepth)
			if eval > maxEval {
				maxEval, best, found = eval, move, true
			}
			alpha = max(alpha, eval)
			if beta <= alpha {
				if i < len(moves)-1 {
					s.metrics.AddPrune()
				}
				break
			}
		}
		return maxEval, best, found
	}

	minEval := MaxScore
	for i, move := range moves {
		eval, _, _ := s.minimax(game.MustApply(p, move), depth-1, alpha, beta, true, maxDepth)
		if eval < minEval {
			minEval, best, found = eval, move, true
		}
		beta = min(beta, eval)
		if beta <= alpha {
			if i < len(moves)-1 {
				s.metrics.AddPrune()
			}
			break
		}
	}
	return minEval, best, found
}

type scoredMove struct {
	move  game.Move
	score int
}

// OrderMoves sorts moves by the evaluation of the position they lead to,
// ascending, or descending when maximizing. Equal scores fall back to the
// move order so the result is deterministic.
func (s *Searcher) OrderMoves(p game.Position, moves []game.Move, maximizing bool) []game.Move {
	scored := make([]scoredMove, len(moves))
	for i, move := range moves {
		scored[i] = scoredMove{move: move, score: s.evaluate(game.MustApply(p, move))}
	}
	slices.SortFunc(scored, func(a, b scoredMove) int {
		if c := cmp.Compare(a.score, b.score); c != 0 {
			return c
		}
		return a.move.Compare(b.move)
	})
	if maximizing {
		slices.Reverse(scored)
	}

	ordered := make([]game.Move, len(scored))
	for i, sm := range scored {
		ordered[i] = sm.move
	}
	return ordered
}
