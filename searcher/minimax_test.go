package searcher

import (
	"halma/game"
	"testing"

	"github.com/stretchr/testify/require"
)

// referenceMinimax searches every move without pruning.
func referenceMinimax(p game.Position, depth int, maximizing bool) int {
	if depth <= 0 || game.Winner(p) != game.None {
		return game.EvaluateDistance(p)
	}
	camp := game.CampB
	if maximizing {
		camp = game.CampA
	}
	moves := game.LegalMoves(p, camp)
	if len(moves) == 0 {
		return game.EvaluateDistance(p)
	}
	best := MaxScore
	if maximizing {
		best = MinScore
	}
	for _, m := range moves {
		eval := referenceMinimax(game.MustApply(p, m), depth-1, !maximizing)
		if maximizing {
			best = max(best, eval)
		} else {
			best = min(best, eval)
		}
	}
	return best
}

func initial(t *testing.T, size int) game.Position {
	t.Helper()
	p, err := game.InitialPosition(size)
	require.NoError(t, err)
	return p
}

func TestThrottledCutoff(t *testing.T) {
	tests := []struct {
		candidates, maxDepth, want int
	}{
		{40, 3, 8},
		{40, 4, 3},
		{100, 4, 7},
		{10, 2, 6},
		{17, 1, 18},
		{0, 1, 3},
		{2, 5, 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ThrottledCutoff(tt.candidates, tt.maxDepth),
			"cutoff(%d, %d)", tt.candidates, tt.maxDepth)
	}
}

func TestSearch(t *testing.T) {
	t.Run("pruning does not change the minimax value", func(t *testing.T) {
		start := initial(t, 5)
		midgame := game.MustApply(game.MustApply(start, game.Move{From: game.Cell{Row: 3, Col: 3}, To: game.Cell{Row: 1, Col: 3}}),
			game.Move{From: game.Cell{Row: 1, Col: 1}, To: game.Cell{Row: 2, Col: 2}})
		s := New(WithCutoff(FullWidth))

		for _, p := range []game.Position{start, midgame} {
			for depth := 1; depth <= 3; depth++ {
				for _, maximizing := range []bool{true, false} {
					score, _, found := s.Search(p, depth, MinScore, MaxScore, maximizing)
					require.True(t, found)
					require.Equal(t, referenceMinimax(p, depth, maximizing), score,
						"depth %d, maximizing %v", depth, maximizing)
				}
			}
		}
	})

	t.Run("depth one picks the best immediate move", func(t *testing.T) {
		p := initial(t, 5)
		s := New()

		result, _ := s.FindMove(p, game.CampA, 1)

		require.True(t, result.Found)
		require.Equal(t, 1, result.Depth)
		require.Contains(t, game.LegalMoves(p, game.CampA), result.Move)
		best := MinScore
		for _, m := range game.LegalMoves(p, game.CampA) {
			best = max(best, game.EvaluateDistance(game.MustApply(p, m)))
		}
		require.Equal(t, best, result.Score)
		require.Equal(t, best, game.EvaluateDistance(game.MustApply(p, result.Move)))
	})

	t.Run("camp B minimizes", func(t *testing.T) {
		p := initial(t, 5)
		result, _ := New().FindMove(p, game.CampB, 1)

		require.True(t, result.Found)
		require.Equal(t, game.CampB, p.At(result.Move.From))
		for _, m := range game.LegalMoves(p, game.CampB) {
			require.LessOrEqual(t, result.Score, game.EvaluateDistance(game.MustApply(p, m)))
		}
	})

	t.Run("won positions are not searched", func(t *testing.T) {
		regions, err := game.RegionsFor(5)
		require.NoError(t, err)
		p, err := game.NewPosition(5)
		require.NoError(t, err)
		for _, cell := range regions.Target(game.CampA) {
			p.Set(cell, game.CampA)
		}
		s := New(WithMetrics())

		result, metric := s.FindMove(p, game.CampB, 3)

		require.False(t, result.Found)
		require.Equal(t, 5*game.WIN_WEIGHT, result.Score)
		require.Equal(t, 1, metric.Nodes)
		require.Equal(t, 1, metric.Leaves)
	})

	t.Run("a camp without moves scores the position", func(t *testing.T) {
		p, err := game.NewPosition(5)
		require.NoError(t, err)
		p.Set(game.Cell{Row: 2, Col: 2}, game.CampA)

		score, _, found := New().Search(p, 2, MinScore, MaxScore, false)

		require.False(t, found)
		require.Equal(t, game.EvaluateDistance(p), score)
	})

	t.Run("metrics count the search", func(t *testing.T) {
		s := New(WithMetrics(), WithCutoff(FullWidth))

		_, metric := s.FindMove(initial(t, 5), game.CampA, 3)

		require.Equal(t, 3, metric.Depth)
		require.Greater(t, metric.Nodes, metric.Leaves)
		require.Greater(t, metric.Leaves, 0)
		require.Greater(t, metric.Prunes, 0, "Alpha-beta should cut something at depth 3")
	})

	t.Run("a custom evaluation is used", func(t *testing.T) {
		constant := func(game.Position) int { return 7 }
		result, _ := New(WithEvaluationFn(constant)).FindMove(initial(t, 5), game.CampA, 2)
		require.Equal(t, 7, result.Score)
	})
}

func TestOrderMoves(t *testing.T) {
	p := initial(t, 6)
	s := New()

	for _, camp := range []game.Camp{game.CampA, game.CampB} {
		moves := game.LegalMoves(p, camp)
		ordered := s.OrderMoves(p, moves, camp.Maximizing())

		require.ElementsMatch(t, moves, ordered)
		for i := 1; i < len(ordered); i++ {
			prev := game.EvaluateDistance(game.MustApply(p, ordered[i-1]))
			next := game.EvaluateDistance(game.MustApply(p, ordered[i]))
			if camp.Maximizing() {
				require.GreaterOrEqual(t, prev, next, "A should try its best moves first")
			} else {
				require.LessOrEqual(t, prev, next, "B should try its best moves first")
			}
			if prev == next {
				cmp := ordered[i-1].Compare(ordered[i])
				if camp.Maximizing() {
					require.Positive(t, cmp)
				} else {
					require.Negative(t, cmp)
				}
			}
		}
		require.Equal(t, ordered, s.OrderMoves(p, moves, camp.Maximizing()), "Ordering should be deterministic")
	}
}
