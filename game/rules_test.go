package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func board(t *testing.T, size int, pieces map[Cell]Camp) Position {
	t.Helper()
	p, err := NewPosition(size)
	require.NoError(t, err)
	for cell, camp := range pieces {
		p.Set(cell, camp)
	}
	return p
}

func fill(p *Position, cells []Cell, camp Camp) {
	for _, cell := range cells {
		p.Set(cell, camp)
	}
}

func TestRegions(t *testing.T) {
	t.Run("camps start in opposite corner triangles", func(t *testing.T) {
		regions, err := RegionsFor(5)
		require.NoError(t, err)

		require.Equal(t, []Cell{
			{4, 4}, {4, 3}, {3, 4}, {4, 2}, {3, 3}, {2, 4}, {4, 1}, {3, 2}, {2, 3}, {1, 4},
		}, regions.Home(CampA))
		require.Equal(t, []Cell{
			{0, 0}, {0, 1}, {1, 0}, {0, 2}, {1, 1}, {2, 0}, {0, 3}, {1, 2}, {2, 1}, {3, 0},
		}, regions.Home(CampB))
		require.Equal(t, regions.Home(CampB), regions.Target(CampA), "A's target should be B's home")
	})

	t.Run("every board size has camps of the same size", func(t *testing.T) {
		for size := MinBoardSize; size <= MaxBoardSize; size++ {
			regions, err := RegionsFor(size)
			require.NoError(t, err)
			require.Len(t, regions.Home(CampA), CAMP_PIECES)
			require.Len(t, regions.Home(CampB), CAMP_PIECES)
		}
	})

	t.Run("boards outside 5..16 are rejected", func(t *testing.T) {
		_, err := RegionsFor(4)
		require.ErrorIs(t, err, ErrInvalidBoardSize)
		_, err = RegionsFor(17)
		require.ErrorIs(t, err, ErrInvalidBoardSize)
		_, err = InitialPosition(3)
		require.ErrorIs(t, err, ErrInvalidBoardSize)
	})

	t.Run("home cells are copies", func(t *testing.T) {
		regions, err := RegionsFor(5)
		require.NoError(t, err)
		home := regions.Home(CampA)
		home[0] = Cell{0, 0}
		require.Equal(t, Cell{4, 4}, regions.Home(CampA)[0])
	})
}

func TestIsLegalMove(t *testing.T) {
	p := board(t, 5, map[Cell]Camp{
		{2, 2}: CampA,
		{2, 3}: CampB,
		{1, 1}: CampA,
	})

	tests := []struct {
		name      string
		chain     Chain
		src, dst  Cell
		wantLegal bool
		wantJump  bool
	}{
		{"step to an empty neighbour", Chain{}, Cell{2, 2}, Cell{3, 2}, true, false},
		{"diagonal step", Chain{}, Cell{2, 2}, Cell{3, 3}, true, false},
		{"step onto a piece", Chain{}, Cell{2, 2}, Cell{2, 3}, false, false},
		{"hop over a piece of the other camp", Chain{}, Cell{2, 2}, Cell{2, 4}, true, true},
		{"hop over an own piece", Chain{}, Cell{2, 2}, Cell{0, 0}, true, true},
		{"hop over an empty cell", Chain{}, Cell{2, 2}, Cell{4, 4}, false, false},
		{"knight-shaped move", Chain{}, Cell{2, 2}, Cell{4, 3}, false, false},
		{"three cells away", Chain{}, Cell{1, 1}, Cell{4, 1}, false, false},
		{"off the board", Chain{}, Cell{2, 2}, Cell{2, 5}, false, false},
		{"staying put", Chain{}, Cell{2, 2}, Cell{2, 2}, false, false},
		{"step during a chain", Chain{Jumping: true, Origin: Cell{0, 0}, Piece: Cell{2, 2}}, Cell{2, 2}, Cell{3, 2}, false, false},
		{"hop during a chain", Chain{Jumping: true, Origin: Cell{4, 2}, Piece: Cell{2, 2}}, Cell{2, 2}, Cell{2, 4}, true, true},
		{"hop back to the chain origin", Chain{Jumping: true, Origin: Cell{2, 4}, Piece: Cell{2, 2}}, Cell{2, 2}, Cell{2, 4}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			legal, jump := IsLegalMove(p, tt.chain, tt.src, tt.dst)
			require.Equal(t, tt.wantLegal, legal)
			require.Equal(t, tt.wantJump, jump)
		})
	}
}

func TestDestinations(t *testing.T) {
	p := board(t, 5, map[Cell]Camp{
		{0, 0}: CampA,
		{0, 1}: CampB,
	})

	require.ElementsMatch(t, []Cell{{1, 0}, {1, 1}, {0, 2}}, Destinations(p, Chain{}, Cell{0, 0}))
	require.Empty(t, Destinations(p, Chain{Jumping: true, Origin: Cell{0, 2}, Piece: Cell{0, 0}}, Cell{0, 0}),
		"The only hop leads back to the chain origin")
}

func TestLegalMoves(t *testing.T) {
	t.Run("chained jumps become single moves", func(t *testing.T) {
		p := board(t, 5, map[Cell]Camp{
			{2, 0}: CampA,
			{2, 1}: CampB,
			{2, 3}: CampB,
		})

		moves := LegalMoves(p, CampA)

		require.Equal(t, []Move{
			{Cell{2, 0}, Cell{2, 2}},
			{Cell{2, 0}, Cell{2, 4}},
		}, moves[:2], "Jumps should come first, extended chains after the hops they extend")
		require.ElementsMatch(t, []Move{
			{Cell{2, 0}, Cell{1, 0}},
			{Cell{2, 0}, Cell{1, 1}},
			{Cell{2, 0}, Cell{3, 0}},
			{Cell{2, 0}, Cell{3, 1}},
		}, moves[2:])
	})

	t.Run("a chain never ends where it started", func(t *testing.T) {
		p := board(t, 5, map[Cell]Camp{
			{2, 2}: CampA,
			{2, 3}: CampB,
			{3, 4}: CampB,
			{4, 3}: CampB,
			{3, 2}: CampB,
		})

		moves := LegalMoves(p, CampA)

		var jumps []Cell
		for _, m := range moves {
			require.NotEqual(t, m.From, m.To)
			if legal, jump := IsLegalMove(p, Chain{}, m.From, m.To); !legal || jump {
				jumps = append(jumps, m.To)
			}
		}
		require.ElementsMatch(t, []Cell{{2, 4}, {4, 2}, {4, 4}}, jumps)
		require.Len(t, moves, 9)
	})

	t.Run("moves are unique", func(t *testing.T) {
		p, err := InitialPosition(8)
		require.NoError(t, err)
		for _, camp := range []Camp{CampA, CampB} {
			seen := map[Move]bool{}
			for _, m := range LegalMoves(p, camp) {
				require.False(t, seen[m], "Move %v listed twice", m)
				seen[m] = true
				require.Equal(t, camp, p.At(m.From))
				require.Equal(t, None, p.At(m.To))
			}
		}
	})

	t.Run("the first turn has steps and hops", func(t *testing.T) {
		p, err := InitialPosition(5)
		require.NoError(t, err)

		moves := LegalMoves(p, CampA)

		require.Contains(t, moves, Move{Cell{3, 3}, Cell{2, 2}})
		require.Contains(t, moves, Move{Cell{3, 3}, Cell{1, 3}}, "(3,3) can hop over (2,3)")
	})

	t.Run("a camp without pieces has no moves", func(t *testing.T) {
		p := board(t, 5, map[Cell]Camp{{2, 2}: CampA})
		require.Empty(t, LegalMoves(p, CampB))
	})
}

func TestApply(t *testing.T) {
	t.Run("applying returns a new position", func(t *testing.T) {
		p, err := InitialPosition(5)
		require.NoError(t, err)

		next, err := Apply(p, Move{Cell{3, 3}, Cell{2, 2}})

		require.NoError(t, err)
		require.Equal(t, CampA, next.At(Cell{2, 2}))
		require.Equal(t, None, next.At(Cell{3, 3}))
		require.Equal(t, CampA, p.At(Cell{3, 3}), "Original position should not change")
		require.Equal(t, p.Count(CampA), next.Count(CampA))
	})

	t.Run("moving from an empty cell fails", func(t *testing.T) {
		p, err := InitialPosition(5)
		require.NoError(t, err)
		_, err = Apply(p, Move{Cell{2, 2}, Cell{2, 3}})
		require.ErrorIs(t, err, ErrEmptySourceCell)
		require.Panics(t, func() { MustApply(p, Move{Cell{2, 2}, Cell{2, 3}}) })
	})

	t.Run("moving off the board fails", func(t *testing.T) {
		p, err := InitialPosition(5)
		require.NoError(t, err)
		_, err = Apply(p, Move{Cell{4, 4}, Cell{5, 5}})
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("every legal move conserves pieces", func(t *testing.T) {
		small, err := InitialPosition(5)
		require.NoError(t, err)
		large, err := InitialPosition(8)
		require.NoError(t, err)
		midgame := MustApply(MustApply(small, Move{Cell{3, 3}, Cell{1, 3}}), Move{Cell{1, 1}, Cell{2, 2}})

		for _, p := range []Position{small, large, midgame} {
			for _, camp := range []Camp{CampA, CampB} {
				moves := LegalMoves(p, camp)
				require.NotEmpty(t, moves)
				for _, m := range moves {
					next := MustApply(p, m)
					require.Equal(t, p.Count(CampA), next.Count(CampA), "move %v", m)
					require.Equal(t, p.Count(CampB), next.Count(CampB), "move %v", m)
					require.Equal(t, camp, next.At(m.To), "move %v", m)
					require.Equal(t, None, next.At(m.From), "move %v", m)
				}
			}
		}
	})
}

func TestWinner(t *testing.T) {
	regions, err := RegionsFor(5)
	require.NoError(t, err)

	t.Run("nobody wins at the start", func(t *testing.T) {
		p, err := InitialPosition(5)
		require.NoError(t, err)
		require.Equal(t, None, Winner(p), "Targets full of the other camp's pieces are not captured")
	})

	t.Run("a full target with an own piece wins", func(t *testing.T) {
		p := board(t, 5, nil)
		fill(&p, regions.Target(CampA), CampB)
		p.Set(regions.Target(CampA)[0], CampA)
		require.Equal(t, CampA, Winner(p))
	})

	t.Run("a target with a hole does not win", func(t *testing.T) {
		p := board(t, 5, nil)
		fill(&p, regions.Target(CampB)[1:], CampB)
		require.Equal(t, None, Winner(p))
	})

	t.Run("camp B wins its target", func(t *testing.T) {
		p := board(t, 5, nil)
		fill(&p, regions.Target(CampB), CampB)
		require.Equal(t, CampB, Winner(p))
	})

	t.Run("camp A wins if both targets are captured", func(t *testing.T) {
		p := board(t, 5, nil)
		fill(&p, regions.Target(CampA), CampA)
		fill(&p, regions.Target(CampB), CampB)
		require.Equal(t, CampA, Winner(p))
	})

	t.Run("boards too small for camps have no winner", func(t *testing.T) {
		p := board(t, 3, map[Cell]Camp{{0, 0}: CampA})
		require.Equal(t, None, Winner(p))
	})
}

func TestAttemptMove(t *testing.T) {
	p := board(t, 5, map[Cell]Camp{
		{2, 0}: CampA,
		{2, 1}: CampB,
		{2, 3}: CampB,
		{4, 4}: CampA,
	})

	t.Run("a step completes the turn", func(t *testing.T) {
		next, chain, complete, err := AttemptMove(p, Chain{}, Cell{2, 0}, Cell{3, 0})
		require.NoError(t, err)
		require.True(t, complete)
		require.Equal(t, Chain{}, chain)
		require.Equal(t, CampA, next.At(Cell{3, 0}))
	})

	t.Run("hops continue a chain from the first origin", func(t *testing.T) {
		next, chain, complete, err := AttemptMove(p, Chain{}, Cell{2, 0}, Cell{2, 2})
		require.NoError(t, err)
		require.False(t, complete)
		require.Equal(t, Chain{Jumping: true, Origin: Cell{2, 0}, Piece: Cell{2, 2}}, chain)

		next, chain, complete, err = AttemptMove(next, chain, Cell{2, 2}, Cell{2, 4})
		require.NoError(t, err)
		require.False(t, complete)
		require.Equal(t, Chain{Jumping: true, Origin: Cell{2, 0}, Piece: Cell{2, 4}}, chain)

		_, _, _, err = AttemptMove(next, chain, Cell{2, 4}, Cell{1, 4})
		require.ErrorIs(t, err, ErrIllegalMove, "Steps should not continue a chain")

		_, _, _, err = AttemptMove(next, chain, Cell{4, 4}, Cell{3, 4})
		require.ErrorIs(t, err, ErrIllegalMove, "Only the jumping piece may continue")

		back, chain, _, err := AttemptMove(next, chain, Cell{2, 4}, Cell{2, 2})
		require.NoError(t, err, "Revisiting a cell other than the origin is allowed")
		require.Equal(t, CampA, back.At(Cell{2, 2}))

		ended, err := EndChain(chain)
		require.NoError(t, err)
		require.Equal(t, Chain{}, ended)
	})

	t.Run("moving an empty cell fails", func(t *testing.T) {
		_, _, _, err := AttemptMove(p, Chain{}, Cell{0, 0}, Cell{0, 1})
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("there is nothing to confirm without a jump", func(t *testing.T) {
		_, err := EndChain(Chain{})
		require.ErrorIs(t, err, ErrIllegalMove)
	})
}

func TestEvaluateDistance(t *testing.T) {
	t.Run("the start is balanced", func(t *testing.T) {
		for _, size := range []int{5, 8, 10, 16} {
			p, err := InitialPosition(size)
			require.NoError(t, err)
			require.Equal(t, 0, EvaluateDistance(p), "size %d", size)
		}
	})

	t.Run("advancing camp A raises the score", func(t *testing.T) {
		p, err := InitialPosition(5)
		require.NoError(t, err)
		require.Equal(t, 2, EvaluateDistance(MustApply(p, Move{Cell{3, 3}, Cell{2, 2}})))
		require.Equal(t, -2, EvaluateDistance(MustApply(p, Move{Cell{1, 1}, Cell{2, 2}})))
	})

	t.Run("wins score the board size times the win weight", func(t *testing.T) {
		regions, err := RegionsFor(5)
		require.NoError(t, err)

		p := board(t, 5, nil)
		fill(&p, regions.Target(CampA), CampA)
		require.Equal(t, 5*WIN_WEIGHT, EvaluateDistance(p))

		p = board(t, 5, nil)
		fill(&p, regions.Target(CampB), CampB)
		require.Equal(t, -5*WIN_WEIGHT, EvaluateDistance(p))
	})
}
