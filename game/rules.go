package game

import (
	"fmt"
	"halma/utils"
)

// Chain is the jump state of the turn in progress. The zero value means no
// jump has happened yet this turn.
type Chain struct {
	Jumping bool
	Origin  Cell // where the chain started, it may not land there again
	Piece   Cell // where the jumping piece stands now
}

// IsLegalMove checks a single step or a single hop from src to dst.
// Illegal requests, including cells off the board, just report false.
func IsLegalMove(p Position, chain Chain, src, dst Cell) (legal bool, jump bool) {
	if !p.InBounds(src) || !p.InBounds(dst) || src == dst {
		return false, false
	}
	dr, dc := dst.Row-src.Row, dst.Col-src.Col

	if utils.Abs(dr) <= 1 && utils.Abs(dc) <= 1 && !chain.Jumping {
		legal = true
	} else if (dr == 0 || utils.Abs(dr) == 2) && (dc == 0 || utils.Abs(dc) == 2) &&
		p.At(src.offset(dr/2, dc/2)) != None &&
		!(chain.Jumping && dst == chain.Origin) {
		legal, jump = true, true
	}

	// Occupied destinations override everything above
	if p.At(dst) != None {
		return false, false
	}
	return legal, jump
}

// Destinations lists every cell the piece on src can reach with one step
// or hop, scanning the 5x5 window around it.
func Destinations(p Position, chain Chain, src Cell) []Cell {
	var cells []Cell
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			dst := src.offset(dr, dc)
			if !p.InBounds(dst) {
				continue
			}
			if legal, _ := IsLegalMove(p, chain, src, dst); legal {
				cells = append(cells, dst)
			}
		}
	}
	return cells
}

// LegalMoves returns every whole-turn move for camp: all jumps, chained
// jumps included, followed by all steps.
func LegalMoves(p Position, camp Camp) []Move {
	var jumps, steps []Move
	seen := make(map[Move]struct{})

	for _, src := range p.Pieces(camp) {
		for dr := -2; dr <= 2; dr++ {
			for dc := -2; dc <= 2; dc++ {
				dst := src.offset(dr, dc)
				legal, jump := IsLegalMove(p, Chain{}, src, dst)
				if !legal {
					continue
				}
				m := Move{From: src, To: dst}
				if jump {
					seen[m] = struct{}{}
					jumps = append(jumps, m)
				} else {
					steps = append(steps, m)
				}
			}
		}
	}

	// Extend chains until a whole pass finds nothing new. Each hop is probed
	// on a scratch board where the chain so far has already been played.
	frontier := jumps
	for len(frontier) > 0 {
		var found []Move
		for _, m := range frontier {
			scratch := p.relocate(m)
			chain := Chain{Jumping: true, Origin: m.From, Piece: m.To}
			for _, dr := range []int{-2, 0, 2} {
				for _, dc := range []int{-2, 0, 2} {
					dst := m.To.offset(dr, dc)
					if dst == m.From {
						continue
					}
					next := Move{From: m.From, To: dst}
					if _, ok := seen[next]; ok {
						continue
					}
					if legal, _ := IsLegalMove(scratch, chain, m.To, dst); legal {
						seen[next] = struct{}{}
						found = append(found, next)
					}
				}
			}
		}
		jumps = append(jumps, found...)
		frontier = found
	}

	return append(jumps, steps...)
}

// Apply plays m on a copy of p. It only fails when the caller breaks the
// contract of applying enumerated moves.
func Apply(p Position, m Move) (Position, error) {
	if !p.InBounds(m.From) || !p.InBounds(m.To) {
		return p, fmt.Errorf("%w: %v leaves the %dx%d board", ErrIllegalMove, m, p.size, p.size)
	}
	if p.At(m.From) == None {
		return p, fmt.Errorf("%w: %v", ErrEmptySourceCell, m)
	}
	return p.relocate(m), nil
}

// MustApply is Apply for moves known to be legal.
func MustApply(p Position, m Move) Position {
	next, err := Apply(p, m)
	if err != nil {
		panic(err)
	}
	return next
}

// Winner returns the camp that has captured its target, None otherwise.
// CampA is checked first, so it wins if both targets fill on the same move.
func Winner(p Position) Camp {
	if p.size < MinBoardSize {
		return None
	}
	regions := regionsBySize[p.size]
	for _, camp := range []Camp{CampA, CampB} {
		if regions.captured(p, camp) {
			return camp
		}
	}
	return None
}

// AttemptMove performs one step or hop of the turn in progress. It returns
// the new position and chain state, and whether the turn is complete.
func AttemptMove(p Position, chain Chain, src, dst Cell) (Position, Chain, bool, error) {
	if p.At(src) == None {
		return p, chain, false, fmt.Errorf("%w: no piece on %v", ErrIllegalMove, src)
	}
	if chain.Jumping && src != chain.Piece {
		return p, chain, false, fmt.Errorf("%w: chain continues from %v, not %v", ErrIllegalMove, chain.Piece, src)
	}
	legal, jump := IsLegalMove(p, chain, src, dst)
	if !legal {
		return p, chain, false, fmt.Errorf("%w: %v", ErrIllegalMove, Move{From: src, To: dst})
	}

	next := p.relocate(Move{From: src, To: dst})
	if !jump {
		return next, Chain{}, true, nil
	}
	origin := src
	if chain.Jumping {
		origin = chain.Origin
	}
	return next, Chain{Jumping: true, Origin: origin, Piece: dst}, false, nil
}

// EndChain confirms a jump chain as the end of the turn.
func EndChain(chain Chain) (Chain, error) {
	if !chain.Jumping {
		return chain, fmt.Errorf("%w: no jump to confirm", ErrIllegalMove)
	}
	return Chain{}, nil
}
