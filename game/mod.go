package game

import (
	"errors"
	"fmt"
)

const (
	MinBoardSize = 5
	MaxBoardSize = 16
	// Pieces per camp: the corner triangle of side 4
	CAMP_PIECES = 10
	// Winning positions score +/- board size times this
	WIN_WEIGHT = 50
)

var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrEmptySourceCell   = errors.New("no piece on source cell")
	ErrInvalidBoardSize  = errors.New("invalid board size")
	ErrMalformedPosition = errors.New("malformed position")
	ErrGameOver          = errors.New("game is over - no moves allowed")
	ErrNothingToUndo     = errors.New("nothing to undo")
)

// Camp is both a side of the game and the content of a cell. The numeric
// values are the digits used by the position encoding.
type Camp int8

const (
	None  Camp = iota // empty cell, or no winner
	CampA             // maximizing side, starts bottom-right and moves first
	CampB             // minimizing side, starts top-left
)

func (c Camp) Opponent() Camp {
	switch c {
	case CampA:
		return CampB
	case CampB:
		return CampA
	default:
		return None
	}
}

// Maximizing reports whether the camp is the side that search maximizes for.
func (c Camp) Maximizing() bool {
	return c == CampA
}

func (c Camp) String() string {
	switch c {
	case CampA:
		return "A"
	case CampB:
		return "B"
	default:
		return "-"
	}
}

type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func (c Cell) offset(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// Move relocates a piece for a whole turn. A chained jump is a single move
// from the chain's origin to its final landing cell.
type Move struct {
	From Cell
	To   Cell
}

func (m Move) String() string {
	return fmt.Sprintf("%v->%v", m.From, m.To)
}

// Compare orders moves lexicographically by (from row, from col, to row, to col).
func (m Move) Compare(other Move) int {
	a := [4]int{m.From.Row, m.From.Col, m.To.Row, m.To.Col}
	b := [4]int{other.From.Row, other.From.Col, other.To.Row, other.To.Col}
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Evaluate scores a position. Positive values favor CampA.
type Evaluate func(Position) int
