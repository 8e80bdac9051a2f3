package game

import "fmt"

// Position is a square board snapshot. It is a plain value: assigning it
// copies every cell, so search branches never share a board.
type Position struct {
	size  int
	cells [MaxBoardSize][MaxBoardSize]Camp
}

// NewPosition returns an empty board. Any size up to MaxBoardSize can be
// represented, only games require MinBoardSize.
func NewPosition(size int) (Position, error) {
	if size < 1 || size > MaxBoardSize {
		return Position{}, fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}
	return Position{size: size}, nil
}

// InitialPosition returns the starting layout with both camps at home.
func InitialPosition(size int) (Position, error) {
	regions, err := RegionsFor(size)
	if err != nil {
		return Position{}, err
	}
	p := Position{size: size}
	for _, camp := range []Camp{CampA, CampB} {
		for _, cell := range regions.home[camp] {
			p.cells[cell.Row][cell.Col] = camp
		}
	}
	return p, nil
}

func (p Position) Size() int {
	return p.size
}

func (p Position) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < p.size && c.Col >= 0 && c.Col < p.size
}

// At returns the content of a cell, None for cells off the board.
func (p Position) At(c Cell) Camp {
	if !p.InBounds(c) {
		return None
	}
	return p.cells[c.Row][c.Col]
}

// Set places camp on a cell (None clears it). Panics off the board.
func (p *Position) Set(c Cell, camp Camp) {
	if !p.InBounds(c) {
		panic(fmt.Sprintf("cell %v outside %dx%d board", c, p.size, p.size))
	}
	p.cells[c.Row][c.Col] = camp
}

// Clone returns an independent copy.
func (p Position) Clone() Position {
	return p
}

// Pieces lists the cells held by camp in row-major order.
func (p Position) Pieces(camp Camp) []Cell {
	var cells []Cell
	for row := 0; row < p.size; row++ {
		for col := 0; col < p.size; col++ {
			if p.cells[row][col] == camp {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
	}
	return cells
}

func (p Position) Count(camp Camp) int {
	n := 0
	for row := 0; row < p.size; row++ {
		for col := 0; col < p.size; col++ {
			if p.cells[row][col] == camp {
				n++
			}
		}
	}
	return n
}

// relocate moves whatever is on the source cell without any checks.
func (p Position) relocate(m Move) Position {
	p.cells[m.To.Row][m.To.Col] = p.cells[m.From.Row][m.From.Col]
	p.cells[m.From.Row][m.From.Col] = None
	return p
}
