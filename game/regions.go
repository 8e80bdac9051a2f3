package game

import (
	"fmt"
	"slices"
)

// Regions holds the home cells of both camps for one board size. A camp's
// target is its opponent's home.
type Regions struct {
	size int
	home [3][]Cell // indexed by Camp
}

var regionsBySize [MaxBoardSize + 1]*Regions

func init() {
	for size := MinBoardSize; size <= MaxBoardSize; size++ {
		regionsBySize[size] = newRegions(size)
	}
}

// newRegions builds the corner triangles ordered by distance from the
// corner, then along each diagonal.
func newRegions(size int) *Regions {
	r := &Regions{size: size}
	last := size - 1
	for dist := 0; dist < 4; dist++ {
		for i := 0; i <= dist; i++ {
			r.home[CampA] = append(r.home[CampA], Cell{Row: last - i, Col: last - (dist - i)})
			r.home[CampB] = append(r.home[CampB], Cell{Row: i, Col: dist - i})
		}
	}
	return r
}

// RegionsFor returns the fixed home/target regions for a board size.
func RegionsFor(size int) (*Regions, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidBoardSize, size, MinBoardSize, MaxBoardSize)
	}
	return regionsBySize[size], nil
}

func (r *Regions) Size() int {
	return r.size
}

// Home returns a copy of the cells camp starts on.
func (r *Regions) Home(camp Camp) []Cell {
	if camp != CampA && camp != CampB {
		return nil
	}
	return slices.Clone(r.home[camp])
}

// Target returns a copy of the cells camp has to fill to win.
func (r *Regions) Target(camp Camp) []Cell {
	return r.Home(camp.Opponent())
}

// captured reports whether camp fills its whole target with at least one
// of its own pieces among the occupants.
func (r *Regions) captured(p Position, camp Camp) bool {
	own := false
	for _, cell := range r.home[camp.Opponent()] {
		switch p.cells[cell.Row][cell.Col] {
		case None:
			return false
		case camp:
			own = true
		}
	}
	return own
}
