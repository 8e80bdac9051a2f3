package game

// EvaluateDistance scores a position from CampA's perspective. A won
// position is worth size*WIN_WEIGHT. Otherwise every piece contributes how
// far it still is from the far corner: CampA pieces subtract row+col, CampB
// pieces add their distance from the bottom-right corner. The sum grows as
// CampA advances and shrinks as CampB advances.
func EvaluateDistance(p Position) int {
	switch Winner(p) {
	case CampA:
		return p.size * WIN_WEIGHT
	case CampB:
		return -p.size * WIN_WEIGHT
	}

	last := p.size - 1
	score := 0
	for row := 0; row < p.size; row++ {
		for col := 0; col < p.size; col++ {
			switch p.cells[row][col] {
			case CampA:
				score -= row + col
			case CampB:
				score += (last - row) + (last - col)
			}
		}
	}
	return score
}
