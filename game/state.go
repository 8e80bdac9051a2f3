package game

import (
	"fmt"
	"halma/utils"
)

type Phase int

const (
	AwaitingSelection Phase = iota
	AwaitingDestination
	MidChain
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingSelection:
		return "awaiting selection"
	case AwaitingDestination:
		return "awaiting destination"
	case MidChain:
		return "mid chain"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Game drives the turn state machine of one game: selection, steps and
// jump chains, turn completion, history and the win check.
type Game struct {
	position Position
	active   Camp
	phase    Phase
	selected Cell
	chain    Chain
	history  *History
	winner   Camp
}

// NewGame starts a game on a size x size board with CampA to move.
func NewGame(size int) (*Game, error) {
	p, err := InitialPosition(size)
	if err != nil {
		return nil, err
	}
	return &Game{
		position: p,
		active:   CampA,
		phase:    AwaitingSelection,
		history:  NewHistory(p),
	}, nil
}

// Resume rebuilds a game from its history. The side to move follows from
// the number of plies.
func Resume(h *History) (*Game, error) {
	if _, err := RegionsFor(h.Last().size); err != nil {
		return nil, err
	}
	g := &Game{
		position: h.Last(),
		active:   CampA,
		phase:    AwaitingSelection,
		history:  h,
	}
	if h.Plies()%2 == 1 {
		g.active = CampB
	}
	if w := Winner(g.position); w != None {
		g.winner = w
		g.phase = GameOver
	}
	return g, nil
}

func (g *Game) Position() Position { return g.position }
func (g *Game) Active() Camp       { return g.active }
func (g *Game) Phase() Phase       { return g.phase }
func (g *Game) Chain() Chain       { return g.chain }
func (g *Game) History() *History  { return g.history }
func (g *Game) Winner() Camp       { return g.winner }

// Selected returns the selected piece, if any.
func (g *Game) Selected() (Cell, bool) {
	if g.phase == AwaitingDestination || g.phase == MidChain {
		return g.selected, true
	}
	return Cell{}, false
}

// Select picks one of the active camp's pieces. Selecting it again
// clears the selection.
func (g *Game) Select(c Cell) error {
	switch g.phase {
	case GameOver:
		return ErrGameOver
	case MidChain:
		return fmt.Errorf("%w: finish the jump chain from %v first", ErrIllegalMove, g.chain.Piece)
	}
	if g.position.At(c) != g.active {
		return fmt.Errorf("%w: %v is not a piece of camp %v", ErrIllegalMove, c, g.active)
	}
	if g.phase == AwaitingDestination && g.selected == c {
		g.phase = AwaitingSelection
		return nil
	}
	g.selected = c
	g.phase = AwaitingDestination
	return nil
}

// MoveTo moves the selected piece one step or hop. An illegal destination
// clears the selection unless a chain is in progress.
func (g *Game) MoveTo(c Cell) (complete bool, err error) {
	switch g.phase {
	case GameOver:
		return false, ErrGameOver
	case AwaitingSelection:
		return false, fmt.Errorf("%w: no piece selected", ErrIllegalMove)
	}

	next, chain, complete, err := AttemptMove(g.position, g.chain, g.selected, c)
	if err != nil {
		if g.phase == AwaitingDestination {
			g.phase = AwaitingSelection
		}
		return false, err
	}

	g.position = next
	g.chain = chain
	if complete {
		g.completeTurn()
		return true, nil
	}
	g.selected = c
	g.phase = MidChain
	return false, nil
}

// Click handles a board click the way the board view reports them: own
// pieces select, anything else is a destination for the selection.
func (g *Game) Click(c Cell) (complete bool, err error) {
	if g.phase != MidChain && g.phase != GameOver && g.position.At(c) == g.active {
		return false, g.Select(c)
	}
	return g.MoveTo(c)
}

// Confirm ends a jump chain and completes the turn.
func (g *Game) Confirm() error {
	if g.phase == GameOver {
		return ErrGameOver
	}
	chain, err := EndChain(g.chain)
	if err != nil {
		return err
	}
	g.chain = chain
	g.completeTurn()
	return nil
}

// Play applies a whole-turn move as produced by LegalMoves.
func (g *Game) Play(m Move) error {
	switch g.phase {
	case GameOver:
		return ErrGameOver
	case MidChain:
		return fmt.Errorf("%w: a jump chain is in progress", ErrIllegalMove)
	}
	if utils.FindIndex(LegalMoves(g.position, g.active), m) < 0 {
		return fmt.Errorf("%w: %v for camp %v", ErrIllegalMove, m, g.active)
	}
	g.position = g.position.relocate(m)
	g.completeTurn()
	return nil
}

// completeTurn records the finished ply and hands the turn over, or ends
// the game if someone has won.
func (g *Game) completeTurn() {
	g.chain = Chain{}
	g.phase = AwaitingSelection
	g.history.push(g.position)

	if w := Winner(g.position); w != None {
		g.winner = w
		g.phase = GameOver
		return
	}
	g.active = g.active.Opponent()
}

// Undo takes back the last completed ply. A jump chain in progress is
// discarded with it.
func (g *Game) Undo() error {
	if g.phase == GameOver {
		return ErrGameOver
	}
	if g.history.Plies() == 0 {
		return ErrNothingToUndo
	}
	g.position = g.history.pop()
	g.chain = Chain{}
	g.phase = AwaitingSelection
	g.active = g.active.Opponent()
	return nil
}

// LegalDestinations lists the cells the selected piece may move to, for
// highlighting.
func (g *Game) LegalDestinations() []Cell {
	if g.phase != AwaitingDestination && g.phase != MidChain {
		return nil
	}
	return Destinations(g.position, g.chain, g.selected)
}
