package gamemaster

import (
	"context"
	"fmt"
	"halma/game"
	"halma/searcher"
	"halma/searcher/agent"
	"sync"

	"github.com/rs/zerolog/log"
)

// Update describes a completed ply. Winner is set on the last update of a
// game, after which the feed is closed.
type Update struct {
	Ply      int
	Camp     game.Camp // The camp that moved
	Position game.Position
	Winner   game.Camp
}

// UpdateGetter returns the latest update not yet seen, without blocking.
// ok is false when there is nothing new.
type UpdateGetter func() (u Update, ok bool)

// Session runs one interactive game. A camp without an agent is played by a
// human through Click, Confirm and Undo; a camp with one replies on its own
// as soon as the human completes a turn.
type Session struct {
	mu       sync.Mutex
	game     *game.Game
	agents   map[game.Camp]agent.Agent
	updateCh chan Update
	closed   bool

	analyser *searcher.Searcher
	analysis *analysis
}

type analysis struct {
	cancel context.CancelFunc
	done   chan struct{}
	latest searcher.Result
	ok     bool
}

// NewSession starts a game on a size x size board. A nil agent marks a
// human camp.
func NewSession(size int, agentA, agentB agent.Agent) (*Session, UpdateGetter, error) {
	g, err := game.NewGame(size)
	if err != nil {
		return nil, nil, err
	}
	return newSession(g, agentA, agentB)
}

// ResumeSession continues a game from its history.
func ResumeSession(h *game.History, agentA, agentB agent.Agent) (*Session, UpdateGetter, error) {
	g, err := game.Resume(h)
	if err != nil {
		return nil, nil, err
	}
	return newSession(g, agentA, agentB)
}

func newSession(g *game.Game, agentA, agentB agent.Agent) (*Session, UpdateGetter, error) {
	s := &Session{
		game:     g,
		agents:   map[game.Camp]agent.Agent{},
		updateCh: make(chan Update, 1),
		analyser: searcher.New(),
	}
	if agentA != nil {
		s.agents[game.CampA] = agentA
	}
	if agentB != nil {
		s.agents[game.CampB] = agentB
	}
	if g.Phase() == game.GameOver {
		s.closed = true
		close(s.updateCh)
	}
	return s, func() (Update, bool) {
		select {
		case u, ok := <-s.updateCh:
			return u, ok
		default:
			return Update{}, false
		}
	}, nil
}

func (s *Session) Position() game.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Position()
}

func (s *Session) Active() game.Camp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Active()
}

func (s *Session) Phase() game.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Phase()
}

func (s *Session) Winner() game.Camp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Winner()
}

// History is the game's history. It is shared with the session, so it must
// not be read while a turn is being played.
func (s *Session) History() *game.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.History()
}

// Highlights returns the selected piece and where it may go.
func (s *Session) Highlights() (game.Cell, []game.Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	selected, ok := s.game.Selected()
	if !ok {
		return game.Cell{}, nil, false
	}
	return selected, s.game.LegalDestinations(), true
}

// Replay returns a cursor over the positions played so far.
func (s *Session) Replay() *game.Replay {
	return game.NewReplay(s.History())
}

// Start lets an agent open the game when it plays the first camp.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reply(ctx)
}

// Click selects or moves a piece for the human to move.
func (s *Session) Click(ctx context.Context, c game.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.humanTurn(); err != nil {
		return err
	}
	camp := s.game.Active()
	complete, err := s.game.Click(c)
	if err != nil {
		return err
	}
	if !complete {
		return nil
	}
	s.publish(camp)
	return s.reply(ctx)
}

// Confirm ends the human's jump chain.
func (s *Session) Confirm(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.humanTurn(); err != nil {
		return err
	}
	camp := s.game.Active()
	if err := s.game.Confirm(); err != nil {
		return err
	}
	s.publish(camp)
	return s.reply(ctx)
}

// Undo takes back the human's last turn. Against an agent its reply is
// taken back too, so the human is to move again.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.humanTurn(); err != nil {
		return err
	}
	plies := 1
	if _, ok := s.agents[s.game.Active().Opponent()]; ok {
		plies = 2
	}
	if s.game.History().Plies() < plies {
		return fmt.Errorf("%w: %d plies needed, %d played", game.ErrNothingToUndo, plies, s.game.History().Plies())
	}
	for i := 0; i < plies; i++ {
		if err := s.game.Undo(); err != nil {
			return err
		}
	}
	log.Debug().Msgf("undid %d plies, camp %v to move", plies, s.game.Active())
	return nil
}

func (s *Session) humanTurn() error {
	if s.game.Phase() == game.GameOver {
		return game.ErrGameOver
	}
	if a, ok := s.agents[s.game.Active()]; ok {
		return fmt.Errorf("camp %v is played by %s", s.game.Active(), a.Name())
	}
	return nil
}

// reply lets agents move until a human is to move or the game is over.
func (s *Session) reply(ctx context.Context) error {
	for s.game.Phase() != game.GameOver {
		camp := s.game.Active()
		a, ok := s.agents[camp]
		if !ok {
			return nil
		}
		move, _, err := a.FindMove(ctx, s.game.Position(), camp)
		if err != nil {
			return fmt.Errorf("%s: %w", a.Name(), err)
		}
		if err := s.game.Play(move); err != nil {
			return fmt.Errorf("%s: %w", a.Name(), err)
		}
		log.Debug().Msgf("%s played %v for camp %v", a.Name(), move, camp)
		s.publish(camp)
	}
	return nil
}

// publish replaces any unread update with the latest one. Only the latest
// position matters to a board view.
func (s *Session) publish(camp game.Camp) {
	if s.closed {
		return
	}
	u := Update{
		Ply:      s.game.History().Plies(),
		Camp:     camp,
		Position: s.game.Position(),
		Winner:   s.game.Winner(),
	}
	select {
	case <-s.updateCh:
	default:
	}
	s.updateCh <- u

	if u.Winner != game.None {
		log.Info().Msgf("camp %v won after %d plies", u.Winner, u.Ply)
		s.closed = true
		close(s.updateCh)
	}
}

// StartAnalysis deepens a search on the current position in the background,
// up to maxDepth. A running analysis is stopped first.
func (s *Session) StartAnalysis(ctx context.Context, maxDepth int) {
	s.mu.Lock()
	previous := s.analysis
	if previous != nil {
		previous.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	a := &analysis{cancel: cancel, done: make(chan struct{})}
	s.analysis = a
	results := s.analyser.Deepen(ctx, s.game.Position(), s.game.Active(), maxDepth)
	s.mu.Unlock()

	go func() {
		defer close(a.done)
		for r := range results {
			s.mu.Lock()
			a.latest, a.ok = r, true
			s.mu.Unlock()
			log.Info().Msgf("analysis depth %d: %v (score %d)", r.Depth, r.Move, r.Score)
		}
	}()

	if previous != nil {
		<-previous.done
	}
}

// StopAnalysis cancels the running analysis and waits for it to finish its
// current depth. The last result stays available.
func (s *Session) StopAnalysis() {
	s.mu.Lock()
	a := s.analysis
	s.mu.Unlock()
	if a == nil {
		return
	}
	a.cancel()
	<-a.done
}

// Analysis returns the deepest result of the latest analysis.
func (s *Session) Analysis() (searcher.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis == nil {
		return searcher.Result{}, false
	}
	return s.analysis.latest, s.analysis.ok
}

// AnalysisDone is closed once the latest analysis has ended.
func (s *Session) AnalysisDone() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return s.analysis.done
}
