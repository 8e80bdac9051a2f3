package engine

import (
	"context"
	"fmt"
	"halma/experiments/metrics"
	"halma/game"
	"halma/meta"
	"halma/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*LocalEngine)(nil)

type LocalEngine struct {
	Game     *game.Game
	Agents   map[game.Camp]agent.Agent
	MaxTurns int
}

// NewLocalEngine sets up a game between two agents, agentA moving first.
func NewLocalEngine(size int, agentA, agentB agent.Agent, maxTurns int) (*LocalEngine, error) {
	g, err := game.NewGame(size)
	if err != nil {
		return nil, err
	}
	if maxTurns <= 0 {
		maxTurns = meta.MAX_TURNS
	}
	return &LocalEngine{
		Game: g,
		Agents: map[game.Camp]agent.Agent{
			game.CampA: agentA,
			game.CampB: agentB,
		},
		MaxTurns: maxTurns,
	}, nil
}

// Run executes the game loop until a winner is found or the turn cap is hit.
func (e *LocalEngine) Run(ctx context.Context) (game.Camp, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingCamp: e.Game.Active(),
		BoardSize:    e.Game.Position().Size(),
		StartTime:    time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("camp %v (%s) is starting", e.Game.Active(), e.Agents[e.Game.Active()].Name())

	turnCount := 1
	for e.Game.Phase() != game.GameOver && turnCount <= e.MaxTurns {
		camp := e.Game.Active()
		move, searchMetric, err := e.Agents[camp].FindMove(ctx, e.Game.Position(), camp)
		if err != nil {
			return game.None, e.finish(gameMetric, turnCount-1), moveMetrics, fmt.Errorf("turn %d: %w", turnCount, err)
		}
		if err := e.Game.Play(move); err != nil {
			return game.None, e.finish(gameMetric, turnCount-1), moveMetrics, fmt.Errorf("turn %d: agent %s: %w", turnCount, e.Agents[camp].Name(), err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turnCount,
			Camp:         camp,
			Move:         move,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("turn %d: camp %v played %v", turnCount, camp, move)
		turnCount++
	}

	winner := e.Game.Winner()
	if winner != game.None {
		log.Info().Msgf("game ended with a winner: camp %v after %d turns", winner, turnCount-1)
	} else {
		log.Info().Msgf("stopped after %d turns (no winner yet)", e.MaxTurns)
	}
	return winner, e.finish(gameMetric, turnCount-1), moveMetrics, nil
}

func (e *LocalEngine) finish(m metrics.GameMetric, moves int) metrics.GameMetric {
	m.Winner = e.Game.Winner()
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.TotalMoves = moves
	return m
}
