package experiments

import (
	"cmp"
	"context"
	"fmt"
	"halma/engine"
	"halma/experiments/metrics"
	"halma/meta"
	"halma/searcher"
	"halma/searcher/agent"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Setup describes one experiment: which agents meet and how often.
type Setup struct {
	Name       string
	OutputDir  string
	BoardSize  int
	MaxTurns   int
	NumGames   int // Per match up
	Goroutines int // Games played at once
	Configs    []metrics.AgentConfig
	MatchUps   [][2]metrics.AgentConfig
}

// Outcome holds everything recorded while an experiment ran.
type Outcome struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Dir   string
}

// DepthSetup pairs every configured agent against every other one, so
// each difficulty level meets each other level.
func DepthSetup(cfg meta.Config, outputDir string) Setup {
	configs := make([]metrics.AgentConfig, len(cfg.Agents))
	for i, a := range cfg.Agents {
		configs[i] = metrics.AgentConfig{ID: i + 1, AgentConfig: a}
	}
	matchUps := [][2]metrics.AgentConfig{}
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			matchUps = append(matchUps, [2]metrics.AgentConfig{configs[i], configs[j]})
		}
	}
	return Setup{
		Name:       "depth",
		OutputDir:  outputDir,
		BoardSize:  cfg.BoardSize,
		MaxTurns:   cfg.MaxTurns,
		NumGames:   cfg.Games,
		Goroutines: cfg.Goroutines,
		Configs:    configs,
		MatchUps:   matchUps,
	}
}

// Run plays every game of the setup and stores the records as CSV files.
// Sides alternate between games so neither agent always moves first.
func Run(ctx context.Context, setup Setup) (Outcome, error) {
	log.Info().Msgf("starting %s experiment...", setup.Name)

	type job struct {
		id     int
		agentA metrics.AgentConfig
		agentB metrics.AgentConfig
	}
	var jobs []job
	for _, matchUp := range setup.MatchUps {
		for i := 0; i < setup.NumGames; i++ {
			a, b := matchUp[0], matchUp[1]
			if i%2 == 1 {
				a, b = b, a
			}
			jobs = append(jobs, job{id: len(jobs) + 1, agentA: a, agentB: b})
		}
	}

	var mu sync.Mutex
	outcome := Outcome{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(setup.Goroutines, 1))
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			log.Info().Msgf("starting game %d of %d: agent%d vs agent%d", j.id, len(jobs), j.agentA.ID, j.agentB.ID)

			gameRecord, moveRecords, err := runGame(ctx, setup, j.id, j.agentA, j.agentB)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.id, err)
			}

			mu.Lock()
			outcome.Games = append(outcome.Games, gameRecord)
			outcome.Moves = append(outcome.Moves, moveRecords...)
			mu.Unlock()

			log.Info().Msgf("completed game %d with winner: camp %v", j.id, gameRecord.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcome, err
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	slices.SortFunc(outcome.Games, func(a, b metrics.GameRecord) int {
		return cmp.Compare(a.ID, b.ID)
	})
	slices.SortFunc(outcome.Moves, func(a, b metrics.MoveRecord) int {
		if c := cmp.Compare(a.Game, b.Game); c != 0 {
			return c
		}
		return cmp.Compare(a.Step, b.Step)
	})

	writer, err := metrics.NewWriter(setup.OutputDir, setup.Name)
	if err != nil {
		return outcome, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	outcome.Dir = writer.Dir()

	if err := writer.WriteAgentConfigs(setup.Configs); err != nil {
		return outcome, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(outcome.Games); err != nil {
		return outcome, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(outcome.Moves); err != nil {
		return outcome, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return outcome, nil
}

// runGame executes a single game between two agents
func runGame(ctx context.Context, setup Setup, id int, configA, configB metrics.AgentConfig) (metrics.GameRecord, []metrics.MoveRecord, error) {
	agentA, err := agent.FromConfig(configA.AgentConfig, searcher.WithMetrics())
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	agentB, err := agent.FromConfig(configB.AgentConfig, searcher.WithMetrics())
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	e, err := engine.NewLocalEngine(setup.BoardSize, agentA, agentB, setup.MaxTurns)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	_, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	moveRecords := make([]metrics.MoveRecord, len(moveMetrics))
	for i, mm := range moveMetrics {
		moveRecords[i] = metrics.MoveRecord{Game: id, MoveMetric: mm}
	}
	return metrics.GameRecord{
		ID:         id,
		Agent1:     configA.ID,
		Agent2:     configB.ID,
		GameMetric: gameMetric,
	}, moveRecords, nil
}
