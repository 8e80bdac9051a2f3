package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"halma/engine"
	"halma/experiments"
	"halma/game"
	"halma/gamemaster"
	"halma/meta"
	"halma/record"
	"halma/searcher"
	"halma/searcher/agent"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	mode := flag.String("mode", "play", "play, selfplay, experiment, analyse or stats")
	player := flag.String("player", "Guest", "Player name for play and stats")
	difficulty := flag.Int("difficulty", meta.DEFAULT_DEPTH, "Search depth of the computer opponent in play mode (0 for two humans)")
	gameID := flag.Int("game", 0, "Archived game to analyse")
	ply := flag.Int("ply", -1, "Ply of the archived game to analyse (-1 for the last)")
	outputDir := flag.String("output", "results", "Directory for experiment results")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()

	cfg, err := meta.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	archive, err := record.Open(cfg.ArchiveDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open archive")
	}

	switch *mode {
	case "play":
		err = play(ctx, cfg, archive, *player, *difficulty)
	case "selfplay":
		err = selfplay(ctx, cfg, archive)
	case "experiment":
		err = experiment(ctx, cfg, *outputDir)
	case "analyse":
		err = analyse(ctx, cfg, archive, *gameID, *ply)
	case "stats":
		err = stats(archive, *player)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

// play runs a game on the terminal. The human plays CampA and enters
// clicks as "row col".
func play(ctx context.Context, cfg meta.Config, archive *record.Archive, player string, difficulty int) error {
	if _, err := archive.AddPlayer(player, false); err != nil {
		return err
	}
	var opponent agent.Agent
	opponentName := "Guest"
	if difficulty > 0 {
		opponent = agent.NewMinimaxAgent(searcher.New(), min(difficulty, meta.MAX_DIFFICULTY))
		opponentName = opponent.Name()
	}
	session, _, err := gamemaster.NewSession(cfg.BoardSize, nil, opponent)
	if err != nil {
		return err
	}

	fmt.Println(`commands: "row col" to click, "confirm", "undo", "hint", "quit"`)
	scanner := bufio.NewScanner(os.Stdin)
	for session.Phase() != game.GameOver {
		fmt.Printf("%v\ncamp %v, %v> ", session.Position(), session.Active(), session.Phase())
		if !scanner.Scan() {
			return scanner.Err()
		}
		var err error
		switch fields := strings.Fields(scanner.Text()); {
		case len(fields) == 0:
			continue
		case fields[0] == "quit":
			return nil
		case fields[0] == "confirm":
			err = session.Confirm(ctx)
		case fields[0] == "undo":
			err = session.Undo()
		case fields[0] == "hint":
			hintCtx, cancel := context.WithTimeout(ctx, cfg.AnalysisTime)
			session.StartAnalysis(hintCtx, cfg.AnalysisDepth)
			<-session.AnalysisDone()
			cancel()
			if r, ok := session.Analysis(); ok && r.Found {
				fmt.Printf("best move at depth %d: %v (score %d)\n", r.Depth, r.Move, r.Score)
			}
		case len(fields) == 2:
			var cell game.Cell
			if cell, err = parseCell(fields); err == nil {
				err = session.Click(ctx, cell)
			}
		default:
			err = fmt.Errorf("unknown command %q", scanner.Text())
		}
		if err != nil {
			fmt.Println(err)
		}
	}

	fmt.Printf("%v\ncamp %v wins\n", session.Position(), session.Winner())
	id, err := archive.SaveGame(record.Game{
		PlayerOne: player,
		PlayerTwo: opponentName,
		Result:    session.Winner(),
	}, session.History())
	if err != nil {
		return err
	}
	log.Info().Msgf("saved game %d", id)
	return nil
}

func parseCell(fields []string) (game.Cell, error) {
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.Cell{}, fmt.Errorf("bad row %q: %w", fields[0], err)
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Cell{}, fmt.Errorf("bad column %q: %w", fields[1], err)
	}
	return game.Cell{Row: row, Col: col}, nil
}

// selfplay lets the first two configured agents play each other and
// archives the game if it finished.
func selfplay(ctx context.Context, cfg meta.Config, archive *record.Archive) error {
	if len(cfg.Agents) < 2 {
		return fmt.Errorf("selfplay needs two agents, got %d", len(cfg.Agents))
	}
	agentA, err := agent.FromConfig(cfg.Agents[0])
	if err != nil {
		return err
	}
	agentB, err := agent.FromConfig(cfg.Agents[1])
	if err != nil {
		return err
	}
	e, err := engine.NewLocalEngine(cfg.BoardSize, agentA, agentB, cfg.MaxTurns)
	if err != nil {
		return err
	}
	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	log.Info().Msgf("%d moves in %v", gameMetric.TotalMoves, gameMetric.Duration)
	if winner == game.None {
		return nil
	}
	id, err := archive.SaveGame(record.Game{
		PlayerOne: agentA.Name(),
		PlayerTwo: agentB.Name(),
		Result:    winner,
		PlayedAt:  gameMetric.StartTime,
	}, e.Game.History())
	if err != nil {
		return err
	}
	log.Info().Msgf("saved game %d", id)
	return nil
}

func experiment(ctx context.Context, cfg meta.Config, outputDir string) error {
	outcome, err := experiments.Run(ctx, experiments.DepthSetup(cfg, outputDir))
	if err != nil {
		return err
	}
	log.Info().Msgf("results written to %s", outcome.Dir)
	return nil
}

// analyse deepens a search on a position of an archived game until the
// configured depth or time runs out.
func analyse(ctx context.Context, cfg meta.Config, archive *record.Archive, id, ply int) error {
	g, history, err := archive.LoadGame(id)
	if err != nil {
		return err
	}
	replay := game.NewReplay(history)
	if ply >= 0 {
		replay.Beginning()
		for i := 0; i < ply && !replay.AtEnd(); i++ {
			replay.Next()
		}
	}
	log.Info().Msgf("game %d (%s vs %s), ply %d of %d", g.ID, g.PlayerOne, g.PlayerTwo, replay.Ply(), history.Plies())
	fmt.Println(replay.Position())

	ctx, cancel := context.WithTimeout(ctx, cfg.AnalysisTime)
	defer cancel()
	best, err := searcher.New().Analyse(ctx, replay.Position(), replay.ToMove(), cfg.AnalysisDepth, func(r searcher.Result) {
		fmt.Printf("depth %d: %v (score %d)\n", r.Depth, r.Move, r.Score)
	})
	if err != nil && ctx.Err() == nil {
		return err
	}
	if best.Found {
		fmt.Printf("best move for camp %v: %v\n", replay.ToMove(), best.Move)
	}
	return nil
}

func stats(archive *record.Archive, player string) error {
	s, err := archive.Stats(player)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d games, %d wins, %d moves on average\n", player, s.Games, s.Wins, s.AverageMoves)
	return nil
}
