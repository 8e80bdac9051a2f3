package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"halma/game"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

var (
	ErrUnknownGame   = errors.New("unknown game")
	ErrUnknownPlayer = errors.New("unknown player")
)

const (
	playersFile = "players.csv"
	gamesFile   = "games.csv"
	movesFile   = "moves.csv"

	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

var (
	playersHeader = []string{"name", "ai", "active"}
	gamesHeader   = []string{"game_id", "player_one", "player_two", "result", "board_size", "date_played", "time_played", "num_moves"}
	movesHeader   = []string{"game_id", "move_id", "position"}
)

type Player struct {
	Name   string
	AI     bool
	Active bool
}

// Game is the summary of a finished game. Result is the winning camp:
// CampA is player one, CampB player two.
type Game struct {
	ID        int
	PlayerOne string
	PlayerTwo string
	Result    game.Camp
	BoardSize int
	PlayedAt  time.Time
	NumMoves  int
}

type Stats struct {
	Games        int
	Wins         int
	AverageMoves int
}

// Archive stores players and finished games as CSV files in a directory.
// Every position of a game is kept in the digit-string encoding.
type Archive struct {
	mu  sync.Mutex
	dir string
}

// Open prepares dir and registers the guest and computer players.
func Open(dir string) (*Archive, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	a := &Archive{dir: dir}
	if _, err := a.AddPlayer("Guest", false); err != nil {
		return nil, err
	}
	for depth := 1; depth <= 5; depth++ {
		if _, err := a.AddPlayer(fmt.Sprintf("AI Difficulty %d", depth), true); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// AddPlayer registers a player. It reports false if the name is taken.
func (a *Archive) AddPlayer(name string, ai bool) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	players, err := a.readPlayers()
	if err != nil {
		return false, err
	}
	for _, p := range players {
		if p.Name == name {
			return false, nil
		}
	}
	row := []string{name, strconv.FormatBool(ai), "true"}
	return true, a.append(playersFile, playersHeader, [][]string{row})
}

// DisablePlayer hides a player from the player list, keeping their games.
func (a *Archive) DisablePlayer(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	players, err := a.readPlayers()
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, len(players))
	for i, p := range players {
		if p.Name == name {
			p.Active = false
			found = true
		}
		rows[i] = []string{p.Name, strconv.FormatBool(p.AI), strconv.FormatBool(p.Active)}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}
	return a.rewrite(playersFile, playersHeader, rows)
}

// PlayerNames lists the active human players.
func (a *Archive) PlayerNames() ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	players, err := a.readPlayers()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, p := range players {
		if !p.AI && p.Active {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// SaveGame stores a finished game with every position it went through and
// returns its id.
func (a *Archive) SaveGame(g Game, history *game.History) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	games, err := a.readGames()
	if err != nil {
		return 0, err
	}
	id := 1
	for _, existing := range games {
		id = max(id, existing.ID+1)
	}

	g.ID = id
	g.NumMoves = history.Plies()
	if g.BoardSize == 0 {
		g.BoardSize = history.Last().Size()
	}
	if g.PlayedAt.IsZero() {
		g.PlayedAt = time.Now()
	}

	moves := [][]string{}
	for i, encoded := range history.Encode() {
		moves = append(moves, []string{strconv.Itoa(id), strconv.Itoa(i + 1), encoded})
	}
	if err := a.append(movesFile, movesHeader, moves); err != nil {
		return 0, err
	}
	row := []string{
		strconv.Itoa(g.ID),
		g.PlayerOne,
		g.PlayerTwo,
		strconv.Itoa(int(g.Result)),
		strconv.Itoa(g.BoardSize),
		g.PlayedAt.Format(dateLayout),
		g.PlayedAt.Format(timeLayout),
		strconv.Itoa(g.NumMoves),
	}
	if err := a.append(gamesFile, gamesHeader, [][]string{row}); err != nil {
		return 0, err
	}
	return id, nil
}

// Games lists the games a player took part in, or every game for "".
func (a *Archive) Games(player string) ([]Game, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	games, err := a.readGames()
	if err != nil {
		return nil, err
	}
	if player == "" {
		return games, nil
	}
	var filtered []Game
	for _, g := range games {
		if g.PlayerOne == player || g.PlayerTwo == player {
			filtered = append(filtered, g)
		}
	}
	return filtered, nil
}

// LoadGame returns a stored game and its history for replay.
func (a *Archive) LoadGame(id int) (Game, *game.History, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	games, err := a.readGames()
	if err != nil {
		return Game{}, nil, err
	}
	var found *Game
	for i := range games {
		if games[i].ID == id {
			found = &games[i]
			break
		}
	}
	if found == nil {
		return Game{}, nil, fmt.Errorf("%w: %d", ErrUnknownGame, id)
	}

	rows, err := a.read(movesFile)
	if err != nil {
		return Game{}, nil, err
	}
	byMove := map[int]string{}
	for _, row := range rows {
		gameID, err := strconv.Atoi(row[0])
		if err != nil {
			return Game{}, nil, fmt.Errorf("bad game id %q in %s: %w", row[0], movesFile, err)
		}
		if gameID != id {
			continue
		}
		moveID, err := strconv.Atoi(row[1])
		if err != nil {
			return Game{}, nil, fmt.Errorf("bad move id %q in %s: %w", row[1], movesFile, err)
		}
		byMove[moveID] = row[2]
	}
	encoded := make([]string, 0, len(byMove))
	for i := 1; i <= len(byMove); i++ {
		s, ok := byMove[i]
		if !ok {
			return Game{}, nil, fmt.Errorf("game %d is missing move %d", id, i)
		}
		encoded = append(encoded, s)
	}
	history, err := game.DecodeHistory(encoded)
	if err != nil {
		return Game{}, nil, fmt.Errorf("game %d: %w", id, err)
	}
	return *found, history, nil
}

// Stats aggregates a player's games. AverageMoves rounds half to even.
func (a *Archive) Stats(player string) (Stats, error) {
	games, err := a.Games(player)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Games: len(games)}
	totalMoves := 0
	for _, g := range games {
		totalMoves += g.NumMoves
		if (g.PlayerOne == player && g.Result == game.CampA) || (g.PlayerTwo == player && g.Result == game.CampB) {
			stats.Wins++
		}
	}
	if len(games) > 0 {
		stats.AverageMoves = int(math.RoundToEven(float64(totalMoves) / float64(len(games))))
	}
	return stats, nil
}

func (a *Archive) readPlayers() ([]Player, error) {
	rows, err := a.read(playersFile)
	if err != nil {
		return nil, err
	}
	players := make([]Player, 0, len(rows))
	for _, row := range rows {
		ai, err := strconv.ParseBool(row[1])
		if err != nil {
			return nil, fmt.Errorf("bad ai flag %q in %s: %w", row[1], playersFile, err)
		}
		active, err := strconv.ParseBool(row[2])
		if err != nil {
			return nil, fmt.Errorf("bad active flag %q in %s: %w", row[2], playersFile, err)
		}
		players = append(players, Player{Name: row[0], AI: ai, Active: active})
	}
	return players, nil
}

func (a *Archive) readGames() ([]Game, error) {
	rows, err := a.read(gamesFile)
	if err != nil {
		return nil, err
	}
	games := make([]Game, 0, len(rows))
	for _, row := range rows {
		g, err := parseGame(row)
		if err != nil {
			return nil, fmt.Errorf("bad row in %s: %w", gamesFile, err)
		}
		games = append(games, g)
	}
	return games, nil
}

func parseGame(row []string) (Game, error) {
	var ints [4]int
	for i, idx := range []int{0, 3, 4, 7} {
		n, err := strconv.Atoi(row[idx])
		if err != nil {
			return Game{}, err
		}
		ints[i] = n
	}
	playedAt, err := time.ParseInLocation(dateLayout+" "+timeLayout, row[5]+" "+row[6], time.Local)
	if err != nil {
		return Game{}, err
	}
	return Game{
		ID:        ints[0],
		PlayerOne: row[1],
		PlayerTwo: row[2],
		Result:    game.Camp(ints[1]),
		BoardSize: ints[2],
		PlayedAt:  playedAt,
		NumMoves:  ints[3],
	}, nil
}

// read returns the data rows of a file, without its header. A missing file
// has no rows.
func (a *Archive) read(name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(a.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s header: %w", name, err)
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return rows, nil
}

func (a *Archive) append(name string, header []string, rows [][]string) error {
	path := filepath.Join(a.dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", name, err)
	}
	writer := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write %s header: %w", name, err)
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (a *Archive) rewrite(name string, header []string, rows [][]string) error {
	path := filepath.Join(a.dir, name)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}
