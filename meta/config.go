package meta

import (
	"fmt"
	"halma/game"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AgentConfig struct {
	Kind  string `yaml:"kind"` // "minimax" or "random"
	Depth int    `yaml:"depth"`
	Seed  uint64 `yaml:"seed"`
}

type Config struct {
	BoardSize     int           `yaml:"board_size"`
	MaxTurns      int           `yaml:"max_turns"`
	LogLevel      string        `yaml:"log_level"`
	ArchiveDir    string        `yaml:"archive_dir"`
	AnalysisDepth int           `yaml:"analysis_depth"`
	AnalysisTime  time.Duration `yaml:"analysis_time"`
	Games         int           `yaml:"games"` // per experiment matchup
	Goroutines    int           `yaml:"goroutines"`
	Agents        []AgentConfig `yaml:"agents"`
}

func Default() Config {
	return Config{
		BoardSize:     DEFAULT_BOARD_SIZE,
		MaxTurns:      MAX_TURNS,
		LogLevel:      "info",
		ArchiveDir:    "archive",
		AnalysisDepth: MAX_ANALYSIS_DEPTH,
		AnalysisTime:  10 * time.Second,
		Games:         10,
		Goroutines:    GO_ROUTINES,
		Agents: []AgentConfig{
			{Kind: "minimax", Depth: DEFAULT_DEPTH},
			{Kind: "minimax", Depth: DEFAULT_DEPTH},
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := game.RegionsFor(c.BoardSize); err != nil {
		return err
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns)
	}
	if c.AnalysisDepth < 1 {
		return fmt.Errorf("analysis_depth must be at least 1, got %d", c.AnalysisDepth)
	}
	for i, a := range c.Agents {
		switch a.Kind {
		case "minimax":
			if a.Depth < 1 || a.Depth > MAX_DIFFICULTY {
				return fmt.Errorf("agent %d: depth must be 1..%d, got %d", i, MAX_DIFFICULTY, a.Depth)
			}
		case "random":
		default:
			return fmt.Errorf("agent %d: unknown kind %q", i, a.Kind)
		}
	}
	return nil
}
