package agent

import (
	"fmt"
	"halma/meta"
	"halma/searcher"
)

// FromConfig builds an agent as described in the config file.
func FromConfig(cfg meta.AgentConfig, options ...searcher.Option) (Agent, error) {
	switch cfg.Kind {
	case "minimax":
		if cfg.Depth < 1 {
			return nil, fmt.Errorf("minimax agent needs a depth of at least 1, got %d", cfg.Depth)
		}
		return NewMinimaxAgent(searcher.New(options...), cfg.Depth), nil
	case "random":
		return NewRandomAgent(cfg.Seed), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", cfg.Kind)
	}
}
