// meta/meta.go
package meta

// GO_ROUTINES defines how many experiment games run at once.
const GO_ROUTINES = 8

// DEFAULT_DEPTH defines the search depth of the computer opponent.
const DEFAULT_DEPTH = 3

// MAX_DIFFICULTY defines the deepest search offered to players.
const MAX_DIFFICULTY = 5

// MAX_ANALYSIS_DEPTH defines where iterative deepening stops on its own.
const MAX_ANALYSIS_DEPTH = 19

// DEFAULT_BOARD_SIZE defines the board used when none is configured.
const DEFAULT_BOARD_SIZE = 10

// MAX_TURNS defines when a game between agents is abandoned.
const MAX_TURNS = 300
