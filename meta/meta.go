// meta/meta.go
package meta

import "time"

// DEFAULT_DEPTH is the fixed search depth of the alpha-beta strategy.
const DEFAULT_DEPTH = 4

// HOPE_DEPTH is the lookahead of the greedy "hope" strategy.
const HOPE_DEPTH = 2

// TABLE_SIZE is the number of transposition table slots per decision.
const TABLE_SIZE = 1 << 16

// POLL_INTERVAL is how often a computer player checks whether it is its turn.
const POLL_INTERVAL = 100 * time.Millisecond

// Artificial think time per strategy before a computer move is committed.
const (
	FIRST_LEGAL_DELAY = 300 * time.Millisecond
	RANDOM_DELAY      = 500 * time.Millisecond
	HOPE_DELAY        = 700 * time.Millisecond
	ALPHA_BETA_DELAY  = 1 * time.Second
)

// MAX_PLIES caps headless games.
const MAX_PLIES = 500
