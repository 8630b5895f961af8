package searcher

import (
	"patzer/game"
	"sort"
	"time"

	"github.com/notnil/chess"
	"golang.org/x/exp/rand"
)

// FirstLegal plays the first move of the legal move enumeration.
func FirstLegal(pos *game.Position) *chess.Move {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return nil
	}
	return moves[0]
}

// random is seeded from the clock at start up and safe for concurrent use.
var random = newLockedRand(uint64(time.Now().UnixNano()))

func newLockedRand(seed uint64) *rand.Rand {
	src := &rand.LockedSource{}
	src.Seed(seed)
	return rand.New(src)
}

// Random plays a uniformly sampled legal move.
func Random(pos *game.Position) *chess.Move {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return nil
	}
	return moves[random.Intn(len(moves))]
}

// orderMoves shuffles moves, then moves checks, captures and promotions to the
// front. A hint from the transposition table goes first.
func orderMoves(moves []*chess.Move, hint *chess.Move, rng *rand.Rand) []*chess.Move {
	rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
	sort.SliceStable(moves, func(i, j int) bool {
		return priority(moves[i], hint) > priority(moves[j], hint)
	})
	return moves
}

func priority(m, hint *chess.Move) int {
	switch {
	case hint != nil && m.S1() == hint.S1() && m.S2() == hint.S2() && m.Promo() == hint.Promo():
		return 4
	case m.HasTag(chess.Check):
		return 3
	case m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant):
		return 2
	case m.Promo() != chess.NoPieceType:
		return 1
	default:
		return 0
	}
}
