package searcher

import (
	"patzer/game"

	"github.com/notnil/chess"
)

// Hope looks depth plies ahead and plays toward the line that is best for the
// mover's material, assuming the opponent cooperates. Leaves score the mover's
// material minus the opponent's, so a capture counts as a gain. Mate and
// stalemate reached inside the horizon score as they would for the alpha-beta
// search.
func Hope(depth int) game.Strategy {
	if depth < 1 {
		panic("Hope depth must be at least 1")
	}
	return func(pos *game.Position) *chess.Move {
		mover := pos.Turn()
		var best *chess.Move
		bestScore := -game.Infinity
		for _, move := range pos.LegalMoves() {
			score := hope(pos.Play(move), mover, depth-1)
			if best == nil || score > bestScore {
				best, bestScore = move, score
			}
		}
		return best
	}
}

func hope(pos *game.Position, mover chess.Color, depthLeft int) game.Score {
	switch pos.Status() {
	case game.Checkmate:
		if pos.Turn() == mover {
			return -game.MateScore
		}
		return game.MateScore
	case game.Stalemate:
		return 0
	}
	if depthLeft == 0 {
		return game.Material(pos, mover) - game.Material(pos, mover.Other())
	}

	best := -game.Infinity
	for _, move := range pos.LegalMoves() {
		best = max(best, hope(pos.Play(move), mover, depthLeft-1))
	}
	return best
}
