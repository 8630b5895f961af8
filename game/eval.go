package game

import "github.com/notnil/chess"

// Weights parameterize the evaluation. Material values are per piece, PerMove
// is the mobility weight per legal move.
type Weights struct {
	Pawn    Score
	Knight  Score
	Bishop  Score
	Rook    Score
	Queen   Score
	PerMove Score
}

var DefaultWeights = Weights{
	Pawn:    100,
	Knight:  300,
	Bishop:  300,
	Rook:    500,
	Queen:   900,
	PerMove: 10,
}

// Material tallies color's pieces with the default weights.
func Material(pos *Position, color chess.Color) Score {
	return DefaultWeights.Material(pos, color)
}

// Mobility scores color's legal moves with the default weights.
func Mobility(pos *Position, color chess.Color) Score {
	return DefaultWeights.Mobility(pos, color)
}

// EvaluatePosition scores pos from color's perspective with the default weights.
func EvaluatePosition(pos *Position, color, toMove chess.Color) Score {
	return DefaultWeights.Evaluate(pos, color, toMove)
}

func (w Weights) Material(pos *Position, color chess.Color) Score {
	return w.Pawn*Score(pos.Count(color, chess.Pawn)) +
		w.Knight*Score(pos.Count(color, chess.Knight)) +
		w.Bishop*Score(pos.Count(color, chess.Bishop)) +
		w.Rook*Score(pos.Count(color, chess.Rook)) +
		w.Queen*Score(pos.Count(color, chess.Queen))
}

// Mobility counts color's legal moves. For the side not to move the count is
// taken after a null move; it is 0 when the side to move is in check, since no
// null move exists then.
func (w Weights) Mobility(pos *Position, color chess.Color) Score {
	if pos.Turn() == color {
		return w.PerMove * Score(pos.NumLegalMoves())
	}
	passed, ok := pos.NullMove()
	if !ok {
		return 0
	}
	return w.PerMove * Score(passed.NumLegalMoves())
}

// Evaluate scores pos relative to color. When toMove has no legal moves the
// result is 0 for stalemate, MateScore if color delivered the mate and
// -MateScore if color is mated.
func (w Weights) Evaluate(pos *Position, color, toMove chess.Color) Score {
	if pos.NumLegalMoves() == 0 {
		switch {
		case !pos.InCheck():
			return 0
		case toMove != color:
			return MateScore
		default:
			return -MateScore
		}
	}

	opponent := color.Other()
	own := w.Material(pos, color) + w.Mobility(pos, color)
	theirs := w.Material(pos, opponent) + w.Mobility(pos, opponent)
	return own - theirs
}
