package game

import "github.com/notnil/chess"

// Hash fingerprints a position for memoization. Transpositions share a Hash.
type Hash uint64

// Score is an evaluation in centipawns relative to one color.
type Score int

const (
	// MateScore is awarded to the color that delivered checkmate.
	MateScore Score = 20000
	// Infinity bounds every reachable score.
	Infinity Score = MateScore + 1
)

// Status is the terminal state of a position as seen by the side to move.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Strategy picks a move for the side to move. A nil move means no move is
// available and is treated by callers as resignation.
//
// Strategies are shared between goroutines and must not mutate pos.
type Strategy func(pos *Position) *chess.Move

// Evaluates pos from color's perspective, given the color whose turn it is.
type Evaluate func(pos *Position, color, toMove chess.Color) Score

// ColorName returns "White" or "Black".
func ColorName(c chess.Color) string {
	switch c {
	case chess.White:
		return "White"
	case chess.Black:
		return "Black"
	default:
		return "Nobody"
	}
}
