package game

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// Position is an immutable snapshot of a chess position. Legal moves, status
// and fingerprint are computed once on construction so a Position can be read
// from several goroutines.
type Position struct {
	inner   *chess.Position
	moves   []*chess.Move
	status  Status
	inCheck bool
	hash    Hash
	counts  [3][7]int // [color][piece type]
}

// NewPosition wraps a position produced by the rules library.
func NewPosition(inner *chess.Position) *Position {
	p := &Position{
		inner: inner,
		moves: inner.ValidMoves(),
		hash:  fingerprint(inner),
	}

	board := inner.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if piece := board.Piece(sq); piece != chess.NoPiece {
			p.counts[piece.Color()][piece.Type()]++
		}
	}
	if king, ok := kingSquare(board, inner.Turn()); ok {
		p.inCheck = attacked(board, king, inner.Turn().Other())
	}

	switch {
	case len(p.moves) > 0:
		p.status = Ongoing
	case p.inCheck:
		p.status = Checkmate
	default:
		p.status = Stalemate
	}
	return p
}

// StartingPosition returns the standard initial position.
func StartingPosition() *Position {
	return NewPosition(chess.StartingPosition())
}

// FromFEN parses a position in Forsyth-Edwards notation.
func FromFEN(fen string) (*Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid fen %q: %w", fen, err)
	}
	return NewPosition(chess.NewGame(opt).Position()), nil
}

// Inner exposes the wrapped rules-library position.
func (p *Position) Inner() *chess.Position {
	return p.inner
}

func (p *Position) Turn() chess.Color {
	return p.inner.Turn()
}

func (p *Position) Board() *chess.Board {
	return p.inner.Board()
}

// LegalMoves returns a copy of the legal moves in the rules library's
// enumeration order, which is stable for a given position.
func (p *Position) LegalMoves() []*chess.Move {
	return append([]*chess.Move(nil), p.moves...)
}

func (p *Position) NumLegalMoves() int {
	return len(p.moves)
}

// Play returns the successor position. The move must be legal in p.
func (p *Position) Play(m *chess.Move) *Position {
	return NewPosition(p.inner.Update(m))
}

func (p *Position) Status() Status {
	return p.status
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.inCheck
}

func (p *Position) Fingerprint() Hash {
	return p.hash
}

// Count returns how many pieces of type t color c has on the board.
func (p *Position) Count(c chess.Color, t chess.PieceType) int {
	return p.counts[c][t]
}

// NullMove returns the position after the side to move passes. There is no
// null move while the side to move is in check.
func (p *Position) NullMove() (*Position, bool) {
	if p.inCheck {
		return nil, false
	}

	fields := strings.Fields(p.inner.String())
	if len(fields) < 4 {
		return nil, false
	}
	if p.Turn() == chess.White {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"

	next, err := FromFEN(strings.Join(fields, " "))
	if err != nil {
		return nil, false
	}
	return next, true
}

// FindMove returns the legal move matching the given squares and promotion,
// or nil when there is none.
func (p *Position) FindMove(from, to chess.Square, promo chess.PieceType) *chess.Move {
	for _, m := range p.moves {
		if m.S1() == from && m.S2() == to && m.Promo() == promo {
			return m
		}
	}
	return nil
}

// String returns the FEN of the position.
func (p *Position) String() string {
	return p.inner.String()
}
