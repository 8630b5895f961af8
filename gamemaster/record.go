package gamemaster

import (
	"errors"
	"fmt"
	"patzer/game"

	"github.com/google/uuid"
	"github.com/notnil/chess"
)

var (
	ErrNotStarted  = errors.New("match not started")
	ErrFinished    = errors.New("match already finished")
	ErrIllegalMove = errors.New("illegal move")
)

// Result is the terminal outcome of a match. NoResult while it is running.
type Result int

const (
	NoResult Result = iota
	WhiteCheckmates
	BlackCheckmates
	WhiteResigns
	BlackResigns
	Stalemate
	DrawDeclared
	DrawAgreed
)

func (r Result) String() string {
	switch r {
	case WhiteCheckmates:
		return "White wins (checkmate)"
	case BlackResigns:
		return "White wins (black resigned)"
	case BlackCheckmates:
		return "Black wins (checkmate)"
	case WhiteResigns:
		return "Black wins (white resigned)"
	case Stalemate:
		return "Draw by stalemate"
	case DrawDeclared:
		return "Draw declared"
	case DrawAgreed:
		return "Draw by agreement"
	default:
		return "In progress"
	}
}

// Winner returns the winning color, or chess.NoColor for draws and running
// matches.
func (r Result) Winner() chess.Color {
	switch r {
	case WhiteCheckmates, BlackResigns:
		return chess.White
	case BlackCheckmates, WhiteResigns:
		return chess.Black
	default:
		return chess.NoColor
	}
}

// Record is the authoritative state of one match: the move history, the
// cached current position, whether play has started and how it ended. Once a
// result is set it stays set; only replacing the Record clears it.
//
// Record is not safe for concurrent use. Match guards it with a lock.
type Record struct {
	ID        uuid.UUID
	White     string
	Black     string
	game      *chess.Game
	position  *game.Position
	started   bool
	result    Result
	drawOffer chess.Color
}

func NewRecord(white, black string) *Record {
	return newRecord(white, black, chess.NewGame())
}

// NewRecordFromFEN starts the match from a custom position.
func NewRecordFromFEN(white, black, fen string) (*Record, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid fen %q: %w", fen, err)
	}
	return newRecord(white, black, chess.NewGame(opt)), nil
}

func newRecord(white, black string, g *chess.Game) *Record {
	g.AddTagPair("White", white)
	g.AddTagPair("Black", black)
	return &Record{
		ID:       uuid.New(),
		White:    white,
		Black:    black,
		game:     g,
		position: game.NewPosition(g.Position()),
	}
}

func (r *Record) Start() {
	r.started = true
}

func (r *Record) Started() bool {
	return r.started
}

func (r *Record) Finished() bool {
	return r.result != NoResult
}

func (r *Record) Result() Result {
	return r.result
}

func (r *Record) Position() *game.Position {
	return r.position
}

func (r *Record) Turn() chess.Color {
	return r.position.Turn()
}

// Plies returns the number of half-moves played.
func (r *Record) Plies() int {
	return len(r.game.Moves())
}

// Play applies m and re-evaluates the result in the same step.
func (r *Record) Play(m *chess.Move) error {
	if !r.started {
		return ErrNotStarted
	}
	if r.Finished() {
		return ErrFinished
	}
	if m == nil || r.position.FindMove(m.S1(), m.S2(), m.Promo()) == nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, m)
	}
	if err := r.game.Move(m); err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	r.position = game.NewPosition(r.game.Position())
	r.drawOffer = chess.NoColor
	r.result = resultOf(r.game)
	return nil
}

// Resign ends the match in favour of color's opponent. It reports false when
// the match is already over.
func (r *Record) Resign(color chess.Color) bool {
	if r.Finished() || color == chess.NoColor {
		return false
	}
	r.game.Resign(color)
	if color == chess.White {
		r.result = WhiteResigns
	} else {
		r.result = BlackResigns
	}
	return true
}

// CanClaimDraw reports whether threefold repetition or the fifty-move rule
// lets the side to move claim a draw.
func (r *Record) CanClaimDraw() bool {
	return claimable(r.game) != chess.NoMethod
}

// ClaimDraw declares a draw when the rules allow it.
func (r *Record) ClaimDraw() bool {
	if r.Finished() {
		return false
	}
	method := claimable(r.game)
	if method == chess.NoMethod {
		return false
	}
	if err := r.game.Draw(method); err != nil {
		return false
	}
	r.result = DrawDeclared
	return true
}

// OfferDraw records color's offer. The offer lapses when the next move is
// played.
func (r *Record) OfferDraw(color chess.Color) bool {
	if !r.started || r.Finished() || color == chess.NoColor {
		return false
	}
	r.drawOffer = color
	return true
}

// AcceptDraw ends the match by agreement if the opponent has an open offer.
func (r *Record) AcceptDraw(color chess.Color) bool {
	if r.Finished() || r.drawOffer == chess.NoColor || r.drawOffer == color {
		return false
	}
	if err := r.game.Draw(chess.DrawOffer); err != nil {
		return false
	}
	r.result = DrawAgreed
	return true
}

func (r *Record) DrawOffer() chess.Color {
	return r.drawOffer
}

// StatusText describes the match for display.
func (r *Record) StatusText() string {
	if !r.started {
		return "Not started"
	}
	return r.result.String()
}

// PGN exports the move history.
func (r *Record) PGN() string {
	return r.game.String()
}

func claimable(g *chess.Game) chess.Method {
	for _, method := range g.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			return method
		}
	}
	return chess.NoMethod
}

// resultOf maps the rules library's outcome after a move. Draws it applies on
// its own (fivefold repetition, the 75-move rule, dead positions) count as
// declared.
func resultOf(g *chess.Game) Result {
	switch g.Outcome() {
	case chess.WhiteWon:
		return WhiteCheckmates
	case chess.BlackWon:
		return BlackCheckmates
	case chess.Draw:
		if g.Method() == chess.Stalemate {
			return Stalemate
		}
		return DrawDeclared
	default:
		return NoResult
	}
}
