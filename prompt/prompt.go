package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"patzer/game"
	"strings"

	"github.com/notnil/chess"
)

var ErrIllegalMove = errors.New("illegal move")

// IsResignation reports whether input is one of the words that give up the
// game.
func IsResignation(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "resign", "quit", "flip board":
		return true
	default:
		return false
	}
}

// ParseMove reads a move in UCI ("e2e4", "a7a8q") or standard algebraic
// ("e4", "Nf3", "O-O") notation and returns the matching legal move of pos.
func ParseMove(pos *game.Position, input string) (*chess.Move, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: empty input", ErrIllegalMove)
	}

	decoded, err := chess.UCINotation{}.Decode(pos.Inner(), input)
	if err != nil {
		decoded, err = chess.AlgebraicNotation{}.Decode(pos.Inner(), input)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrIllegalMove, input)
	}

	m := pos.FindMove(decoded.S1(), decoded.S2(), decoded.Promo())
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrIllegalMove, input)
	}
	return m, nil
}

// Prompt asks a human for moves on a text terminal.
type Prompt struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewScanner(in), out: out}
}

// ReadMove asks until it gets a legal move or a resignation. A nil move means
// the human resigned. Reaching the end of the input is an error.
func (p *Prompt) ReadMove(pos *game.Position) (*chess.Move, error) {
	for {
		fmt.Fprint(p.out, "input your move: ")
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return nil, fmt.Errorf("failed to read move: %w", err)
			}
			return nil, io.EOF
		}

		line := p.in.Text()
		if IsResignation(line) {
			return nil, nil
		}
		m, err := ParseMove(pos, line)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		return m, nil
	}
}

// Show prints the board from white's side and the side to move.
func (p *Prompt) Show(pos *game.Position) {
	fmt.Fprintln(p.out, pos.Board().Draw())
	fmt.Fprintf(p.out, "%s to move\n", game.ColorName(pos.Turn()))
}
