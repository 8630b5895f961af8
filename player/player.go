package player

import (
	"patzer/game"
	"time"
)

// Kind tags the variant a Player holds.
type Kind int

const (
	Unset Kind = iota
	Human
	Computer
)

func (k Kind) String() string {
	switch k {
	case Human:
		return "human"
	case Computer:
		return "computer"
	default:
		return "unset"
	}
}

// Player is either a human, who only acts through explicit move submission,
// or a computer bound to a strategy. The zero value is an unset seat.
type Player struct {
	kind     Kind
	name     string
	strategy game.Strategy
	delay    time.Duration
}

type Option func(p *Player)

// WithDelay sets the think time a computer waits before committing a move.
func WithDelay(delay time.Duration) Option {
	return func(p *Player) {
		if delay >= 0 {
			p.delay = delay
		}
	}
}

func NewHuman(name string) Player {
	return Player{kind: Human, name: name}
}

func NewComputer(name string, strategy game.Strategy, options ...Option) Player {
	if strategy == nil {
		panic("Computer player needs a strategy")
	}
	p := Player{kind: Computer, name: name, strategy: strategy}
	for _, option := range options {
		option(&p)
	}
	return p
}

func (p Player) Kind() Kind {
	return p.kind
}

func (p Player) Name() string {
	if p.kind == Unset {
		return "(none)"
	}
	return p.name
}

// Strategy returns the bound strategy of a computer. Humans and unset seats
// have none and must not be driven automatically.
func (p Player) Strategy() (game.Strategy, bool) {
	if p.kind != Computer {
		return nil, false
	}
	return p.strategy, true
}

func (p Player) IsHuman() bool {
	return p.kind == Human
}

func (p Player) Delay() time.Duration {
	return p.delay
}

func (p Player) String() string {
	return p.Name() + " (" + p.kind.String() + ")"
}
