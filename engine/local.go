package engine

import (
	"patzer/experiments/metrics"
	"patzer/game"
	"patzer/gamemaster"
	"patzer/meta"
	"patzer/player"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// WithMaxPlies caps the game length. Games hitting the cap have no result.
func WithMaxPlies(plies int) Option {
	return func(e *Local) {
		if plies > 0 {
			e.maxPlies = plies
		}
	}
}

// WithSearchMetrics picks up the metrics the players' searches report.
func WithSearchMetrics(last *metrics.Last) Option {
	return func(e *Local) {
		e.searches = last
	}
}

// WithRecord plays from an existing record, e.g. one set up from a FEN.
func WithRecord(record *gamemaster.Record) Option {
	return func(e *Local) {
		e.record = record
	}
}

// Local plays two computer players against each other on the calling
// goroutine, without think delays.
type Local struct {
	white    player.Player
	black    player.Player
	record   *gamemaster.Record
	maxPlies int
	searches *metrics.Last
}

func NewLocal(white, black player.Player, options ...Option) *Local {
	if _, ok := white.Strategy(); !ok {
		panic("white needs a strategy")
	}
	if _, ok := black.Strategy(); !ok {
		panic("black needs a strategy")
	}
	e := &Local{ // Default values
		white:    white,
		black:    black,
		maxPlies: meta.MAX_PLIES,
	}
	for _, option := range options {
		option(e)
	}
	if e.record == nil {
		e.record = gamemaster.NewRecord(white.Name(), black.Name())
	}
	return e
}

func (e *Local) Record() *gamemaster.Record {
	return e.record
}

// Run executes the game loop until the game is decided. Each turn the mover
// claims a draw if it can, otherwise asks its strategy and resigns when the
// strategy has no move.
func (e *Local) Run() (gamemaster.Result, metrics.GameMetric, []metrics.MoveMetric) {
	r := e.record
	r.Start()
	gameMetric := metrics.GameMetric{
		White:     e.white.Name(),
		Black:     e.black.Name(),
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s (white) vs %s (black)", e.white.Name(), e.black.Name())

	for ply := 1; !r.Finished() && r.Plies() < e.maxPlies; ply++ {
		color := r.Turn()
		p := e.black
		if color == chess.White {
			p = e.white
		}

		if r.ClaimDraw() {
			log.Debug().Msgf("%s claims a draw", game.ColorName(color))
			break
		}

		strategy, _ := p.Strategy()
		start := time.Now()
		move := strategy(r.Position())
		elapsed := time.Since(start)

		search := metrics.SearchMetric{Strategy: p.Name(), Duration: elapsed}
		if e.searches != nil {
			if reported, ok := e.searches.Take(); ok {
				search = reported
				search.Strategy = p.Name()
			}
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Ply:          ply,
			Player:       game.ColorName(color),
			SearchMetric: search,
		})

		if move == nil {
			r.Resign(color)
			break
		}
		if err := r.Play(move); err != nil {
			// A strategy returning an illegal move is a bug in the strategy
			panic(err)
		}
		log.Debug().Msgf("ply %d: %s plays %s", ply, game.ColorName(color), move)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Plies = r.Plies()
	gameMetric.Result = r.Result().String()
	if !r.Finished() {
		gameMetric.Result = "Unfinished"
	}

	log.Info().Msgf("game over after %d plies: %s", r.Plies(), gameMetric.Result)
	return r.Result(), gameMetric, moveMetrics
}
