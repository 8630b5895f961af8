package gamemaster

import (
	"errors"
	"patzer/game"
	"patzer/meta"
	"patzer/player"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrMatchStarted = errors.New("players cannot change while a match is started")

type Option func(m *Match)

// WithPollInterval sets how often computer workers check for their turn.
func WithPollInterval(interval time.Duration) Option {
	return func(m *Match) {
		if interval > 0 {
			m.pollInterval = interval
		}
	}
}

// WithDelayScale multiplies every computer's think delay. Zero disables them.
func WithDelayScale(scale float64) Option {
	return func(m *Match) {
		if scale >= 0 {
			m.delayScale = scale
		}
	}
}

type selection struct {
	square chess.Square
	ok     bool
}

// Match is the shared match core. The record, the square selection, the
// players and the worker registry each sit behind their own lock and no
// method holds two of them at once.
type Match struct {
	pollInterval time.Duration
	delayScale   float64
	fen          string // starting position, standard when empty

	recordMu sync.Mutex
	record   *Record

	selectionMu sync.Mutex
	selection   selection

	playersMu     sync.Mutex
	white         player.Player
	black         player.Player
	playersLocked bool // set by Start, cleared by Reset

	workersMu sync.Mutex
	workers   *errgroup.Group
	done      chan struct{}
}

func NewMatch(white, black player.Player, options ...Option) *Match {
	m := &Match{ // Default values
		pollInterval: meta.POLL_INTERVAL,
		delayScale:   1,
		white:        white,
		black:        black,
		record:       NewRecord(white.Name(), black.Name()),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// NewMatchFromFEN sets up a match from a custom starting position.
func NewMatchFromFEN(white, black player.Player, fen string, options ...Option) (*Match, error) {
	record, err := NewRecordFromFEN(white.Name(), black.Name(), fen)
	if err != nil {
		return nil, err
	}
	m := NewMatch(white, black, options...)
	m.record = record
	m.fen = fen
	return m, nil
}

// Start marks the match as started and spawns one worker per computer player.
// Starting a started match does nothing.
func (m *Match) Start() {
	m.recordMu.Lock()
	if m.record.Started() {
		m.recordMu.Unlock()
		return
	}
	m.record.Start()
	id := m.record.ID
	m.recordMu.Unlock()

	white, black := m.lockPlayers()

	m.workersMu.Lock()
	defer m.workersMu.Unlock()
	m.workers = &errgroup.Group{}
	m.done = make(chan struct{})
	for color, p := range map[chess.Color]player.Player{chess.White: white, chess.Black: black} {
		strategy, ok := p.Strategy()
		if !ok {
			continue
		}
		w := &worker{
			match:    m,
			id:       id,
			color:    color,
			name:     p.Name(),
			strategy: strategy,
			delay:    time.Duration(float64(p.Delay()) * m.delayScale),
			done:     m.done,
		}
		m.workers.Go(w.run)
	}
	log.Info().Str("match", id.String()).Str("white", white.Name()).Str("black", black.Name()).Msg("match started")
}

// Reset replaces the record with a fresh one and clears the selection, then
// blocks until every worker of the previous match has exited.
func (m *Match) Reset() {
	fresh := m.newRecord()

	m.recordMu.Lock()
	old := m.record.ID
	m.record = fresh
	m.recordMu.Unlock()

	m.playersMu.Lock()
	m.playersLocked = false
	m.playersMu.Unlock()

	m.selectionMu.Lock()
	m.selection = selection{}
	m.selectionMu.Unlock()

	m.workersMu.Lock()
	workers, done := m.workers, m.done
	m.workers, m.done = nil, nil
	m.workersMu.Unlock()

	if done != nil {
		close(done)
	}
	if workers != nil {
		if err := workers.Wait(); err != nil {
			log.Error().Err(err).Msg("worker failed")
		}
	}
	log.Info().Str("previous", old.String()).Str("match", fresh.ID.String()).Msg("match reset")
}

// Wait blocks until the workers of the current match exit, which happens once
// the match is finished or reset.
func (m *Match) Wait() error {
	m.workersMu.Lock()
	workers := m.workers
	m.workersMu.Unlock()
	if workers == nil {
		return nil
	}
	return workers.Wait()
}

// SetPlayer assigns the player for color. Assignments are fixed from Start
// until the next Reset.
func (m *Match) SetPlayer(color chess.Color, p player.Player) error {
	m.playersMu.Lock()
	if m.playersLocked {
		m.playersMu.Unlock()
		return ErrMatchStarted
	}
	if color == chess.White {
		m.white = p
	} else {
		m.black = p
	}
	m.playersMu.Unlock()

	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	if color == chess.White {
		m.record.White = p.Name()
	} else {
		m.record.Black = p.Name()
	}
	m.record.game.AddTagPair(game.ColorName(color), p.Name())
	return nil
}

func (m *Match) newRecord() *Record {
	white, black := m.players()
	if m.fen != "" {
		if record, err := NewRecordFromFEN(white.Name(), black.Name(), m.fen); err == nil {
			return record
		}
	}
	return NewRecord(white.Name(), black.Name())
}

func (m *Match) players() (player.Player, player.Player) {
	m.playersMu.Lock()
	defer m.playersMu.Unlock()
	return m.white, m.black
}

// lockPlayers fixes the assignments and returns them. Any SetPlayer that
// returned nil before this point is part of the snapshot.
func (m *Match) lockPlayers() (player.Player, player.Player) {
	m.playersMu.Lock()
	defer m.playersMu.Unlock()
	m.playersLocked = true
	return m.white, m.black
}

func (m *Match) PlayerNames() (string, string) {
	white, black := m.players()
	return white.Name(), black.Name()
}

// HumanToMove reports whether the side to move is played by a human.
func (m *Match) HumanToMove() bool {
	turn := m.Position().Turn()
	white, black := m.players()
	if turn == chess.White {
		return white.IsHuman()
	}
	return black.IsHuman()
}

// SubmitMove plays a human move. Submissions that are out of turn, illegal
// or made outside a running match are ignored.
func (m *Match) SubmitMove(from, to chess.Square, promo chess.PieceType) {
	m.recordMu.Lock()
	id, turn := m.record.ID, m.record.Turn()
	m.recordMu.Unlock()

	white, black := m.players()
	if (turn == chess.White && !white.IsHuman()) || (turn == chess.Black && !black.IsHuman()) {
		return
	}

	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	if m.record.ID != id || m.record.Turn() != turn {
		return
	}
	move := m.record.Position().FindMove(from, to, promo)
	if move == nil {
		return
	}
	if err := m.record.Play(move); err != nil {
		log.Debug().Err(err).Str("move", move.String()).Msg("ignored human move")
	}
}

// commit plays a computer move into the record it was computed for. Moves
// meant for a replaced record are dropped.
func (m *Match) commit(id uuid.UUID, color chess.Color, move *chess.Move) {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	if m.record.ID != id {
		log.Warn().Str("match", id.String()).Str("move", move.String()).Msg("dropped move for replaced match")
		return
	}
	if m.record.Turn() != color {
		return
	}
	if err := m.record.Play(move); err != nil {
		log.Warn().Err(err).Str("match", id.String()).Msg("computer move rejected")
		return
	}
	if m.record.Finished() {
		log.Info().Str("match", id.String()).Stringer("result", m.record.Result()).Msg("match finished")
	}
}

// Resign ends the match in favour of color's opponent.
func (m *Match) Resign(color chess.Color) {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	if m.record.Started() && m.record.Resign(color) {
		log.Info().Str("match", m.record.ID.String()).Stringer("result", m.record.Result()).Msg("match finished")
	}
}

// DeclareDraw claims a draw for color. It fails when it is not color's turn or
// neither threefold repetition nor the fifty-move rule applies.
func (m *Match) DeclareDraw(color chess.Color) bool {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	if !m.record.Started() || m.record.Turn() != color {
		return false
	}
	return m.record.ClaimDraw()
}

func (m *Match) OfferDraw(color chess.Color) bool {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return m.record.OfferDraw(color)
}

func (m *Match) AcceptDraw(color chess.Color) bool {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return m.record.AcceptDraw(color)
}

func (m *Match) Position() *game.Position {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return m.record.Position()
}

func (m *Match) Result() Result {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return m.record.Result()
}

func (m *Match) StatusMessage() string {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return m.record.StatusText()
}

func (m *Match) IsStarted() bool {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return m.record.Started()
}

func (m *Match) IsFinished() bool {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return m.record.Finished()
}

func (m *Match) ID() uuid.UUID {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return m.record.ID
}

func (m *Match) Plies() int {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return m.record.Plies()
}

func (m *Match) PGN() string {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return m.record.PGN()
}

// SelectedSquare returns the highlighted square, if any.
func (m *Match) SelectedSquare() (chess.Square, bool) {
	m.selectionMu.Lock()
	defer m.selectionMu.Unlock()
	return m.selection.square, m.selection.ok
}

// SelectSquare highlights sq while the match is running.
func (m *Match) SelectSquare(sq chess.Square) {
	if !m.IsStarted() || m.IsFinished() {
		return
	}
	m.selectionMu.Lock()
	defer m.selectionMu.Unlock()
	m.selection = selection{square: sq, ok: true}
}

func (m *Match) ClearSelection() {
	m.selectionMu.Lock()
	defer m.selectionMu.Unlock()
	m.selection = selection{}
}
