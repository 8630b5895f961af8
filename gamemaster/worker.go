package gamemaster

import (
	"patzer/game"
	"time"

	"github.com/google/uuid"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

// worker drives one computer player for the lifetime of one record.
type worker struct {
	match    *Match
	id       uuid.UUID
	color    chess.Color
	name     string
	strategy game.Strategy
	delay    time.Duration
	done     <-chan struct{}
}

type snapshot struct {
	id        uuid.UUID
	started   bool
	finished  bool
	turn      chess.Color
	position  *game.Position
	claimable bool
}

func (m *Match) snapshot() snapshot {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	return snapshot{
		id:        m.record.ID,
		started:   m.record.Started(),
		finished:  m.record.Finished(),
		turn:      m.record.Turn(),
		position:  m.record.Position(),
		claimable: m.record.CanClaimDraw(),
	}
}

// run polls the match until it is over, reset or this worker resigns. A search
// in progress is not interrupted; a reset takes effect before its move is
// committed.
func (w *worker) run() error {
	logger := log.With().
		Str("match", w.id.String()).
		Str("color", game.ColorName(w.color)).
		Str("player", w.name).
		Logger()
	logger.Debug().Msg("worker started")
	defer func() { logger.Debug().Msg("worker stopped") }()

	for {
		snap := w.match.snapshot()
		if snap.id != w.id || !snap.started || snap.finished {
			return nil
		}
		if snap.turn != w.color {
			if !w.sleep(w.match.pollInterval) {
				return nil
			}
			continue
		}

		if snap.claimable {
			if w.match.claimDraw(w.id, w.color) {
				logger.Info().Msg("claimed draw")
				return nil
			}
		}

		move := w.strategy(snap.position)
		if move == nil {
			logger.Info().Msg("no move available, resigning")
			w.match.resignFor(w.id, w.color)
			return nil
		}
		if !w.sleep(w.delay) {
			return nil
		}
		w.match.commit(w.id, w.color, move)
	}
}

// sleep waits for d and reports false when the match was reset meanwhile.
func (w *worker) sleep(d time.Duration) bool {
	if d <= 0 {
		select {
		case <-w.done:
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-w.done:
		return false
	case <-timer.C:
		return true
	}
}

func (m *Match) claimDraw(id uuid.UUID, color chess.Color) bool {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	if m.record.ID != id || m.record.Turn() != color {
		return false
	}
	return m.record.ClaimDraw()
}

func (m *Match) resignFor(id uuid.UUID, color chess.Color) {
	m.recordMu.Lock()
	defer m.recordMu.Unlock()
	if m.record.ID != id {
		return
	}
	m.record.Resign(color)
}
