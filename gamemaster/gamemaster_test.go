package gamemaster

import (
	"patzer/game"
	"patzer/player"
	"patzer/searcher"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
)

const (
	poll    = 5 * time.Millisecond
	timeout = 5 * time.Second
)

func resigner(pos *game.Position) *chess.Move {
	return nil
}

// shuffler moves the king's knight back and forth.
func shuffler(pos *game.Position) *chess.Move {
	if m := pos.FindMove(chess.G8, chess.F6, chess.NoPieceType); m != nil {
		return m
	}
	return pos.FindMove(chess.F6, chess.G8, chess.NoPieceType)
}

func submit(t *testing.T, m *Match, uci string) {
	t.Helper()
	decoded, err := chess.UCINotation{}.Decode(m.Position().Inner(), uci)
	require.NoError(t, err)
	m.SubmitMove(decoded.S1(), decoded.S2(), decoded.Promo())
}

// counting wraps a strategy and counts its invocations.
func counting(calls *atomic.Int64, strategy game.Strategy) game.Strategy {
	return func(pos *game.Position) *chess.Move {
		calls.Add(1)
		return strategy(pos)
	}
}

func TestMatchReset(t *testing.T) {
	t.Run("reset joins both workers and nothing reaches the new record", func(t *testing.T) {
		var calls atomic.Int64
		white := player.NewComputer("white", counting(&calls, searcher.Random), player.WithDelay(20*time.Millisecond))
		black := player.NewComputer("black", counting(&calls, searcher.Random), player.WithDelay(20*time.Millisecond))
		m := NewMatch(white, black, WithPollInterval(poll))
		oldID := m.ID()

		m.Start()
		m.Reset()

		after := calls.Load()
		require.NotEqual(t, oldID, m.ID(), "Reset should install a new record")
		require.False(t, m.IsStarted())
		require.Equal(t, 0, m.Plies())

		time.Sleep(100 * time.Millisecond)
		require.Equal(t, after, calls.Load(), "No worker should run after reset returned")
		require.Equal(t, 0, m.Plies(), "No move should reach the new record")
		require.Equal(t, "Not started", m.StatusMessage())
	})

	t.Run("reset mid-game", func(t *testing.T) {
		white := player.NewComputer("white", searcher.FirstLegal)
		black := player.NewComputer("black", searcher.FirstLegal)
		m := NewMatch(white, black, WithPollInterval(poll))

		m.Start()
		require.Eventually(t, func() bool { return m.Plies() >= 4 }, timeout, poll)
		m.Reset()

		require.Equal(t, 0, m.Plies())
		require.Equal(t, NoResult, m.Result())
		require.NoError(t, m.Wait())
	})

	t.Run("reset restores a custom start position", func(t *testing.T) {
		fen := "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
		m, err := NewMatchFromFEN(player.NewHuman("a"), player.NewHuman("b"), fen)
		require.NoError(t, err)

		m.Start()
		m.SubmitMove(chess.E2, chess.E4, chess.NoPieceType)
		m.Reset()

		require.Equal(t, fen, m.Position().String())
	})
}

func TestMatchWorkers(t *testing.T) {
	t.Run("computer without a move resigns", func(t *testing.T) {
		white := player.NewComputer("first", searcher.FirstLegal)
		black := player.NewComputer("quitter", resigner)
		m := NewMatch(white, black, WithPollInterval(poll))

		m.Start()
		require.NoError(t, m.Wait())

		require.Equal(t, BlackResigns, m.Result())
		require.Equal(t, "White wins (black resigned)", m.StatusMessage())
		require.Equal(t, 1, m.Plies())
		require.True(t, m.IsFinished())
	})

	t.Run("computer answers a human move", func(t *testing.T) {
		m := NewMatch(player.NewHuman("me"), player.NewComputer("bot", searcher.FirstLegal), WithPollInterval(poll))
		m.Start()
		require.True(t, m.HumanToMove())

		m.SubmitMove(chess.E2, chess.E4, chess.NoPieceType)

		require.Eventually(t, func() bool { return m.Plies() == 2 }, timeout, poll)
		require.True(t, m.HumanToMove())
		m.Reset()
	})

	t.Run("computer plays into mate", func(t *testing.T) {
		fen := "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"
		bot := player.NewComputer("bot", searcher.NewAlphaBeta(searcher.WithDepth(1), searcher.WithTableSize(1<<10)).Strategy())
		m, err := NewMatchFromFEN(bot, player.NewHuman("me"), fen, WithPollInterval(poll))
		require.NoError(t, err)

		m.Start()
		require.NoError(t, m.Wait())

		require.Equal(t, WhiteCheckmates, m.Result())
	})

	t.Run("computer claims a repetition draw", func(t *testing.T) {
		m := NewMatch(player.NewHuman("me"), player.NewComputer("shuffler", shuffler), WithPollInterval(poll))
		m.Start()

		for i, uci := range []string{"g1f3", "f3g1", "g1f3", "f3g1", "g1f3"} {
			submit(t, m, uci)
			if i < 4 {
				require.Eventually(t, func() bool { return m.Plies() == 2*(i+1) }, timeout, poll)
			}
		}
		require.NoError(t, m.Wait())

		require.Equal(t, DrawDeclared, m.Result())
		require.Equal(t, 9, m.Plies())
	})
}

func TestMatchHumanInput(t *testing.T) {
	t.Run("moves before start are ignored", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))

		m.SubmitMove(chess.E2, chess.E4, chess.NoPieceType)

		require.Equal(t, 0, m.Plies())
	})

	t.Run("illegal and malformed moves are ignored", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))
		m.Start()

		m.SubmitMove(chess.E2, chess.E5, chess.NoPieceType)
		m.SubmitMove(chess.E7, chess.E5, chess.NoPieceType)
		m.SubmitMove(chess.NoSquare, chess.E4, chess.NoPieceType)
		m.SubmitMove(chess.E2, chess.E4, chess.Queen)

		require.Equal(t, 0, m.Plies())
		require.Equal(t, "In progress", m.StatusMessage())
	})

	t.Run("legal move is applied", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))
		m.Start()

		m.SubmitMove(chess.E2, chess.E4, chess.NoPieceType)

		require.Equal(t, 1, m.Plies())
		require.Equal(t, chess.Black, m.Position().Turn())
	})

	t.Run("computer's turn ignores human input", func(t *testing.T) {
		bot := player.NewComputer("bot", searcher.FirstLegal, player.WithDelay(time.Second))
		m := NewMatch(bot, player.NewHuman("b"), WithPollInterval(poll))
		m.Start()

		m.SubmitMove(chess.E2, chess.E4, chess.NoPieceType)

		require.Equal(t, 0, m.Plies())
		require.False(t, m.HumanToMove())
		m.Reset()
	})

	t.Run("resigning before start is ignored", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))

		m.Resign(chess.White)

		require.Equal(t, NoResult, m.Result())
	})

	t.Run("promotion needs the promotion piece", func(t *testing.T) {
		m, err := NewMatchFromFEN(player.NewHuman("a"), player.NewHuman("b"), "7k/P7/8/8/8/8/8/K7 w - - 0 1")
		require.NoError(t, err)
		m.Start()

		m.SubmitMove(chess.A7, chess.A8, chess.NoPieceType)
		require.Equal(t, 0, m.Plies())

		m.SubmitMove(chess.A7, chess.A8, chess.Queen)
		require.Equal(t, 1, m.Plies())
	})
}

func TestMatchDraws(t *testing.T) {
	t.Run("declaring out of turn fails", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))
		m.Start()

		require.False(t, m.DeclareDraw(chess.Black))
		require.Equal(t, NoResult, m.Result())
	})

	t.Run("declaring without a claim fails", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))
		m.Start()

		require.False(t, m.DeclareDraw(chess.White))
	})

	t.Run("declaring after repetition", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))
		m.Start()
		for _, uci := range repetition {
			submit(t, m, uci)
		}
		require.Equal(t, len(repetition), m.Plies())

		require.False(t, m.DeclareDraw(chess.Black))
		require.True(t, m.DeclareDraw(chess.White))
		require.Equal(t, DrawDeclared, m.Result())
	})

	t.Run("offer and accept", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))
		m.Start()

		require.True(t, m.OfferDraw(chess.Black))
		require.True(t, m.AcceptDraw(chess.White))
		require.Equal(t, "Draw by agreement", m.StatusMessage())
	})

	t.Run("resign", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))
		m.Start()

		m.Resign(chess.Black)

		require.Equal(t, BlackResigns, m.Result())
		require.True(t, m.IsFinished())
	})
}

func TestMatchPlayers(t *testing.T) {
	t.Run("players change before start", func(t *testing.T) {
		m := NewMatch(player.Player{}, player.Player{})
		white, black := m.PlayerNames()
		require.Equal(t, "(none)", white)
		require.Equal(t, "(none)", black)

		require.NoError(t, m.SetPlayer(chess.White, player.NewHuman("Alice")))
		require.NoError(t, m.SetPlayer(chess.Black, player.NewHuman("Bob")))

		white, black = m.PlayerNames()
		require.Equal(t, "Alice", white)
		require.Equal(t, "Bob", black)
		require.Contains(t, m.PGN(), `[White "Alice"]`)
	})

	t.Run("players are fixed while started", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))
		m.Start()

		err := m.SetPlayer(chess.White, player.NewComputer("bot", searcher.FirstLegal))

		require.ErrorIs(t, err, ErrMatchStarted)
		require.True(t, m.HumanToMove())

		m.Reset()
		require.NoError(t, m.SetPlayer(chess.White, player.NewComputer("bot", searcher.FirstLegal)))
		require.False(t, m.HumanToMove())
	})

	t.Run("accepted assignment racing start gets a worker", func(t *testing.T) {
		m := NewMatch(player.NewHuman("a"), player.NewHuman("b"), WithPollInterval(poll), WithDelayScale(0))

		for round := 0; round < 50; round++ {
			var calls atomic.Int64
			bot := player.NewComputer("bot", counting(&calls, searcher.FirstLegal))

			var wg sync.WaitGroup
			var err error
			wg.Add(2)
			go func() {
				defer wg.Done()
				err = m.SetPlayer(chess.White, bot)
			}()
			go func() {
				defer wg.Done()
				m.Start()
			}()
			wg.Wait()

			if err == nil {
				require.Eventually(t, func() bool { return calls.Load() > 0 }, timeout, poll,
					"Round %d: accepted computer player should be played", round)
			} else {
				require.ErrorIs(t, err, ErrMatchStarted)
				require.True(t, m.HumanToMove(), "Round %d: rejected player should not be assigned", round)
			}

			m.Reset()
			require.NoError(t, m.SetPlayer(chess.White, player.NewHuman("a")))
		}
	})
}

func TestMatchSelection(t *testing.T) {
	m := NewMatch(player.NewHuman("a"), player.NewHuman("b"))

	m.SelectSquare(chess.E2)
	_, ok := m.SelectedSquare()
	require.False(t, ok, "Selection is disabled before start")

	m.Start()
	m.SelectSquare(chess.E2)
	sq, ok := m.SelectedSquare()
	require.True(t, ok)
	require.Equal(t, chess.E2, sq)

	m.ClearSelection()
	_, ok = m.SelectedSquare()
	require.False(t, ok)

	m.SelectSquare(chess.D2)
	m.Reset()
	_, ok = m.SelectedSquare()
	require.False(t, ok, "Reset clears the selection")
}
