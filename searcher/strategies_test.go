package searcher

import (
	"patzer/game"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestFirstLegal(t *testing.T) {
	t.Run("deterministic from the initial position", func(t *testing.T) {
		first := FirstLegal(game.StartingPosition())
		second := FirstLegal(game.StartingPosition())

		require.NotNil(t, first)
		require.Equal(t, first.String(), second.String())
	})

	t.Run("no legal moves", func(t *testing.T) {
		stalemate := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

		require.Nil(t, FirstLegal(stalemate))
	})
}

func TestRandom(t *testing.T) {
	t.Run("returns a legal move", func(t *testing.T) {
		pos := game.StartingPosition()
		for i := 0; i < 20; i++ {
			move := Random(pos)
			require.NotNil(t, move)
			require.NotNil(t, pos.FindMove(move.S1(), move.S2(), move.Promo()))
		}
	})

	t.Run("no legal moves", func(t *testing.T) {
		stalemate := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

		require.Nil(t, Random(stalemate))
	})

	t.Run("sequence is not the fixed default seed", func(t *testing.T) {
		pos := game.StartingPosition()
		moves := pos.LegalMoves()
		fixed := rand.New(rand.NewSource(1))

		same := true
		for i := 0; i < 64; i++ {
			if Random(pos).String() != moves[fixed.Intn(len(moves))].String() {
				same = false
			}
		}

		require.False(t, same, "Random should not replay the seed 1 sequence")
	})

	t.Run("locked source replays its seed", func(t *testing.T) {
		a, b := newLockedRand(7), newLockedRand(7)
		for i := 0; i < 16; i++ {
			require.Equal(t, a.Intn(20), b.Intn(20))
		}
	})
}

func TestHope(t *testing.T) {
	t.Run("takes a free queen", func(t *testing.T) {
		pos := mustFEN(t, "4k3/8/8/3q4/8/2N5/8/4K3 w - - 0 1")

		move := Hope(1)(pos)

		require.NotNil(t, move)
		require.Equal(t, "c3d5", move.String())
	})

	t.Run("prefers mate over material", func(t *testing.T) {
		pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R1n3K1 w - - 0 1")

		move := Hope(2)(pos)

		require.Equal(t, "a1a8", move.String())
	})

	t.Run("leaf scores material difference", func(t *testing.T) {
		pos := mustFEN(t, "4k3/8/8/3q4/8/2N5/8/4K3 w - - 0 1")

		want := game.Material(pos, chess.White) - game.Material(pos, chess.Black)

		require.Equal(t, want, hope(pos, chess.White, 0))
		require.Equal(t, -want, hope(pos, chess.Black, 0))
		require.Negative(t, hope(pos, chess.White, 0), "White is down a queen for a knight")
	})

	t.Run("zero depth panics", func(t *testing.T) {
		require.Panics(t, func() { Hope(0) })
	})
}
