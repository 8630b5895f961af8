package game

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
)

func mustFEN(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := FromFEN(fen)
	require.NoError(t, err)
	return pos
}

func play(t *testing.T, pos *Position, moves ...string) *Position {
	t.Helper()
	for _, s := range moves {
		decoded, err := chess.UCINotation{}.Decode(pos.Inner(), s)
		require.NoError(t, err, "decoding %s", s)
		m := pos.FindMove(decoded.S1(), decoded.S2(), decoded.Promo())
		require.NotNil(t, m, "%s should be legal in %s", s, pos)
		pos = pos.Play(m)
	}
	return pos
}

func TestFingerprint(t *testing.T) {
	t.Run("transpositions collide", func(t *testing.T) {
		a := play(t, StartingPosition(), "g1f3", "g8f6", "b1c3")
		b := play(t, StartingPosition(), "b1c3", "g8f6", "g1f3")

		require.Equal(t, a.Fingerprint(), b.Fingerprint(), "Same position reached by different move orders should share a fingerprint")
	})

	t.Run("side to move changes the fingerprint", func(t *testing.T) {
		white := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
		black := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1")

		require.NotEqual(t, white.Fingerprint(), black.Fingerprint())
	})

	t.Run("clocks do not change the fingerprint", func(t *testing.T) {
		a := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
		b := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 12 40")

		require.Equal(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("castling rights change the fingerprint", func(t *testing.T) {
		a := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		b := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1")

		require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})
}

func TestStatus(t *testing.T) {
	t.Run("starting position is ongoing", func(t *testing.T) {
		pos := StartingPosition()

		require.Equal(t, Ongoing, pos.Status())
		require.Equal(t, 20, pos.NumLegalMoves())
		require.False(t, pos.InCheck())
	})

	t.Run("checkmate", func(t *testing.T) {
		pos := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")

		require.Equal(t, Checkmate, pos.Status())
		require.True(t, pos.InCheck())
	})

	t.Run("stalemate", func(t *testing.T) {
		pos := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

		require.Equal(t, Stalemate, pos.Status())
		require.False(t, pos.InCheck())
	})

	t.Run("check with legal replies", func(t *testing.T) {
		pos := mustFEN(t, "rnbqkbnr/ppp2ppp/8/1B1pp3/4P3/8/PPPP1PPP/RNBQK1NR b KQkq - 1 3")

		require.Equal(t, Ongoing, pos.Status())
		require.True(t, pos.InCheck())
	})
}

func TestNullMove(t *testing.T) {
	t.Run("passing hands the turn to the other side", func(t *testing.T) {
		pos := play(t, StartingPosition(), "e2e4")

		passed, ok := pos.NullMove()

		require.True(t, ok)
		require.Equal(t, chess.White, passed.Turn())
		require.Equal(t, chess.NoSquare, passed.Inner().EnPassantSquare(), "A pass clears the en passant square")
		require.Equal(t, pos.Count(chess.White, chess.Pawn), passed.Count(chess.White, chess.Pawn))
	})

	t.Run("no null move while in check", func(t *testing.T) {
		pos := mustFEN(t, "rnbqkbnr/ppp2ppp/8/1B1pp3/4P3/8/PPPP1PPP/RNBQK1NR b KQkq - 1 3")

		_, ok := pos.NullMove()

		require.False(t, ok)
	})
}

func TestFromFEN(t *testing.T) {
	_, err := FromFEN("not a position")
	require.Error(t, err)
}

func TestFindMove(t *testing.T) {
	pos := StartingPosition()

	require.NotNil(t, pos.FindMove(chess.E2, chess.E4, chess.NoPieceType))
	require.Nil(t, pos.FindMove(chess.E2, chess.E5, chess.NoPieceType))
}

func TestLegalMovesIsACopy(t *testing.T) {
	pos := StartingPosition()

	moves := pos.LegalMoves()
	moves[0], moves[1] = moves[1], moves[0]

	require.Equal(t, pos.LegalMoves()[1], moves[0], "Reordering the copy should not affect the position")
}
