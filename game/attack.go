package game

import "github.com/notnil/chess"

var (
	knightSteps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	rookRays    = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopRays  = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func pieceAt(b *chess.Board, file, rank int) (chess.Piece, bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return chess.NoPiece, false
	}
	return b.Piece(chess.Square(rank*8 + file)), true
}

func kingSquare(b *chess.Board, c chess.Color) (chess.Square, bool) {
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := b.Piece(sq)
		if p.Type() == chess.King && p.Color() == c {
			return sq, true
		}
	}
	return chess.NoSquare, false
}

// attacked reports whether any piece of color by attacks sq.
func attacked(b *chess.Board, sq chess.Square, by chess.Color) bool {
	file, rank := int(sq.File()), int(sq.Rank())

	// A white pawn attacks upward, so it sits one rank below the target
	pawnRank := rank - 1
	if by == chess.Black {
		pawnRank = rank + 1
	}
	for _, df := range []int{-1, 1} {
		if p, ok := pieceAt(b, file+df, pawnRank); ok && p.Color() == by && p.Type() == chess.Pawn {
			return true
		}
	}

	for _, step := range knightSteps {
		if p, ok := pieceAt(b, file+step[0], rank+step[1]); ok && p.Color() == by && p.Type() == chess.Knight {
			return true
		}
	}
	for _, step := range kingSteps {
		if p, ok := pieceAt(b, file+step[0], rank+step[1]); ok && p.Color() == by && p.Type() == chess.King {
			return true
		}
	}

	if slides(b, file, rank, by, rookRays, chess.Rook) {
		return true
	}
	return slides(b, file, rank, by, bishopRays, chess.Bishop)
}

// slides walks each ray until it hits a piece and reports whether that piece
// is a slider of color by moving along the ray (the given type or a queen).
func slides(b *chess.Board, file, rank int, by chess.Color, rays [4][2]int, slider chess.PieceType) bool {
	for _, ray := range rays {
		f, r := file+ray[0], rank+ray[1]
		for {
			p, ok := pieceAt(b, f, r)
			if !ok {
				break
			}
			if p != chess.NoPiece {
				if p.Color() == by && (p.Type() == slider || p.Type() == chess.Queen) {
					return true
				}
				break
			}
			f, r = f+ray[0], r+ray[1]
		}
	}
	return false
}
