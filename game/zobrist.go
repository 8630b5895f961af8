package game

import (
	"github.com/notnil/chess"
	"golang.org/x/exp/rand"
)

// Fixed seed so fingerprints are stable across runs and tests.
const zobristSeed = 0x9e3779b97f4a7c15

var (
	pieceKeys     [3][7][64]uint64 // [color][piece type][square]
	castleKeys    [3][2]uint64     // [color][king side, queen side]
	enPassantKeys [8]uint64        // one per file
	blackToMove   uint64
)

func init() {
	rng := rand.New(rand.NewSource(zobristSeed))
	next := func() uint64 {
		// Zero keys would make a feature invisible to XOR
		v := rng.Uint64()
		for v == 0 {
			v = rng.Uint64()
		}
		return v
	}

	for _, c := range []chess.Color{chess.White, chess.Black} {
		for t := chess.King; t <= chess.Pawn; t++ {
			for sq := 0; sq < 64; sq++ {
				pieceKeys[c][t][sq] = next()
			}
		}
		castleKeys[c][0] = next()
		castleKeys[c][1] = next()
	}
	for f := range enPassantKeys {
		enPassantKeys[f] = next()
	}
	blackToMove = next()
}

// fingerprint hashes piece placement, side to move, castling rights and the
// en passant file. Clocks are left out so that transpositions collide.
func fingerprint(p *chess.Position) Hash {
	var h uint64
	board := p.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		h ^= pieceKeys[piece.Color()][piece.Type()][sq]
	}

	rights := p.CastleRights()
	for _, c := range []chess.Color{chess.White, chess.Black} {
		if rights.CanCastle(c, chess.KingSide) {
			h ^= castleKeys[c][0]
		}
		if rights.CanCastle(c, chess.QueenSide) {
			h ^= castleKeys[c][1]
		}
	}

	if ep := p.EnPassantSquare(); ep != chess.NoSquare {
		h ^= enPassantKeys[ep.File()]
	}
	if p.Turn() == chess.Black {
		h ^= blackToMove
	}
	return Hash(h)
}
