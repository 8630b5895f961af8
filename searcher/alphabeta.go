package searcher

import (
	"patzer/experiments/metrics"
	"patzer/game"
	"patzer/meta"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// AlphaBeta is a fixed-depth negamax search with alpha-beta pruning and a
// transposition table. Each call to Search builds its own table, random source
// and metrics, so one AlphaBeta may serve several goroutines.
type AlphaBeta struct {
	depth     int
	tableSize int
	seed      uint64
	seeded    bool
	evaluate  game.Evaluate
	report    func(metrics.SearchMetric)
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	a := &AlphaBeta{ // Default values
		depth:     meta.DEFAULT_DEPTH,
		tableSize: meta.TABLE_SIZE,
		evaluate:  game.EvaluatePosition,
	}
	for _, option := range options {
		option(a)
	}
	if a.depth < 1 {
		panic("Search depth must be at least 1")
	}
	return a
}

func (a *AlphaBeta) Depth() int {
	return a.depth
}

// Strategy adapts the search to the game.Strategy contract.
func (a *AlphaBeta) Strategy() game.Strategy {
	return func(pos *game.Position) *chess.Move {
		move, _ := a.Search(pos)
		return move
	}
}

// Search returns the best move for the side to move and its score from that
// side's perspective. The move is nil when there are no legal moves.
func (a *AlphaBeta) Search(pos *game.Position) (*chess.Move, game.Score) {
	s := a.newSearch()
	s.metrics.Start("alphabeta", a.depth)

	move, score := s.root(pos, a.depth)

	metric := s.metrics.Complete(s.table.Hits(), s.table.Misses())
	if a.report != nil {
		a.report(metric)
	}
	log.Debug().
		Str("fen", pos.String()).
		Str("move", moveString(move)).
		Int("score", int(score)).
		Int("nodes", metric.Nodes).
		Int("tt_hits", s.table.Hits()).
		Int("tt_misses", s.table.Misses()).
		Msg("alphabeta decision")
	return move, score
}

func (a *AlphaBeta) newSearch() *search {
	seed := a.seed
	if !a.seeded {
		seed = uint64(time.Now().UnixNano())
	}
	return &search{
		table:    NewTable(a.tableSize),
		rng:      rand.New(rand.NewSource(seed)),
		evaluate: a.evaluate,
		metrics:  metrics.NewCollector(),
	}
}

// search holds the state of one top-level decision.
type search struct {
	table    *Table
	rng      *rand.Rand
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func (s *search) root(pos *game.Position, depth int) (*chess.Move, game.Score) {
	if depth < 1 {
		panic("Search depth must be at least 1")
	}
	s.metrics.AddNode()

	var hint *chess.Move
	if entry, ok := s.table.Retrieve(pos.Fingerprint()); ok {
		hint = entry.Move
	}

	var best *chess.Move
	alpha, beta := -game.Infinity, game.Infinity
	for _, move := range orderMoves(pos.LegalMoves(), hint, s.rng) {
		score := -s.score(pos.Play(move), -beta, -alpha, depth-1)
		if best == nil || score > alpha {
			best, alpha = move, score
		}
		if alpha >= game.MateScore {
			break // nothing beats a mate
		}
	}
	if best == nil {
		return nil, s.evaluate(pos, pos.Turn(), pos.Turn())
	}
	s.table.StoreMove(pos.Fingerprint(), depth, Exactly(alpha), best)
	return best, alpha
}

// score is the negamax value of pos for the side to move, clamped to
// [alpha, beta].
func (s *search) score(pos *game.Position, alpha, beta game.Score, depthLeft int) game.Score {
	s.metrics.AddNode()
	fp := pos.Fingerprint()

	var hint *chess.Move
	if entry, ok := s.table.Retrieve(fp); ok {
		hint = entry.Move
		if entry.Depth == depthLeft {
			switch entry.Bound {
			case Exact:
				alpha, beta = entry.Score, entry.Score
			case LowerBound:
				alpha = max(alpha, entry.Score)
			case UpperBound:
				beta = min(beta, entry.Score)
			}
			if alpha >= beta {
				s.metrics.AddCutoff()
				return entry.Score
			}
		}
	}

	if depthLeft == 0 || pos.NumLegalMoves() == 0 {
		s.metrics.AddLeaf()
		leaf := s.evaluate(pos, pos.Turn(), pos.Turn())
		s.table.Store(fp, depthLeft, Exactly(leaf))
		return leaf
	}

	alphaOrig := alpha
	var best *chess.Move
	for _, move := range orderMoves(pos.LegalMoves(), hint, s.rng) {
		score := -s.score(pos.Play(move), -beta, -alpha, depthLeft-1)
		if score >= beta {
			s.metrics.AddCutoff()
			s.table.StoreMove(fp, depthLeft, AtLeast(beta), move)
			return beta
		}
		if score > alpha {
			alpha, best = score, move
		}
		if alpha >= game.MateScore {
			break
		}
	}

	if alpha > alphaOrig {
		s.table.StoreMove(fp, depthLeft, Exactly(alpha), best)
	} else {
		s.table.Store(fp, depthLeft, AtMost(alpha))
	}
	return alpha
}

func moveString(m *chess.Move) string {
	if m == nil {
		return "none"
	}
	return m.String()
}
