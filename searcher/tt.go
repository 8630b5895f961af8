package searcher

import (
	"patzer/game"

	"github.com/notnil/chess"
)

// Bound tells how a stored score relates to the true value of a position.
type Bound uint8

const (
	Exact      Bound = iota
	LowerBound       // true value >= score (search failed high)
	UpperBound       // true value <= score (search failed low)
)

func (b Bound) String() string {
	switch b {
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	default:
		return "exact"
	}
}

// Evaluation is a score tagged with its bound.
type Evaluation struct {
	Bound Bound
	Score game.Score
}

func Exactly(s game.Score) Evaluation { return Evaluation{Bound: Exact, Score: s} }
func AtLeast(s game.Score) Evaluation { return Evaluation{Bound: LowerBound, Score: s} }
func AtMost(s game.Score) Evaluation  { return Evaluation{Bound: UpperBound, Score: s} }

// Entry is one memoized search result.
type Entry struct {
	Fingerprint game.Hash
	Depth       int
	Evaluation
	Move *chess.Move // best move or refutation, may be nil

	occupied bool
}

// Table is a fixed-capacity transposition table. Each fingerprint maps to one
// slot; colliding positions evict each other rather than chain. A Table is
// owned by a single search and is not safe for concurrent use.
type Table struct {
	slots  []Entry
	hits   int
	misses int
}

func NewTable(size int) *Table {
	if size < 1 {
		panic("transposition table needs at least one slot")
	}
	return &Table{slots: make([]Entry, size)}
}

func (t *Table) slot(fp game.Hash) *Entry {
	return &t.slots[uint64(fp)%uint64(len(t.slots))]
}

// Store records eval for fp unless the slot already holds an entry searched at
// least as deep.
func (t *Table) Store(fp game.Hash, depth int, eval Evaluation) {
	t.StoreMove(fp, depth, eval, nil)
}

// StoreMove is Store with a suggested move attached to the entry.
func (t *Table) StoreMove(fp game.Hash, depth int, eval Evaluation, move *chess.Move) {
	e := t.slot(fp)
	if e.occupied && e.Depth >= depth {
		return
	}
	*e = Entry{
		Fingerprint: fp,
		Depth:       depth,
		Evaluation:  eval,
		Move:        move,
		occupied:    true,
	}
}

// Retrieve returns the entry stored for fp. A slot holding another position
// is a miss.
func (t *Table) Retrieve(fp game.Hash) (Entry, bool) {
	e := t.slot(fp)
	if !e.occupied || e.Fingerprint != fp {
		t.misses++
		return Entry{}, false
	}
	t.hits++
	return *e, true
}

// Len returns the number of slots.
func (t *Table) Len() int {
	return len(t.slots)
}

func (t *Table) Hits() int {
	return t.hits
}

func (t *Table) Misses() int {
	return t.misses
}
