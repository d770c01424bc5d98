package scrabble

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// errMoveFound short-circuits the axis fan-out the moment any axis
// proves a move exists.
var errMoveFound = errors.New("move found")

// MoveScanner decides whether a rack has at least one legal placement
// on a board. It indexes the dictionary into a trie, keyed by the
// identity of the WordSet, so repeated checks against the same word
// set reuse the index.
type MoveScanner struct {
	alphabet  *Alphabet
	minLength int

	mu     sync.Mutex
	cached *WordSet
	trie   *Trie
}

func NewMoveScanner(a *Alphabet, minWordLength int) *MoveScanner {
	if minWordLength <= 0 {
		minWordLength = DefaultMinWordLength
	}
	return &MoveScanner{alphabet: a, minLength: minWordLength}
}

// HasAnyMove reports whether the rack can make any legal move on the
// board with the given word set. It proves existence only: no move is
// ranked or returned, and the search stops at the first hit. The
// board and rack are read, never written.
func (ms *MoveScanner) HasAnyMove(ctx context.Context, words *WordSet, board *Board, rack *Rack) (bool, error) {
	if words == nil || rack == nil || rack.IsEmpty() {
		return false, nil
	}
	trie := ms.ensureTrie(words)
	counts, blanks := rack.LetterCounts(ms.alphabet)
	rackLen := rack.Len()

	// One goroutine per row and per column. Each axis owns a copy of
	// the rack counts so backtracking never shares state.
	g, ctx := errgroup.WithContext(ctx)
	for index := 0; index < BoardSize; index++ {
		for _, horizontal := range []bool{true, false} {
			index, horizontal := index, horizontal
			g.Go(func() error {
				ax := newScanAxis(board, trie, ms.alphabet, index, horizontal,
					slices.Clone(counts), blanks, rackLen, ms.minLength)
				found, err := ax.scan(ctx)
				if err != nil {
					return err
				}
				if found {
					return errMoveFound
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, errMoveFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// ensureTrie returns the trie for the word set, rebuilding only when
// the caller hands over a different WordSet instance than last time.
func (ms *MoveScanner) ensureTrie(words *WordSet) *Trie {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.cached == words && ms.trie != nil {
		return ms.trie
	}

	start := time.Now()
	trie := NewTrie(ms.alphabet)
	for _, w := range words.Words() {
		trie.Insert(w)
	}
	ms.cached = words
	ms.trie = trie

	log.Debug().
		Int("words", trie.WordCount()).
		Dur("took", time.Since(start)).
		Msg("dictionary indexed for move scan")
	return trie
}

// scanAxis is the scanner's view of one row or column: the squares in
// axis order, the anchor flags, and the cross-check mask per empty
// square for placements along this axis.
type scanAxis struct {
	trie       *Trie
	alphabet   *Alphabet
	horizontal bool

	squares     [BoardSize]*Square
	crossChecks [BoardSize]CrossSet
	anchors     [BoardSize]bool

	counts    []int
	blanks    int
	rackLen   int
	minLength int
}

func newScanAxis(board *Board, trie *Trie, a *Alphabet, index int, horizontal bool, counts []int, blanks, rackLen, minLength int) *scanAxis {
	ax := &scanAxis{
		trie:       trie,
		alphabet:   a,
		horizontal: horizontal,
		counts:     counts,
		blanks:     blanks,
		rackLen:    rackLen,
		minLength:  minLength,
	}
	for i := 0; i < BoardSize; i++ {
		if horizontal {
			ax.squares[i] = board.GetSquare(Position{Row: index, Col: i})
		} else {
			ax.squares[i] = board.GetSquare(Position{Row: i, Col: index})
		}
	}

	boardEmpty := board.IsEmpty()
	for i := 0; i < BoardSize; i++ {
		sq := ax.squares[i]
		if sq.Tile != nil {
			continue
		}
		if boardEmpty {
			// An empty board has a single anchor: the center square,
			// claimed by the center column so only one axis scans it.
			if index == BoardCenter && i == BoardCenter && !horizontal {
				ax.anchors[i] = true
			}
			ax.crossChecks[i] = trivialCrossSet(a)
			continue
		}
		if sq.IsAnchor(board) {
			ax.anchors[i] = true
			ax.crossChecks[i] = crossSetAt(board, trie, a, sq.Position, horizontal)
		} else {
			// Empty square with no neighbors: no cross word to break.
			ax.crossChecks[i] = trivialCrossSet(a)
		}
	}
	return ax
}

// scan visits the anchors left to right. Left extensions reach back
// only over open squares after the previous anchor, so every word is
// tried from exactly one anchor: the leftmost one it covers.
func (ax *scanAxis) scan(ctx context.Context) (bool, error) {
	lastAnchor := -1
	for i := 0; i < BoardSize; i++ {
		if !ax.anchors[i] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if ax.crossChecks[i] != 0 {
			openCnt := 0
			left := i
			for left > 0 && left > lastAnchor+1 && ax.isOpen(left-1) {
				openCnt++
				left--
			}
			if ax.scanAnchor(i, min(openCnt, ax.rackLen-1)) {
				return true, nil
			}
		}
		lastAnchor = i
	}
	return false, nil
}

func (ax *scanAxis) isOpen(i int) bool {
	return ax.squares[i].Tile == nil && ax.crossChecks[i] != 0
}

// scanAnchor searches for a word covering the given anchor. With a
// tile directly before the anchor the word's left part is fixed: walk
// that run through the trie and extend to the right. Otherwise try
// every left-part length from zero up to maxLeft.
func (ax *scanAxis) scanAnchor(anchor, maxLeft int) bool {
	if anchor > 0 && ax.squares[anchor-1].Tile != nil {
		start := anchor
		for start > 0 && ax.squares[start-1].Tile != nil {
			start--
		}
		node := ax.trie.root
		for i := start; i < anchor; i++ {
			idx, ok := ax.alphabet.Index(ax.squares[i].Tile.Letter)
			if !ok {
				return false
			}
			if node = node.children[idx]; node == nil {
				return false
			}
		}
		return ax.extend(node, anchor, anchor, anchor-start, false)
	}

	for j := 0; j <= maxLeft; j++ {
		if ax.extend(ax.trie.root, anchor, anchor-j, 0, false) {
			return true
		}
	}
	return false
}

// extend grows a word rightward from square i, having already matched
// length letters ending at node. A word is complete when the trie
// marks the prefix terminal, at least one rack tile was consumed, the
// anchor is covered and the square after the word is empty or off the
// board. Rack counts mutate on the way down and are restored on the
// way back up.
func (ax *scanAxis) extend(node *trieNode, anchor, i, length int, usedRack bool) bool {
	if node.terminal && usedRack && length >= ax.minLength && i > anchor &&
		(i == BoardSize || ax.squares[i].Tile == nil) {
		return true
	}
	if i == BoardSize {
		return false
	}

	sq := ax.squares[i]
	if sq.Tile != nil {
		idx, ok := ax.alphabet.Index(sq.Tile.Letter)
		if !ok {
			return false
		}
		child := node.children[idx]
		if child == nil {
			return false
		}
		return ax.extend(child, anchor, i+1, length+1, usedRack)
	}

	mask := ax.crossChecks[i]
	for idx, child := range node.children {
		if child == nil || !mask.Allows(idx) {
			continue
		}
		switch {
		case ax.counts[idx] > 0:
			ax.counts[idx]--
			found := ax.extend(child, anchor, i+1, length+1, true)
			ax.counts[idx]++
			if found {
				return true
			}
		case ax.blanks > 0:
			ax.blanks--
			found := ax.extend(child, anchor, i+1, length+1, true)
			ax.blanks++
			if found {
				return true
			}
		}
	}
	return false
}
