package scrabble

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Rule violations reported to callers through MoveResult.Reason. The
// messages are stable strings the app layer shows directly.
var (
	ErrNotYourTurn      = errors.New("Not your turn")
	ErrGameOver         = errors.New("Game is over")
	ErrEmptyPlacement   = errors.New("No tiles placed")
	ErrOutOfBounds      = errors.New("Placement out of bounds")
	ErrSquareOccupied   = errors.New("Square already occupied")
	ErrMisaligned       = errors.New("Tiles must align in one row or column")
	ErrFirstMoveCenter  = errors.New("First move must cover center")
	ErrMustConnect      = errors.New("Move must connect to existing tiles")
	ErrNonContiguous    = errors.New("Placement has gaps")
	ErrNoWordFormed     = errors.New("No valid word formed")
	ErrBlankNeedsLetter = errors.New("Blank tile needs a letter")
	ErrLetterMismatch   = errors.New("Tile letter mismatch")
	ErrEmptyExchange    = errors.New("No tiles to exchange")
)

// Placement asks for one rack tile to be put on one empty square.
// Letter is what the tile plays as: it is required for blank tiles and
// must match the tile's own letter otherwise (it may be left zero as a
// shorthand for "the tile's letter").
type Placement struct {
	Position Position  `json:"position"`
	TileID   uuid.UUID `json:"tileId"`
	Letter   rune      `json:"letter,omitempty"`
}

// Word is one word formed by a move, in board reading order.
type Word struct {
	Start      Position `json:"start"`
	Horizontal bool     `json:"horizontal"`
	Text       string   `json:"text"`
}

// cover is a validated placement: the resolved rack tile plus the
// letter it covers its square with.
type cover struct {
	tile   *Tile
	letter rune
}

// tileMove is a fully validated placement set, normalized for scoring
// and application.
type tileMove struct {
	covers      map[Position]cover
	topLeft     Position
	bottomRight Position
	horizontal  bool
	words       []Word
}

// buildTileMove runs every board-and-rack level check against a
// proposed placement set and returns the normalized move. It never
// touches the game state; any error it returns is a rule violation
// suitable as a MoveResult reason.
func (g *Game) buildTileMove(p *Player, placements []Placement) (*tileMove, error) {
	if len(placements) == 0 {
		return nil, ErrEmptyPlacement
	}

	board := g.state.Board
	alphabet := g.tileSet.Alphabet()
	move := &tileMove{covers: make(map[Position]cover, len(placements))}
	used := make(map[uuid.UUID]bool, len(placements))

	for _, pl := range placements {
		if !pl.Position.InBounds() {
			return nil, ErrOutOfBounds
		}
		if board.GetSquare(pl.Position).Tile != nil {
			return nil, ErrSquareOccupied
		}
		if _, dup := move.covers[pl.Position]; dup {
			return nil, ErrSquareOccupied
		}
		tile, err := p.Rack.Get(pl.TileID)
		if err != nil || used[pl.TileID] {
			return nil, ErrTileNotInRack
		}
		used[pl.TileID] = true

		letter := pl.Letter
		if tile.Blank {
			if !alphabet.Contains(letter) {
				return nil, ErrBlankNeedsLetter
			}
		} else {
			if letter == 0 {
				letter = tile.Letter
			}
			if letter != tile.Letter {
				return nil, ErrLetterMismatch
			}
		}
		move.covers[pl.Position] = cover{tile: tile, letter: letter}
	}

	if err := move.resolveLine(board, placements); err != nil {
		return nil, err
	}

	// The first move must cover the center square; every later move
	// must touch at least one tile already on the board.
	if board.IsEmpty() {
		center := Position{Row: BoardCenter, Col: BoardCenter}
		if _, ok := move.covers[center]; !ok {
			return nil, ErrFirstMoveCenter
		}
	} else {
		adjacent := 0
		for pos := range move.covers {
			adjacent += board.NumAdjacentTiles(pos)
		}
		if adjacent == 0 {
			return nil, ErrMustConnect
		}
	}

	// Every square between the extremes must carry either a new tile
	// or an existing one: no gaps.
	for pos := move.topLeft; ; pos = pos.Step(move.horizontal) {
		if _, covered := move.covers[pos]; !covered && board.GetSquare(pos).Tile == nil {
			return nil, ErrNonContiguous
		}
		if pos == move.bottomRight {
			break
		}
	}

	if err := move.collectWords(board); err != nil {
		return nil, err
	}
	return move, nil
}

// resolveLine determines the move's orientation and bounding
// positions. Multiple tiles must share a row or a column; a single
// tile prefers the axis that already has a neighboring tile and falls
// back to horizontal when both or neither do.
func (m *tileMove) resolveLine(board *Board, placements []Placement) error {
	top, left := BoardSize, BoardSize
	bottom, right := -1, -1
	for pos := range m.covers {
		if pos.Row < top {
			top = pos.Row
		}
		if pos.Col < left {
			left = pos.Col
		}
		if pos.Row > bottom {
			bottom = pos.Row
		}
		if pos.Col > right {
			right = pos.Col
		}
	}
	m.topLeft = Position{Row: top, Col: left}
	m.bottomRight = Position{Row: bottom, Col: right}

	if len(placements) > 1 {
		switch {
		case top == bottom:
			m.horizontal = true
		case left == right:
			m.horizontal = false
		default:
			return ErrMisaligned
		}
		return nil
	}

	adj := &board.Adjacents[top][left]
	horizontalNeighbor := (adj[DirectionLeft] != nil && adj[DirectionLeft].Tile != nil) ||
		(adj[DirectionRight] != nil && adj[DirectionRight].Tile != nil)
	verticalNeighbor := (adj[DirectionAbove] != nil && adj[DirectionAbove].Tile != nil) ||
		(adj[DirectionBelow] != nil && adj[DirectionBelow].Tile != nil)
	m.horizontal = horizontalNeighbor || !verticalNeighbor
	return nil
}

type wordKey struct {
	horizontal bool
	row, col   int
}

// collectWords gathers the primary word along the move's orientation
// plus the perpendicular cross word through each newly placed tile.
// Only words longer than one letter count; each distinct
// (orientation, start) word appears exactly once.
func (m *tileMove) collectWords(board *Board) error {
	seen := make(map[wordKey]bool)
	m.words = m.words[:0]

	add := func(w Word) {
		key := wordKey{horizontal: w.Horizontal, row: w.Start.Row, col: w.Start.Col}
		if seen[key] || len([]rune(w.Text)) < 2 {
			return
		}
		seen[key] = true
		m.words = append(m.words, w)
	}

	var reverse, forward Direction
	if m.horizontal {
		reverse, forward = DirectionLeft, DirectionRight
	} else {
		reverse, forward = DirectionAbove, DirectionBelow
	}

	prefix := board.WordFragment(m.topLeft, reverse)
	start := m.topLeft
	if m.horizontal {
		start.Col -= len([]rune(prefix))
	} else {
		start.Row -= len([]rune(prefix))
	}

	var mid strings.Builder
	for pos := m.topLeft; ; pos = pos.Step(m.horizontal) {
		if c, covered := m.covers[pos]; covered {
			mid.WriteRune(c.letter)
		} else {
			mid.WriteRune(board.GetSquare(pos).Tile.Letter)
		}
		if pos == m.bottomRight {
			break
		}
	}
	suffix := board.WordFragment(m.bottomRight, forward)
	add(Word{
		Start:      start,
		Horizontal: m.horizontal,
		Text:       prefix + mid.String() + suffix,
	})

	var crosses []Word
	for pos, c := range m.covers {
		prev, after := board.CrossWordFragments(pos, !m.horizontal)
		if prev == "" && after == "" {
			continue
		}
		crossStart := pos
		if m.horizontal {
			crossStart.Row -= len([]rune(prev))
		} else {
			crossStart.Col -= len([]rune(prev))
		}
		crosses = append(crosses, Word{
			Start:      crossStart,
			Horizontal: !m.horizontal,
			Text:       prev + string(c.letter) + after,
		})
	}
	slices.SortFunc(crosses, func(a, b Word) bool {
		if a.Start.Row != b.Start.Row {
			return a.Start.Row < b.Start.Row
		}
		return a.Start.Col < b.Start.Col
	})
	for _, w := range crosses {
		add(w)
	}

	if len(m.words) == 0 {
		return ErrNoWordFormed
	}
	return nil
}
