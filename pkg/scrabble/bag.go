package scrabble

import (
	"errors"

	"lukechampine.com/frand"
)

var (
	ErrBagEmpty    = errors.New("Bag is empty")
	ErrBagTooSmall = errors.New("Not enough tiles in bag to exchange")
)

// Bag is the shared pool of undrawn tiles for one game. It is built
// from a tile distribution, shuffled on creation, and reshuffled
// whenever tiles come back to it.
type Bag struct {
	Tiles []*Tile `json:"tiles"`

	// StartCount is the size of the freshly built bag; end-of-game
	// detection uses it as its cheap guard.
	StartCount int `json:"startCount"`
}

func NewBag(ts *TileSet) *Bag {
	b := &Bag{
		Tiles: make([]*Tile, 0, ts.TotalTiles()),
	}
	for letter, count := range ts.Counts {
		for i := 0; i < count; i++ {
			if letter == Blank {
				b.Tiles = append(b.Tiles, NewBlankTile())
			} else {
				b.Tiles = append(b.Tiles, NewTile(letter, ts.Values[letter]))
			}
		}
	}
	b.StartCount = len(b.Tiles)
	b.shuffle()

	return b
}

func (b *Bag) shuffle() {
	frand.Shuffle(b.TileCount(), func(i, j int) {
		b.Tiles[i], b.Tiles[j] = b.Tiles[j], b.Tiles[i]
	})
}

func (b *Bag) TileCount() int {
	return len(b.Tiles)
}

func (b *Bag) IsEmpty() bool {
	return len(b.Tiles) == 0
}

// DrawTile removes and returns a random tile from the bag.
func (b *Bag) DrawTile() (*Tile, error) {
	count := b.TileCount()
	if count == 0 {
		return nil, ErrBagEmpty
	}

	i := frand.Intn(count)
	tile := b.Tiles[i]

	// No need to keep order in the bag
	b.Tiles[i] = b.Tiles[count-1]
	b.Tiles = b.Tiles[:count-1]

	return tile, nil
}

// ReturnTiles puts tiles back into the bag and reshuffles it.
func (b *Bag) ReturnTiles(tiles []*Tile) {
	b.Tiles = append(b.Tiles, tiles...)
	b.shuffle()
}

// CanExchange reports whether n tiles may be exchanged against the
// current bag contents.
func (b *Bag) CanExchange(n int) bool {
	return n > 0 && b.TileCount() >= n
}

// BelowHalf reports whether the bag has dropped below half of its
// starting size.
func (b *Bag) BelowHalf() bool {
	return b.TileCount() < b.StartCount/2
}

func (b *Bag) Clone() *Bag {
	c := &Bag{
		Tiles:      make([]*Tile, len(b.Tiles)),
		StartCount: b.StartCount,
	}
	for i, t := range b.Tiles {
		c.Tiles[i] = t.Clone()
	}
	return c
}
