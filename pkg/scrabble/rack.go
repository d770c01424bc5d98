package scrabble

import (
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// RackSize is the number of tiles a player holds between moves.
const RackSize = 7

var ErrTileNotInRack = errors.New("Tile not in rack")

// Rack is the set of tiles one player currently holds. Tiles are
// looked up by identity, never by letter, so two tiles of the same
// letter stay distinguishable.
type Rack struct {
	Tiles []*Tile `json:"tiles"`
}

func NewRack(b *Bag) *Rack {
	rack := &Rack{
		Tiles: make([]*Tile, 0, RackSize),
	}
	rack.Fill(b)

	return rack
}

// Fill replenishes the rack from the bag, up to RackSize tiles or
// until the bag runs out.
func (r *Rack) Fill(b *Bag) {
	for len(r.Tiles) < RackSize {
		tile, err := b.DrawTile()
		if err != nil {
			return
		}
		r.Tiles = append(r.Tiles, tile)
	}
}

func (r *Rack) IndexOf(id uuid.UUID) int {
	for i, t := range r.Tiles {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (r *Rack) Contains(id uuid.UUID) bool {
	return r.IndexOf(id) >= 0
}

func (r *Rack) Get(id uuid.UUID) (*Tile, error) {
	i := r.IndexOf(id)
	if i == -1 {
		return nil, ErrTileNotInRack
	}

	return r.Tiles[i], nil
}

func (r *Rack) Remove(id uuid.UUID) error {
	i := r.IndexOf(id)
	if i == -1 {
		return ErrTileNotInRack
	}
	// Keep order when deleting so that the remaining tiles stay in the
	// order the player arranged them
	r.Tiles = append(r.Tiles[:i], r.Tiles[i+1:]...)

	return nil
}

func (r *Rack) Len() int {
	return len(r.Tiles)
}

func (r *Rack) IsEmpty() bool {
	return len(r.Tiles) == 0
}

// Value is the sum of the point values of the tiles on the rack.
func (r *Rack) Value() int {
	return lo.SumBy(r.Tiles, func(t *Tile) int { return t.Value })
}

func (r *Rack) AsRunes() []rune {
	letters := make([]rune, 0, len(r.Tiles))
	for _, t := range r.Tiles {
		letters = append(letters, t.Letter)
	}

	return letters
}

func (r *Rack) String() string {
	return string(r.AsRunes())
}

// LetterCounts expands the rack into per-alphabet-index tile counts
// plus the number of blanks, the mutable shape the scanner backtracks
// over.
func (r *Rack) LetterCounts(a *Alphabet) (counts []int, blanks int) {
	counts = make([]int, a.Size())
	for _, t := range r.Tiles {
		if t.Blank {
			blanks++
			continue
		}
		if i, ok := a.Index(t.Letter); ok {
			counts[i]++
		}
	}
	return counts, blanks
}

func (r *Rack) Clone() *Rack {
	c := &Rack{Tiles: make([]*Tile, len(r.Tiles))}
	for i, t := range r.Tiles {
		c.Tiles[i] = t.Clone()
	}
	return c
}
