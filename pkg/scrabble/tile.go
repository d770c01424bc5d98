package scrabble

import "github.com/google/uuid"

// Blank is the placeholder letter of a blank tile that has not yet
// been assigned a letter for play.
const Blank rune = '*'

// Tile is one physical tile. Tiles are identity objects: the ID is
// what distinguishes two tiles of the same letter, and a tile belongs
// to exactly one of the bag, a rack, or the board at any time.
type Tile struct {
	ID     uuid.UUID `json:"id"`
	Letter rune      `json:"letter"`
	Value  int       `json:"value"`
	Blank  bool      `json:"blank"`
}

func NewTile(letter rune, value int) *Tile {
	return &Tile{
		ID:     uuid.New(),
		Letter: letter,
		Value:  value,
	}
}

// NewBlankTile returns a blank tile. Its letter stays the Blank
// placeholder until the tile is played; its value is always 0.
func NewBlankTile() *Tile {
	return &Tile{
		ID:     uuid.New(),
		Letter: Blank,
		Blank:  true,
	}
}

func (t *Tile) Clone() *Tile {
	c := *t
	return &c
}

func (t *Tile) String() string {
	return string(t.Letter)
}
