package scrabble

import (
	"github.com/google/uuid"
)

type Player struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Rack  *Rack     `json:"rack"`
	Score int       `json:"score"`
}

func NewPlayer(name string, b *Bag) *Player {
	return &Player{
		ID:   uuid.New(),
		Name: name,
		Rack: NewRack(b),
	}
}

func (p *Player) Clone() *Player {
	return &Player{
		ID:    p.ID,
		Name:  p.Name,
		Rack:  p.Rack.Clone(),
		Score: p.Score,
	}
}
