package scrabble

import (
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// DefaultHistoryLimit caps how many recent moves a game remembers.
const DefaultHistoryLimit = 64

type MoveKind string

const (
	KindTileMove MoveKind = "move"
	KindPass     MoveKind = "pass"
	KindExchange MoveKind = "exchange"
)

// HistoryEntry records one completed turn.
type HistoryEntry struct {
	Kind     MoveKind  `json:"kind"`
	PlayerID uuid.UUID `json:"playerId"`
	Points   int       `json:"points,omitempty"`
	Words    []Word    `json:"words,omitempty"`
}

// appendHistory adds an entry, dropping the oldest entries once the
// history limit is reached.
func (s *GameState) appendHistory(e HistoryEntry) {
	s.History = append(s.History, e)
	if over := len(s.History) - s.HistoryLimit; over > 0 {
		s.History = slices.Delete(s.History, 0, over)
	}
}

// fourConsecutivePasses reports whether the last four history entries
// are passes strictly alternating between the two players. Only a
// two-player game can end this way.
func (s *GameState) fourConsecutivePasses() bool {
	if len(s.Players) != 2 || len(s.History) < 4 {
		return false
	}
	tail := s.History[len(s.History)-4:]
	for i, e := range tail {
		if e.Kind != KindPass {
			return false
		}
		if i > 0 && e.PlayerID == tail[i-1].PlayerID {
			return false
		}
	}
	return true
}
