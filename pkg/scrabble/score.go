package scrabble

// BingoBonus is awarded when a move uses all tiles of a full rack.
const BingoBonus = 50

// score computes the total points for the move on the given board,
// which must not yet contain the move's tiles.
func (m *tileMove) score(board *Board) int {
	total := 0
	for _, w := range m.words {
		total += m.scoreWord(board, w)
	}
	if len(m.covers) == RackSize {
		total += BingoBonus
	}
	return total
}

// scoreWord walks one formed word square by square. Letter and word
// multipliers apply only under newly placed tiles; tiles already on
// the board count at face value.
func (m *tileMove) scoreWord(board *Board, w Word) int {
	score := 0
	multiplier := 1

	pos := w.Start
	for range w.Text {
		sq := board.GetSquare(pos)
		if c, covered := m.covers[pos]; covered {
			score += c.tile.Value * sq.LetterMultiplier
			multiplier *= sq.WordMultiplier
		} else {
			score += sq.Tile.Value
		}
		pos = pos.Step(w.Horizontal)
	}
	return score * multiplier
}
