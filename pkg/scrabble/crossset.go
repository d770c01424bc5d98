package scrabble

// CrossSet is a bitmask over alphabet indexes. Bit i set means the
// letter at index i may be placed on the square without breaking the
// perpendicular word through it. MaxAlphabetSize keeps every alphabet
// within the 64 bits.
type CrossSet uint64

func (cs CrossSet) Allows(idx int) bool {
	return cs&(1<<idx) != 0
}

func (cs *CrossSet) set(idx int) {
	*cs |= 1 << idx
}

// trivialCrossSet allows every letter of the alphabet.
func trivialCrossSet(a *Alphabet) CrossSet {
	if a.Size() >= 64 {
		return ^CrossSet(0)
	}
	return CrossSet(1)<<a.Size() - 1
}

// crossSetAt computes the cross-check mask for an empty square when
// placing along the given orientation. With no perpendicular
// neighbors there is no cross word to break, so every letter is
// allowed; otherwise a letter is allowed only if prefix+letter+suffix
// is a dictionary word.
func crossSetAt(board *Board, trie *Trie, a *Alphabet, pos Position, horizontal bool) CrossSet {
	prev, after := board.CrossWordFragments(pos, !horizontal)
	if prev == "" && after == "" {
		return trivialCrossSet(a)
	}
	var cs CrossSet
	for i := 0; i < a.Size(); i++ {
		if trie.Contains(prev + string(a.Letter(i)) + after) {
			cs.set(i)
		}
	}
	return cs
}
