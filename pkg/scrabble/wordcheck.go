package scrabble

import "context"

// WordChecker validates single words against an external dictionary.
// The engine treats it as a pure, idempotent query and never retries
// it; a word is either in the dictionary or it is not.
type WordChecker interface {
	CheckWord(ctx context.Context, word string, lang Language) (bool, error)
}

// WordEnumerator is the optional capability of a WordChecker to hand
// over its complete word set. The engine probes for it with a type
// assertion before attempting "no moves left" detection; a checker
// without it simply disables that end condition.
type WordEnumerator interface {
	AllWords(ctx context.Context, lang Language) (*WordSet, error)
}

// WordSet is an immutable dictionary snapshot. The scanner caches the
// trie it builds per WordSet identity, so enumerators should keep
// returning the same instance until the underlying dictionary actually
// changes.
type WordSet struct {
	words []string
}

func NewWordSet(words []string) *WordSet {
	ws := &WordSet{words: make([]string, len(words))}
	copy(ws.words, words)
	return ws
}

// Words exposes the backing slice; callers must not modify it.
func (ws *WordSet) Words() []string {
	return ws.words
}

func (ws *WordSet) Len() int {
	return len(ws.words)
}

// InvalidWordError reports the word a dictionary check rejected. It is
// raised during move validation and rendered as the move's failure
// reason at the boundary.
type InvalidWordError struct {
	Word string
}

func (e *InvalidWordError) Error() string {
	return "Invalid word: " + e.Word
}
