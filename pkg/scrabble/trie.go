package scrabble

// Trie indexes a word list for the move scanner. Children are dense
// slices keyed by alphabet index, so lookups during the backtracking
// search are a couple of array hops with no hashing.
type Trie struct {
	alphabet *Alphabet
	root     *trieNode
	words    int
}

type trieNode struct {
	children []*trieNode
	terminal bool
}

func NewTrie(a *Alphabet) *Trie {
	return &Trie{
		alphabet: a,
		root:     &trieNode{children: make([]*trieNode, a.Size())},
	}
}

// Insert adds a word and reports whether it entered the trie. Words
// that cannot ever be played are skipped: empty, longer than a board
// row, or containing a letter outside the alphabet. Duplicates are
// counted once.
func (t *Trie) Insert(word string) bool {
	runes := []rune(word)
	if len(runes) == 0 || len(runes) > BoardSize {
		return false
	}
	indexes := make([]int, len(runes))
	for i, r := range runes {
		idx, ok := t.alphabet.Index(r)
		if !ok {
			return false
		}
		indexes[i] = idx
	}

	node := t.root
	for _, idx := range indexes {
		child := node.children[idx]
		if child == nil {
			child = &trieNode{children: make([]*trieNode, t.alphabet.Size())}
			node.children[idx] = child
		}
		node = child
	}
	if node.terminal {
		return false
	}
	node.terminal = true
	t.words++
	return true
}

// Contains reports whether the exact word is in the trie.
func (t *Trie) Contains(word string) bool {
	node := t.root
	for _, r := range word {
		idx, ok := t.alphabet.Index(r)
		if !ok {
			return false
		}
		if node = node.children[idx]; node == nil {
			return false
		}
	}
	return node.terminal
}

// WordCount returns the number of distinct words inserted.
func (t *Trie) WordCount() int {
	return t.words
}
