package scrabble

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Language selects the tile distribution and the alphabet that words
// are validated against.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
	Russian Language = "ru"
)

// MaxAlphabetSize bounds the number of distinct letters a distribution
// may have, so that a cross-check set always fits one machine word.
const MaxAlphabetSize = 64

// TileSet describes a language's tile distribution: how many copies of
// each letter ship in a fresh bag, and what each letter scores. The
// Blank placeholder appears in both maps with a value of 0.
type TileSet struct {
	Language Language
	Counts   map[rune]int
	Values   map[rune]int

	alphabet *Alphabet
}

func newTileSet(lang Language, counts, values map[rune]int) *TileSet {
	letters := make([]rune, 0, len(counts))
	for letter := range counts {
		if letter == Blank {
			continue
		}
		letters = append(letters, letter)
	}
	return &TileSet{
		Language: lang,
		Counts:   counts,
		Values:   values,
		alphabet: newAlphabet(letters),
	}
}

func initEnglishTileSet() *TileSet {
	counts := map[rune]int{
		'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12,
		'F': 2, 'G': 3, 'H': 2, 'I': 9, 'J': 1,
		'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8,
		'P': 2, 'Q': 1, 'R': 6, 'S': 4, 'T': 6,
		'U': 4, 'V': 2, 'W': 2, 'X': 1, 'Y': 2,
		'Z': 1, '*': 2,
	}
	values := map[rune]int{
		'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1,
		'F': 4, 'G': 2, 'H': 4, 'I': 1, 'J': 8,
		'K': 5, 'L': 1, 'M': 3, 'N': 1, 'O': 1,
		'P': 3, 'Q': 10, 'R': 1, 'S': 1, 'T': 1,
		'U': 1, 'V': 4, 'W': 4, 'X': 8, 'Y': 4,
		'Z': 10, '*': 0,
	}
	return newTileSet(English, counts, values)
}

func initFrenchTileSet() *TileSet {
	counts := map[rune]int{
		'A': 9, 'B': 2, 'C': 2, 'D': 3, 'E': 15,
		'F': 2, 'G': 2, 'H': 2, 'I': 8, 'J': 1,
		'K': 1, 'L': 5, 'M': 3, 'N': 6, 'O': 6,
		'P': 2, 'Q': 1, 'R': 6, 'S': 6, 'T': 6,
		'U': 6, 'V': 2, 'W': 1, 'X': 1, 'Y': 1,
		'Z': 1, '*': 2,
	}
	values := map[rune]int{
		'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1,
		'F': 4, 'G': 2, 'H': 4, 'I': 1, 'J': 8,
		'K': 10, 'L': 1, 'M': 2, 'N': 1, 'O': 1,
		'P': 3, 'Q': 8, 'R': 1, 'S': 1, 'T': 1,
		'U': 1, 'V': 4, 'W': 10, 'X': 10, 'Y': 10,
		'Z': 10, '*': 0,
	}
	return newTileSet(French, counts, values)
}

// The Cyrillic set is the largest alphabet the engine ships with; it
// is what keeps the alphabet-indexed structures honest about not
// assuming 26 letters.
func initRussianTileSet() *TileSet {
	counts := map[rune]int{
		'А': 8, 'Б': 2, 'В': 4, 'Г': 2, 'Д': 4,
		'Е': 8, 'Ж': 1, 'З': 2, 'И': 5, 'Й': 1,
		'К': 4, 'Л': 4, 'М': 3, 'Н': 5, 'О': 10,
		'П': 4, 'Р': 5, 'С': 5, 'Т': 5, 'У': 4,
		'Ф': 1, 'Х': 1, 'Ц': 1, 'Ч': 1, 'Ш': 1,
		'Щ': 1, 'Ъ': 1, 'Ы': 2, 'Ь': 2, 'Э': 1,
		'Ю': 1, 'Я': 2, '*': 2,
	}
	values := map[rune]int{
		'А': 1, 'Б': 3, 'В': 1, 'Г': 3, 'Д': 2,
		'Е': 1, 'Ж': 5, 'З': 5, 'И': 1, 'Й': 4,
		'К': 2, 'Л': 2, 'М': 2, 'Н': 1, 'О': 1,
		'П': 2, 'Р': 1, 'С': 1, 'Т': 1, 'У': 2,
		'Ф': 10, 'Х': 5, 'Ц': 5, 'Ч': 5, 'Ш': 8,
		'Щ': 10, 'Ъ': 10, 'Ы': 4, 'Ь': 3, 'Э': 8,
		'Ю': 8, 'Я': 3, '*': 0,
	}
	return newTileSet(Russian, counts, values)
}

var tileSets = map[Language]*TileSet{
	English: initEnglishTileSet(),
	French:  initFrenchTileSet(),
	Russian: initRussianTileSet(),
}

// TileSetFor returns the tile distribution for a language.
func TileSetFor(lang Language) (*TileSet, error) {
	ts, ok := tileSets[lang]
	if !ok {
		return nil, fmt.Errorf("no tile distribution for language %q", lang)
	}
	return ts, nil
}

// Languages lists the languages the engine has distributions for.
func Languages() []Language {
	langs := maps.Keys(tileSets)
	slices.Sort(langs)
	return langs
}

// TotalTiles is the number of tiles a fresh bag holds, blanks included.
func (ts *TileSet) TotalTiles() int {
	total := 0
	for _, count := range ts.Counts {
		total += count
	}
	return total
}

// Value returns the point value of a letter, 0 for the blank or for
// letters outside the distribution.
func (ts *TileSet) Value(letter rune) int {
	return ts.Values[letter]
}

func (ts *TileSet) Alphabet() *Alphabet {
	return ts.alphabet
}

// Alphabet is the ordered set of distinct letters of a distribution,
// blank excluded. Its dense letter indexes key the scanner's trie
// children and cross-check bitmasks, so everything derived from one
// TileSet shares one Alphabet instance.
type Alphabet struct {
	letters []rune
	indexes map[rune]int
}

func newAlphabet(letters []rune) *Alphabet {
	if len(letters) > MaxAlphabetSize {
		panic("alphabet does not fit a cross-check word")
	}
	slices.Sort(letters)
	a := &Alphabet{
		letters: letters,
		indexes: make(map[rune]int, len(letters)),
	}
	for i, letter := range letters {
		a.indexes[letter] = i
	}
	return a
}

func (a *Alphabet) Size() int {
	return len(a.letters)
}

// Index returns the dense index of a letter, and whether the letter is
// part of the alphabet at all.
func (a *Alphabet) Index(letter rune) (int, bool) {
	i, ok := a.indexes[letter]
	return i, ok
}

// Letter returns the letter at a dense index.
func (a *Alphabet) Letter(i int) rune {
	return a.letters[i]
}

func (a *Alphabet) Contains(letter rune) bool {
	_, ok := a.indexes[letter]
	return ok
}
