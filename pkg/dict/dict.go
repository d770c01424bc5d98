// Package dict loads plain-text word lists and serves them to the
// game engine as a word checker.
package dict

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/darknessest/scrabble-mobile/pkg/scrabble"
)

// Set is an in-memory dictionary for one language. Lookup is
// case-insensitive; words are stored uppercased, matching the letters
// tiles carry.
type Set struct {
	lang     scrabble.Language
	words    map[string]struct{}
	snapshot *scrabble.WordSet
}

// New builds a Set from a word list. Words are uppercased and
// deduplicated; the enumeration snapshot is sorted so equal inputs
// produce identical snapshots.
func New(lang scrabble.Language, words []string) *Set {
	s := &Set{lang: lang, words: make(map[string]struct{}, len(words))}
	list := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := s.words[w]; dup {
			continue
		}
		s.words[w] = struct{}{}
		list = append(list, w)
	}
	slices.Sort(list)
	s.snapshot = scrabble.NewWordSet(list)
	return s
}

// Load reads a word list file with one word per line. Blank lines and
// lines starting with '#' are skipped.
func Load(lang scrabble.Language, path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	s := New(lang, words)
	log.Debug().
		Str("path", path).
		Str("language", string(lang)).
		Int("words", s.Len()).
		Msg("word list loaded")
	return s, nil
}

func (s *Set) Language() scrabble.Language {
	return s.lang
}

func (s *Set) Len() int {
	return len(s.words)
}

func (s *Set) Contains(word string) bool {
	_, ok := s.words[strings.ToUpper(word)]
	return ok
}

// CheckWord implements scrabble.WordChecker. A language mismatch is a
// wiring bug on the caller's side and comes back as an error, not as
// "word unknown".
func (s *Set) CheckWord(_ context.Context, word string, lang scrabble.Language) (bool, error) {
	if lang != s.lang {
		return false, fmt.Errorf("dictionary holds %q words, check asked for %q", s.lang, lang)
	}
	return s.Contains(word), nil
}

// AllWords implements scrabble.WordEnumerator. Every call returns the
// same WordSet instance, so the engine's trie cache stays warm.
func (s *Set) AllWords(_ context.Context, lang scrabble.Language) (*scrabble.WordSet, error) {
	if lang != s.lang {
		return nil, fmt.Errorf("dictionary holds %q words, enumeration asked for %q", s.lang, lang)
	}
	return s.snapshot, nil
}

var (
	_ scrabble.WordChecker    = (*Set)(nil)
	_ scrabble.WordEnumerator = (*Set)(nil)
)

// CheckerFunc adapts a function to scrabble.WordChecker, for callers
// that proxy word checks elsewhere.
type CheckerFunc func(ctx context.Context, word string, lang scrabble.Language) (bool, error)

func (f CheckerFunc) CheckWord(ctx context.Context, word string, lang scrabble.Language) (bool, error) {
	return f(ctx, word, lang)
}

var _ scrabble.WordChecker = (CheckerFunc)(nil)
