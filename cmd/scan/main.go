// Command scan times the move-existence scanner against an empty
// board and a seeded one, using a configurable rack and dictionary.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/darknessest/scrabble-mobile/internal/config"
	"github.com/darknessest/scrabble-mobile/pkg/dict"
	"github.com/darknessest/scrabble-mobile/pkg/scrabble"
)

var fallbackWords = []string{
	"AH", "AI", "AN", "AT", "EAR", "EAT", "ERA", "HI", "IN", "IS",
	"IT", "NO", "ON", "OR", "RATE", "RAT", "SEA", "SET", "SO", "STAR",
	"STARE", "TAR", "TEA", "TEARS", "TO",
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	lang := scrabble.Language(cfg.Language)
	tileSet, err := scrabble.TileSetFor(lang)
	if err != nil {
		log.Fatal().Err(err).Msg("unknown language")
	}

	var set *dict.Set
	if cfg.DictionaryPath != "" {
		set, err = dict.Load(lang, cfg.DictionaryPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load dictionary")
		}
	} else {
		if lang != scrabble.English {
			log.Fatal().Str("language", cfg.Language).Msg("a dictionary file is required for languages other than English")
		}
		set = dict.New(lang, fallbackWords)
	}

	ctx := context.Background()
	words, err := set.AllWords(ctx, lang)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to enumerate words")
	}
	minLen := cfg.MinWordLength
	if minLen < 2 {
		minLen = scrabble.DefaultMinWordLength
	}
	scanner := scrabble.NewMoveScanner(tileSet.Alphabet(), minLen)
	rack := rackFromLetters(tileSet, cfg.ScanRack)

	rounds := cfg.ScanRounds
	if rounds <= 0 {
		rounds = 1
	}
	log.Info().
		Str("language", cfg.Language).
		Str("rack", cfg.ScanRack).
		Int("words", set.Len()).
		Int("rounds", rounds).
		Msg("scanning")

	fixtures := []struct {
		name  string
		board *scrabble.Board
	}{
		{"empty", scrabble.NewBoard()},
		{"seeded", seededBoard(tileSet)},
	}
	for _, fx := range fixtures {
		var found bool
		start := time.Now()
		for i := 0; i < rounds; i++ {
			found, err = scanner.HasAnyMove(ctx, words, fx.board, rack)
			if err != nil {
				log.Fatal().Err(err).Str("board", fx.name).Msg("scan failed")
			}
		}
		log.Info().
			Str("board", fx.name).
			Bool("moveExists", found).
			Dur("avg", time.Since(start)/time.Duration(rounds)).
			Msg("scan finished")
	}
}

func rackFromLetters(ts *scrabble.TileSet, letters string) *scrabble.Rack {
	r := &scrabble.Rack{}
	for _, letter := range strings.ToUpper(letters) {
		if letter == scrabble.Blank {
			r.Tiles = append(r.Tiles, scrabble.NewBlankTile())
			continue
		}
		r.Tiles = append(r.Tiles, scrabble.NewTile(letter, ts.Value(letter)))
	}
	return r
}

// seededBoard lays STARE through the center, giving the scanner
// anchors and cross checks to chew on.
func seededBoard(ts *scrabble.TileSet) *scrabble.Board {
	b := scrabble.NewBoard()
	col := 5
	for _, letter := range "STARE" {
		pos := scrabble.Position{Row: scrabble.BoardCenter, Col: col}
		if err := b.PlaceTile(scrabble.NewTile(letter, ts.Value(letter)), pos); err != nil {
			log.Fatal().Err(err).Msg("failed to seed board")
		}
		col++
	}
	return b
}
