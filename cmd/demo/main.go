// Command demo plays a short scripted two-player game and prints the
// board, the move results and the final snapshot size. It exercises
// the whole engine surface: place, exchange, pass, end-of-game check
// and snapshot round-trip.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/darknessest/scrabble-mobile/internal/config"
	"github.com/darknessest/scrabble-mobile/pkg/dict"
	"github.com/darknessest/scrabble-mobile/pkg/scrabble"
)

// demoWords is the built-in dictionary used when no word list file is
// configured. Just enough two-letter words for the walkthrough.
var demoWords = []string{
	"AH", "AI", "AN", "AT", "DO", "GO", "HI", "IN",
	"IS", "IT", "NO", "OH", "ON", "OR", "SO", "TO",
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

	// The walkthrough is scripted in English; the configured language
	// only affects the scan tool.
	lang := scrabble.English
	checker, err := loadChecker(lang, cfg.DictionaryPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}

	game, err := riggedGame(lang, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up game")
	}

	ctx := context.Background()
	state := game.GetState()
	alice, bob := state.Players[0], state.Players[1]

	// Opening move: HI across the center.
	res, err := game.PlaceMove(ctx, alice.ID, []scrabble.Placement{
		{Position: scrabble.Position{Row: 7, Col: 7}, TileID: rackTileID(alice.Rack, 'H'), Letter: 'H'},
		{Position: scrabble.Position{Row: 7, Col: 8}, TileID: rackTileID(alice.Rack, 'I'), Letter: 'I'},
	}, checker)
	report("Alice plays HI", res, err)

	// Hook IT onto the I with a single tile.
	res, err = game.PlaceMove(ctx, bob.ID, []scrabble.Placement{
		{Position: scrabble.Position{Row: 8, Col: 8}, TileID: rackTileID(bob.Rack, 'T'), Letter: 'T'},
	}, checker)
	report("Bob plays IT", res, err)

	// Alice swaps three tiles, Bob passes.
	state = game.GetState()
	swap := []uuid.UUID{
		state.Players[0].Rack.Tiles[0].ID,
		state.Players[0].Rack.Tiles[1].ID,
		state.Players[0].Rack.Tiles[2].ID,
	}
	report("Alice exchanges 3 tiles", game.ExchangeTiles(alice.ID, swap), nil)
	report("Bob passes", game.PassTurn(bob.ID), nil)

	end, err := game.CheckGameEnd(ctx, checker)
	if err != nil {
		log.Fatal().Err(err).Msg("end-of-game check failed")
	}
	if end == nil {
		fmt.Println("\nGame still in progress.")
	} else {
		fmt.Printf("\nGame over: %s\n", end.Reason)
	}

	final := game.GetState()
	fmt.Println(final.Board)
	for _, p := range final.Players {
		fmt.Printf("%-10s %4d points, rack %s\n", p.Name, p.Score, p.Rack)
	}
	fmt.Println("\nHistory:")
	names := make(map[uuid.UUID]string, len(final.Players))
	for _, p := range final.Players {
		names[p.ID] = p.Name
	}
	for i, e := range final.History {
		line := fmt.Sprintf("%2d. %-10s %-8s", i+1, names[e.PlayerID], e.Kind)
		if e.Kind == scrabble.KindTileMove {
			line += fmt.Sprintf(" %3d points", e.Points)
			for _, w := range e.Words {
				line += fmt.Sprintf("  %s@%s", w.Text, w.Start)
			}
		}
		fmt.Println(line)
	}

	// Snapshots survive JSON and come back as a playable game.
	data, err := json.Marshal(final)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to marshal snapshot")
	}
	var restored scrabble.GameState
	if err := json.Unmarshal(data, &restored); err != nil {
		log.Fatal().Err(err).Msg("failed to unmarshal snapshot")
	}
	if _, err := scrabble.Resume(&restored); err != nil {
		log.Fatal().Err(err).Msg("failed to resume snapshot")
	}
	log.Info().Int("bytes", len(data)).Msg("snapshot round-trips through JSON")
}

func playerNames(cfg *config.Config) []string {
	names := []string{"Alice", "Bob"}
	if len(cfg.Players) >= 2 {
		names = cfg.Players[:2]
	}
	return names
}

func loadChecker(lang scrabble.Language, path string) (*dict.Set, error) {
	if path == "" {
		return dict.New(lang, demoWords), nil
	}
	return dict.Load(lang, path)
}

// riggedGame builds a game whose racks are stacked for the scripted
// moves: a snapshot is assembled by hand, then resumed like any saved
// game would be.
func riggedGame(lang scrabble.Language, cfg *config.Config) (*scrabble.Game, error) {
	tileSet, err := scrabble.TileSetFor(lang)
	if err != nil {
		return nil, err
	}
	bag := scrabble.NewBag(tileSet)

	names := playerNames(cfg)
	state := &scrabble.GameState{
		ID:       uuid.New(),
		Language: lang,
		Board:    scrabble.NewBoard(),
		Bag:      bag,
		Players: []*scrabble.Player{
			{ID: uuid.New(), Name: names[0], Rack: &scrabble.Rack{Tiles: takeFromBag(bag, "HIDEOUS")}},
			{ID: uuid.New(), Name: names[1], Rack: &scrabble.Rack{Tiles: takeFromBag(bag, "TRAINER")}},
		},
	}
	return scrabble.Resume(state,
		scrabble.WithHistoryLimit(cfg.HistoryLimit),
		scrabble.WithMinWordLength(cfg.MinWordLength))
}

// takeFromBag pulls one tile per requested letter out of the bag.
// Every letter of a fresh bag's distribution is available, so the
// result always has len(letters) tiles.
func takeFromBag(b *scrabble.Bag, letters string) []*scrabble.Tile {
	tiles := make([]*scrabble.Tile, 0, len(letters))
	for _, letter := range letters {
		for i, t := range b.Tiles {
			if t.Letter == letter {
				tiles = append(tiles, t)
				b.Tiles = append(b.Tiles[:i], b.Tiles[i+1:]...)
				break
			}
		}
	}
	return tiles
}

func rackTileID(r *scrabble.Rack, letter rune) uuid.UUID {
	for _, t := range r.Tiles {
		if t.Letter == letter {
			return t.ID
		}
	}
	return uuid.Nil
}

func report(action string, res *scrabble.MoveResult, err error) {
	if err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("move failed hard")
	}
	if !res.OK {
		fmt.Printf("%-28s rejected: %s\n", action, res.Reason)
		return
	}
	line := fmt.Sprintf("%-28s ok", action)
	if res.Points > 0 {
		line += fmt.Sprintf(", %d points", res.Points)
	}
	fmt.Println(line)
}
