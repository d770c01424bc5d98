package scrabble

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/matryer/is"
)

var errDictDown = errors.New("dictionary unreachable")

// testChecker is an in-memory word source. Setting err makes every
// call fail; clearing set makes it decline word enumeration.
type testChecker struct {
	words map[string]bool
	set   *WordSet
	err   error
}

func newTestChecker(words ...string) *testChecker {
	c := &testChecker{words: make(map[string]bool, len(words))}
	for _, w := range words {
		c.words[w] = true
	}
	c.set = NewWordSet(words)
	return c
}

func (c *testChecker) CheckWord(_ context.Context, word string, _ Language) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.words[word], nil
}

func (c *testChecker) AllWords(_ context.Context, _ Language) (*WordSet, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.set, nil
}

// checkOnly hides the enumeration capability of the wrapped checker.
type checkOnly struct {
	inner WordChecker
}

func (c checkOnly) CheckWord(ctx context.Context, word string, lang Language) (bool, error) {
	return c.inner.CheckWord(ctx, word, lang)
}

func mustGame(t *testing.T, names ...string) *Game {
	t.Helper()
	if len(names) == 0 {
		names = []string{"Alice", "Bob"}
	}
	g, err := NewGame(English, names)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

// giveRack rebuilds the game so that player idx holds exactly the
// given letters ('*' for a blank), pulled from the bag. The player's
// previous tiles go back into the bag first.
func giveRack(t *testing.T, g *Game, idx int, letters string) *Game {
	t.Helper()
	st := g.GetState()
	p := st.Players[idx]
	st.Bag.Tiles = append(st.Bag.Tiles, p.Rack.Tiles...)
	p.Rack.Tiles = nil
	for _, letter := range letters {
		found := false
		for i, tile := range st.Bag.Tiles {
			if tile.Letter == letter {
				p.Rack.Tiles = append(p.Rack.Tiles, tile)
				st.Bag.Tiles = append(st.Bag.Tiles[:i], st.Bag.Tiles[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("no %q tile left in the bag", letter)
		}
	}
	resumed, err := Resume(st)
	if err != nil {
		t.Fatalf("resume with scripted rack: %v", err)
	}
	return resumed
}

// placementsFor builds placements spelling word from player idx's rack
// at consecutive squares starting at pos.
func placementsFor(t *testing.T, g *Game, idx int, word string, pos Position, horizontal bool) []Placement {
	t.Helper()
	rack := g.GetState().Players[idx].Rack
	used := make(map[uuid.UUID]bool, len(word))
	var out []Placement
	for _, letter := range word {
		var id uuid.UUID
		for _, tile := range rack.Tiles {
			if !used[tile.ID] && tile.Letter == letter {
				id = tile.ID
				break
			}
		}
		if id == uuid.Nil {
			t.Fatalf("no %q tile available in rack %s", letter, rack)
		}
		used[id] = true
		out = append(out, Placement{Position: pos, TileID: id, Letter: letter})
		pos = pos.Step(horizontal)
	}
	return out
}

func totalTilesInPlay(st *GameState) int {
	n := st.Bag.TileCount()
	for _, p := range st.Players {
		n += p.Rack.Len()
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if st.Board.Squares[row][col].Tile != nil {
				n++
			}
		}
	}
	return n
}

func TestNewGameDealsRacks(t *testing.T) {
	is := is.New(t)

	g := mustGame(t)
	st := g.GetState()

	is.Equal(len(st.Players), 2)
	is.Equal(st.Players[0].Name, "Alice")
	is.Equal(st.Players[1].Name, "Bob")
	is.True(st.Players[0].ID != st.Players[1].ID)
	is.Equal(st.Players[0].Rack.Len(), RackSize)
	is.Equal(st.Players[1].Rack.Len(), RackSize)
	is.Equal(st.Bag.TileCount(), 100-2*RackSize)
	is.Equal(st.CurrentIndex, 0) // the first listed player opens
	is.Equal(st.MoveCount, 0)
	is.Equal(st.Language, English)
	is.Equal(st.HistoryLimit, DefaultHistoryLimit)
	is.Equal(st.MinWordLength, DefaultMinWordLength)
	is.True(st.Board.IsEmpty())
	is.True(!st.Ended)
}

func TestNewGameRejectsBadSetups(t *testing.T) {
	is := is.New(t)

	_, err := NewGame(English, []string{"Solo"})
	is.True(err != nil) // one player is not a game

	_, err = NewGame(Language("eo"), []string{"Alice", "Bob"})
	is.True(err != nil) // unsupported language
}

func TestGameOptions(t *testing.T) {
	is := is.New(t)

	g, err := NewGame(English, []string{"Alice", "Bob"}, WithHistoryLimit(8), WithMinWordLength(3))
	is.NoErr(err)
	st := g.GetState()
	is.Equal(st.HistoryLimit, 8)
	is.Equal(st.MinWordLength, 3)

	g, err = NewGame(English, []string{"Alice", "Bob"}, WithHistoryLimit(0), WithMinWordLength(1))
	is.NoErr(err)
	st = g.GetState()
	is.Equal(st.HistoryLimit, DefaultHistoryLimit) // out-of-range values keep the default
	is.Equal(st.MinWordLength, DefaultMinWordLength)
}

func TestResumeRejectsBadSnapshots(t *testing.T) {
	g := mustGame(t)

	cases := []struct {
		name  string
		wreck func(st *GameState) *GameState
	}{
		{"nil snapshot", func(st *GameState) *GameState { return nil }},
		{"unknown language", func(st *GameState) *GameState { st.Language = "eo"; return st }},
		{"single player", func(st *GameState) *GameState { st.Players = st.Players[:1]; return st }},
		{"index out of range", func(st *GameState) *GameState { st.CurrentIndex = 2; return st }},
		{"negative index", func(st *GameState) *GameState { st.CurrentIndex = -1; return st }},
		{"missing board", func(st *GameState) *GameState { st.Board = nil; return st }},
		{"missing bag", func(st *GameState) *GameState { st.Bag = nil; return st }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			is := is.New(t)
			_, err := Resume(c.wreck(g.GetState()))
			is.True(err != nil)
		})
	}
}

func TestGetStateIsDetached(t *testing.T) {
	is := is.New(t)

	g := mustGame(t)
	st := g.GetState()
	st.Players[0].Score = 999
	st.Players[0].Rack.Tiles = nil
	ts, err := TileSetFor(English)
	is.NoErr(err)
	is.NoErr(st.Board.PlaceTile(NewTile('Z', ts.Value('Z')), Position{0, 0}))

	fresh := g.GetState()
	is.Equal(fresh.Players[0].Score, 0)
	is.Equal(fresh.Players[0].Rack.Len(), RackSize)
	is.True(fresh.Board.IsEmpty())
}

func TestPassTurnRotates(t *testing.T) {
	is := is.New(t)

	g := mustGame(t)
	st := g.GetState()
	alice, bob := st.Players[0], st.Players[1]

	res := g.PassTurn(bob.ID)
	is.True(!res.OK)
	is.Equal(res.Reason, "Not your turn")

	res = g.PassTurn(alice.ID)
	is.True(res.OK)
	is.True(res.End == nil)
	res = g.PassTurn(bob.ID)
	is.True(res.OK)

	after := g.GetState()
	is.Equal(after.CurrentIndex, 0)
	is.Equal(after.MoveCount, 2)
	is.Equal(len(after.History), 2)
	is.Equal(after.History[0], HistoryEntry{Kind: KindPass, PlayerID: alice.ID})
	is.Equal(after.History[1], HistoryEntry{Kind: KindPass, PlayerID: bob.ID})
}

func TestExchangeTiles(t *testing.T) {
	is := is.New(t)

	g := mustGame(t)
	st := g.GetState()
	alice := st.Players[0]
	swapOut := []uuid.UUID{
		alice.Rack.Tiles[0].ID,
		alice.Rack.Tiles[1].ID,
		alice.Rack.Tiles[2].ID,
	}

	res := g.ExchangeTiles(alice.ID, swapOut)
	is.True(res.OK)
	is.True(res.End == nil)

	after := g.GetState()
	is.Equal(after.Players[0].Rack.Len(), RackSize) // refilled to a full rack
	is.Equal(after.Bag.TileCount(), 100-2*RackSize) // bag count unchanged by a swap
	is.Equal(after.CurrentIndex, 1)                 // exchanging costs the turn
	is.Equal(after.History, []HistoryEntry{{Kind: KindExchange, PlayerID: alice.ID}})

	ids := make(map[uuid.UUID]bool, RackSize)
	for _, tile := range after.Players[0].Rack.Tiles {
		is.True(!ids[tile.ID]) // no duplicate tiles in the rack
		ids[tile.ID] = true
	}
	for _, id := range swapOut {
		is.True(!ids[id]) // swapped tiles cannot come straight back
	}
	is.Equal(totalTilesInPlay(after), 100)
}

func TestExchangeTilesRejections(t *testing.T) {
	is := is.New(t)

	g := mustGame(t)
	st := g.GetState()
	alice, bob := st.Players[0], st.Players[1]

	res := g.ExchangeTiles(bob.ID, []uuid.UUID{bob.Rack.Tiles[0].ID})
	is.Equal(res.Reason, "Not your turn")

	res = g.ExchangeTiles(alice.ID, nil)
	is.Equal(res.Reason, "No tiles to exchange")

	res = g.ExchangeTiles(alice.ID, []uuid.UUID{uuid.New()})
	is.Equal(res.Reason, "Tile not in rack")

	res = g.ExchangeTiles(alice.ID, []uuid.UUID{alice.Rack.Tiles[0].ID, alice.Rack.Tiles[0].ID})
	is.Equal(res.Reason, "Tile not in rack") // the same tile twice

	res = g.ExchangeTiles(alice.ID, []uuid.UUID{bob.Rack.Tiles[0].ID})
	is.Equal(res.Reason, "Tile not in rack") // someone else's tile

	drained := g.GetState()
	drained.Bag.Tiles = drained.Bag.Tiles[:2]
	g2, err := Resume(drained)
	is.NoErr(err)
	st2 := g2.GetState()
	res = g2.ExchangeTiles(st2.Players[0].ID, []uuid.UUID{
		st2.Players[0].Rack.Tiles[0].ID,
		st2.Players[0].Rack.Tiles[1].ID,
		st2.Players[0].Rack.Tiles[2].ID,
	})
	is.Equal(res.Reason, "Not enough tiles in bag to exchange")

	after := g.GetState()
	is.Equal(after.MoveCount, 0) // rejected exchanges change nothing
	is.Equal(len(after.History), 0)
}

func TestFourPassesEndTheGame(t *testing.T) {
	is := is.New(t)

	g := mustGame(t)
	st := g.GetState()
	alice, bob := st.Players[0], st.Players[1]
	aliceRackValue := alice.Rack.Value()
	bobRackValue := bob.Rack.Value()

	is.True(g.PassTurn(alice.ID).End == nil)
	is.True(g.PassTurn(bob.ID).End == nil)
	is.True(g.PassTurn(alice.ID).End == nil)

	res := g.PassTurn(bob.ID)
	is.True(res.OK)
	is.True(res.End != nil) // the fourth straight pass ends it
	is.Equal(res.End.Reason, EndReasonFourPasses)
	is.Equal(res.End.FinalScores[alice.ID], -aliceRackValue)
	is.Equal(res.End.FinalScores[bob.ID], -bobRackValue)

	after := g.GetState()
	is.True(after.Ended)
	is.Equal(after.EndReason, EndReasonFourPasses)
	is.True(after.FinalScored)
	is.Equal(after.Players[0].Score, -aliceRackValue)

	is.Equal(g.PassTurn(alice.ID).Reason, "Game is over")
	is.Equal(g.ExchangeTiles(alice.ID, []uuid.UUID{uuid.New()}).Reason, "Game is over")
	moveRes, err := g.PlaceMove(context.Background(), alice.ID, nil, nil)
	is.NoErr(err)
	is.Equal(moveRes.Reason, "Game is over")

	// Scoring only applies once no matter how often it is requested.
	again := g.ApplyEndGameScoring()
	is.Equal(again.FinalScores[alice.ID], -aliceRackValue)

	end, err := g.CheckGameEnd(context.Background(), nil)
	is.NoErr(err)
	is.Equal(end.Reason, EndReasonFourPasses)
}

func TestExchangeResetsThePassWindow(t *testing.T) {
	is := is.New(t)

	g := mustGame(t)
	st := g.GetState()
	alice, bob := st.Players[0], st.Players[1]

	is.True(g.PassTurn(alice.ID).End == nil)
	is.True(g.PassTurn(bob.ID).End == nil)
	is.True(g.PassTurn(alice.ID).End == nil)

	exchange := g.ExchangeTiles(bob.ID, []uuid.UUID{g.GetState().Players[1].Rack.Tiles[0].ID})
	is.True(exchange.OK)
	is.True(exchange.End == nil) // the exchange breaks the pass streak

	is.True(g.PassTurn(alice.ID).End == nil)
	is.True(g.PassTurn(bob.ID).End == nil)
	is.True(g.PassTurn(alice.ID).End == nil)

	res := g.PassTurn(bob.ID)
	is.True(res.End != nil) // four clean passes after the exchange
	is.Equal(res.End.Reason, EndReasonFourPasses)
}

func TestHistoryKeepsOnlyRecentEntries(t *testing.T) {
	is := is.New(t)

	g, err := NewGame(English, []string{"Alice", "Bob"}, WithHistoryLimit(4))
	is.NoErr(err)
	st := g.GetState()
	alice, bob := st.Players[0], st.Players[1]

	// Alternating exchanges and passes never trip the four-pass rule.
	for i := 0; i < 3; i++ {
		res := g.ExchangeTiles(alice.ID, []uuid.UUID{g.GetState().Players[0].Rack.Tiles[0].ID})
		is.True(res.OK)
		res = g.PassTurn(bob.ID)
		is.True(res.OK)
		is.True(res.End == nil)
	}

	after := g.GetState()
	is.Equal(after.MoveCount, 6)
	is.Equal(len(after.History), 4) // oldest entries dropped
	is.Equal(after.History[0], HistoryEntry{Kind: KindExchange, PlayerID: alice.ID})
	is.Equal(after.History[3], HistoryEntry{Kind: KindPass, PlayerID: bob.ID})
}

func TestSnapshotSurvivesJSON(t *testing.T) {
	is := is.New(t)

	g := giveRack(t, mustGame(t), 0, "HIDEOUS")
	checker := newTestChecker("HI", "HIS")
	st := g.GetState()
	alice, bob := st.Players[0], st.Players[1]
	ctx := context.Background()

	res, err := g.PlaceMove(ctx, alice.ID, placementsFor(t, g, 0, "HI", Position{7, 7}, true), checker)
	is.NoErr(err)
	is.True(res.OK)
	is.True(g.PassTurn(bob.ID).OK)

	raw, err := json.Marshal(g.GetState())
	is.NoErr(err)
	var decoded GameState
	is.NoErr(json.Unmarshal(raw, &decoded))

	resumed, err := Resume(&decoded)
	is.NoErr(err)
	after := resumed.GetState()
	is.Equal(after.ID, st.ID)
	is.Equal(after.Language, English)
	is.Equal(after.CurrentIndex, 0)
	is.Equal(after.MoveCount, 2)
	is.Equal(after.Players[0].Score, 10)
	is.Equal(after.Board.GetSquare(Position{7, 7}).Tile.Letter, 'H')
	is.Equal(after.Board.GetSquare(Position{7, 8}).Tile.Letter, 'I')
	is.Equal(len(after.History), 2)
	is.Equal(after.History[0].Words, []Word{{Start: Position{7, 7}, Horizontal: true, Text: "HI"}})
	is.Equal(totalTilesInPlay(after), 100)

	// The revived game is fully playable.
	resumed = giveRack(t, resumed, 0, "SOULFUL")
	res, err = resumed.PlaceMove(ctx, alice.ID, placementsFor(t, resumed, 0, "S", Position{7, 9}, true), checker)
	is.NoErr(err)
	is.True(res.OK)
	is.Equal(res.Words[0].Text, "HIS")
}

func TestTileConservation(t *testing.T) {
	is := is.New(t)

	g := giveRack(t, mustGame(t), 0, "HIDEOUS")
	checker := newTestChecker("HI")
	st := g.GetState()
	alice, bob := st.Players[0], st.Players[1]

	is.Equal(totalTilesInPlay(g.GetState()), 100)

	res, err := g.PlaceMove(context.Background(), alice.ID, placementsFor(t, g, 0, "HI", Position{7, 7}, true), checker)
	is.NoErr(err)
	is.True(res.OK)
	is.Equal(totalTilesInPlay(g.GetState()), 100)

	res = g.ExchangeTiles(bob.ID, []uuid.UUID{g.GetState().Players[1].Rack.Tiles[0].ID})
	is.True(res.OK)
	is.Equal(totalTilesInPlay(g.GetState()), 100)

	res = g.PassTurn(alice.ID)
	is.True(res.OK)
	is.Equal(totalTilesInPlay(g.GetState()), 100)
}

func TestPlaceMoveCheckerFailure(t *testing.T) {
	is := is.New(t)

	g := giveRack(t, mustGame(t), 0, "HIDEOUS")
	checker := newTestChecker("HI")
	checker.err = errDictDown
	alice := g.GetState().Players[0]

	res, err := g.PlaceMove(context.Background(), alice.ID, placementsFor(t, g, 0, "HI", Position{7, 7}, true), checker)
	is.True(res == nil)
	is.True(errors.Is(err, errDictDown))

	after := g.GetState()
	is.Equal(after.MoveCount, 0) // a checker outage leaves the game untouched
	is.True(after.Board.IsEmpty())
	is.Equal(after.Players[0].Rack.Len(), RackSize)
	is.Equal(after.Players[0].Score, 0)
}

// emptyBagGame scripts a game whose bag is exhausted and whose players
// hold the given racks, the setup for "no moves left" detection.
func emptyBagGame(t *testing.T, rack0, rack1 string) *Game {
	t.Helper()
	g := giveRack(t, mustGame(t), 0, rack0)
	g = giveRack(t, g, 1, rack1)
	st := g.GetState()
	st.Bag.Tiles = nil
	g, err := Resume(st)
	if err != nil {
		t.Fatalf("resume with empty bag: %v", err)
	}
	return g
}

func TestCheckGameEndNoMovesLeft(t *testing.T) {
	is := is.New(t)

	g := emptyBagGame(t, "BCDFGHJ", "KLMNPQV")
	checker := newTestChecker("AA", "EE")
	st := g.GetState()

	end, err := g.CheckGameEnd(context.Background(), checker)
	is.NoErr(err)
	is.True(end != nil) // bag empty and neither rack can play a word
	is.Equal(end.Reason, EndReasonNoMovesBagEmpty)
	is.Equal(end.FinalScores[st.Players[0].ID], -st.Players[0].Rack.Value())
	is.Equal(end.FinalScores[st.Players[1].ID], -st.Players[1].Rack.Value())
	is.True(g.GetState().Ended)
}

func TestCheckGameEndPlayerStillHasMoves(t *testing.T) {
	is := is.New(t)

	g := emptyBagGame(t, "AABCDFG", "KLMNPQV")
	checker := newTestChecker("AA", "EE")

	end, err := g.CheckGameEnd(context.Background(), checker)
	is.NoErr(err)
	is.True(end == nil) // the first rack can still play AA
	is.True(!g.GetState().Ended)
}

func TestCheckGameEndBagNotEmpty(t *testing.T) {
	is := is.New(t)

	g := giveRack(t, mustGame(t), 0, "BCDFGHJ")
	g = giveRack(t, g, 1, "KLMNPQV")
	st := g.GetState()
	st.Bag.Tiles = st.Bag.Tiles[:1]
	g, err := Resume(st)
	is.NoErr(err)

	end, err := g.CheckGameEnd(context.Background(), newTestChecker("AA"))
	is.NoErr(err)
	is.True(end == nil) // one tile left in the bag keeps the game alive
}

func TestCheckGameEndNeedsEnumeration(t *testing.T) {
	is := is.New(t)

	g := emptyBagGame(t, "BCDFGHJ", "KLMNPQV")
	ctx := context.Background()

	end, err := g.CheckGameEnd(ctx, checkOnly{inner: newTestChecker("AA")})
	is.NoErr(err)
	is.True(end == nil) // no enumeration capability, no verdict

	declining := newTestChecker("AA")
	declining.set = nil
	end, err = g.CheckGameEnd(ctx, declining)
	is.NoErr(err)
	is.True(end == nil) // a nil word set declines the question

	end, err = g.CheckGameEnd(ctx, nil)
	is.NoErr(err)
	is.True(end == nil)
	is.True(!g.GetState().Ended)
}

func TestCheckGameEndEnumerationFailure(t *testing.T) {
	is := is.New(t)

	g := emptyBagGame(t, "BCDFGHJ", "KLMNPQV")
	checker := newTestChecker("AA")
	checker.err = errDictDown

	end, err := g.CheckGameEnd(context.Background(), checker)
	is.True(end == nil)
	is.True(errors.Is(err, errDictDown)) // failures surface, they are not verdicts
	is.True(!g.GetState().Ended)
}
