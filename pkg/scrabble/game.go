package scrabble

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// DefaultMinWordLength is the shortest word a dictionary play or a
// scanner hit may have.
const DefaultMinWordLength = 2

type EndReason string

const (
	EndReasonFourPasses      EndReason = "four_passes"
	EndReasonNoMovesBagEmpty EndReason = "no_moves_bag_empty"
)

// GameEnd is attached to a MoveResult (or returned by CheckGameEnd)
// when the game has reached a terminal state.
type GameEnd struct {
	Reason      EndReason         `json:"reason"`
	FinalScores map[uuid.UUID]int `json:"finalScores"`
}

// MoveResult is the outcome of a place, pass or exchange attempt.
// Rule violations are not errors: they come back with OK false and a
// human-readable Reason.
type MoveResult struct {
	OK     bool     `json:"ok"`
	Reason string   `json:"reason,omitempty"`
	Points int      `json:"points,omitempty"`
	Words  []Word   `json:"words,omitempty"`
	End    *GameEnd `json:"end,omitempty"`
}

// GameState is the complete, serializable state of one game. It holds
// plain data only; the rules live on Game. Snapshots obtained from
// GetState round-trip through JSON and back into Resume.
type GameState struct {
	ID            uuid.UUID      `json:"id"`
	Language      Language       `json:"language"`
	Board         *Board         `json:"board"`
	Bag           *Bag           `json:"bag"`
	Players       []*Player      `json:"players"`
	CurrentIndex  int            `json:"currentIndex"`
	MoveCount     int            `json:"moveCount"`
	History       []HistoryEntry `json:"history"`
	HistoryLimit  int            `json:"historyLimit"`
	MinWordLength int            `json:"minWordLength"`
	Ended         bool           `json:"ended"`
	EndReason     EndReason      `json:"endReason,omitempty"`
	FinalScored   bool           `json:"finalScored"`
}

// CurrentPlayer returns the player whose turn it is.
func (s *GameState) CurrentPlayer() *Player {
	return s.Players[s.CurrentIndex]
}

func (s *GameState) playerByID(id uuid.UUID) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Clone returns a deep copy of the state. The copy shares nothing
// mutable with the original.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Board = s.Board.Clone()
	c.Bag = s.Bag.Clone()
	c.Players = lo.Map(s.Players, func(p *Player, _ int) *Player {
		return p.Clone()
	})
	c.History = make([]HistoryEntry, len(s.History))
	for i, e := range s.History {
		e.Words = slices.Clone(e.Words)
		c.History[i] = e
	}
	return &c
}

// Game applies the rules to one GameState. It is not safe for
// concurrent use; callers serialize access per game.
type Game struct {
	state   *GameState
	tileSet *TileSet
	scanner *MoveScanner
}

// GameOption tweaks a new or resumed game before play starts.
type GameOption func(*GameState)

// WithHistoryLimit caps how many history entries the game retains.
// Values below 1 are ignored.
func WithHistoryLimit(n int) GameOption {
	return func(s *GameState) {
		if n > 0 {
			s.HistoryLimit = n
		}
	}
}

// WithMinWordLength sets the shortest word the scanner accepts when
// proving a move exists. Values below 2 are ignored.
func WithMinWordLength(n int) GameOption {
	return func(s *GameState) {
		if n >= 2 {
			s.MinWordLength = n
		}
	}
}

// NewGame starts a fresh game in the given language. Racks are dealt
// in player order from a shuffled bag and the first listed player
// opens.
func NewGame(lang Language, playerNames []string, opts ...GameOption) (*Game, error) {
	if len(playerNames) < 2 {
		return nil, errors.New("a game needs at least two players")
	}
	tileSet, err := TileSetFor(lang)
	if err != nil {
		return nil, err
	}

	bag := NewBag(tileSet)
	players := lo.Map(playerNames, func(name string, _ int) *Player {
		return NewPlayer(name, bag)
	})

	state := &GameState{
		ID:            uuid.New(),
		Language:      lang,
		Board:         NewBoard(),
		Bag:           bag,
		Players:       players,
		HistoryLimit:  DefaultHistoryLimit,
		MinWordLength: DefaultMinWordLength,
	}
	for _, opt := range opts {
		opt(state)
	}

	g := &Game{
		state:   state,
		tileSet: tileSet,
		scanner: NewMoveScanner(tileSet.Alphabet(), state.MinWordLength),
	}

	log.Debug().
		Str("game", state.ID.String()).
		Str("language", string(lang)).
		Strs("players", playerNames).
		Msg("game started")
	return g, nil
}

// Resume rebuilds a Game from a snapshot previously produced by
// GetState (possibly via JSON). The snapshot is deep-copied, so the
// caller's copy stays untouched, and the board's derived adjacency
// lists are rebuilt.
func Resume(snapshot *GameState, opts ...GameOption) (*Game, error) {
	if snapshot == nil {
		return nil, errors.New("nil game snapshot")
	}
	tileSet, err := TileSetFor(snapshot.Language)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Players) < 2 {
		return nil, errors.New("snapshot has fewer than two players")
	}
	if snapshot.CurrentIndex < 0 || snapshot.CurrentIndex >= len(snapshot.Players) {
		return nil, fmt.Errorf("snapshot current player index %d out of range", snapshot.CurrentIndex)
	}
	if snapshot.Board == nil || snapshot.Bag == nil {
		return nil, errors.New("snapshot is missing board or bag")
	}

	state := snapshot.Clone()
	if state.HistoryLimit <= 0 {
		state.HistoryLimit = DefaultHistoryLimit
	}
	if state.MinWordLength <= 0 {
		state.MinWordLength = DefaultMinWordLength
	}
	for _, opt := range opts {
		opt(state)
	}

	g := &Game{
		state:   state,
		tileSet: tileSet,
		scanner: NewMoveScanner(tileSet.Alphabet(), state.MinWordLength),
	}
	log.Debug().
		Str("game", state.ID.String()).
		Int("moves", state.MoveCount).
		Msg("game resumed")
	return g, nil
}

// GetState returns a deep copy of the current state. Mutating the
// copy does not affect the game.
func (g *Game) GetState() *GameState {
	return g.state.Clone()
}

// PlaceMove validates and applies a tile placement for the given
// player. Rule violations (wrong turn, bad geometry, word rejected by
// the checker) come back as a failed MoveResult; the error return is
// reserved for checker transport failures, which leave the game
// untouched.
func (g *Game) PlaceMove(ctx context.Context, playerID uuid.UUID, placements []Placement, checker WordChecker) (*MoveResult, error) {
	if g.state.Ended {
		return failResult(ErrGameOver), nil
	}
	p := g.state.playerByID(playerID)
	if p == nil || p != g.state.CurrentPlayer() {
		return failResult(ErrNotYourTurn), nil
	}

	move, err := g.buildTileMove(p, placements)
	if err != nil {
		return failResult(err), nil
	}

	if err := g.checkWords(ctx, checker, move.words); err != nil {
		var invalid *InvalidWordError
		if errors.As(err, &invalid) {
			return failResult(invalid), nil
		}
		return nil, err
	}

	points := move.score(g.state.Board)
	g.applyTileMove(p, move, points)
	g.state.appendHistory(HistoryEntry{
		Kind:     KindTileMove,
		PlayerID: p.ID,
		Points:   points,
		Words:    slices.Clone(move.words),
	})
	g.advanceTurn()

	log.Debug().
		Str("game", g.state.ID.String()).
		Str("player", p.Name).
		Int("points", points).
		Int("words", len(move.words)).
		Msg("move played")

	res := &MoveResult{OK: true, Points: points, Words: move.words}
	res.End = g.evaluateEndQuiet(ctx, checker)
	return res, nil
}

// PassTurn records a pass for the given player and advances the turn.
func (g *Game) PassTurn(playerID uuid.UUID) *MoveResult {
	if g.state.Ended {
		return failResult(ErrGameOver)
	}
	p := g.state.playerByID(playerID)
	if p == nil || p != g.state.CurrentPlayer() {
		return failResult(ErrNotYourTurn)
	}

	g.state.appendHistory(HistoryEntry{Kind: KindPass, PlayerID: p.ID})
	g.advanceTurn()

	res := &MoveResult{OK: true}
	res.End = g.evaluateEndQuiet(context.Background(), nil)
	return res
}

// ExchangeTiles swaps the given rack tiles for fresh ones. The new
// tiles are drawn before the old ones go back in the bag, so none of
// the returned tiles can be drawn right back.
func (g *Game) ExchangeTiles(playerID uuid.UUID, tileIDs []uuid.UUID) *MoveResult {
	if g.state.Ended {
		return failResult(ErrGameOver)
	}
	p := g.state.playerByID(playerID)
	if p == nil || p != g.state.CurrentPlayer() {
		return failResult(ErrNotYourTurn)
	}
	if len(tileIDs) == 0 {
		return failResult(ErrEmptyExchange)
	}
	if !g.state.Bag.CanExchange(len(tileIDs)) {
		return failResult(ErrBagTooSmall)
	}

	seen := make(map[uuid.UUID]bool, len(tileIDs))
	removed := make([]*Tile, 0, len(tileIDs))
	for _, id := range tileIDs {
		tile, err := p.Rack.Get(id)
		if err != nil || seen[id] {
			return failResult(ErrTileNotInRack)
		}
		seen[id] = true
		removed = append(removed, tile)
	}
	for _, tile := range removed {
		if err := p.Rack.Remove(tile.ID); err != nil {
			return failResult(err)
		}
	}
	p.Rack.Fill(g.state.Bag)
	g.state.Bag.ReturnTiles(removed)

	g.state.appendHistory(HistoryEntry{Kind: KindExchange, PlayerID: p.ID})
	g.advanceTurn()

	log.Debug().
		Str("game", g.state.ID.String()).
		Str("player", p.Name).
		Int("tiles", len(removed)).
		Msg("tiles exchanged")

	res := &MoveResult{OK: true}
	res.End = g.evaluateEndQuiet(context.Background(), nil)
	return res
}

// CheckGameEnd runs the full end-of-game evaluation on demand. A nil
// GameEnd means the game goes on, or that the engine cannot prove it
// is over (no word enumeration available). Errors are failures of the
// word source, not verdicts.
func (g *Game) CheckGameEnd(ctx context.Context, checker WordChecker) (*GameEnd, error) {
	if g.state.Ended {
		return g.endPayload(), nil
	}
	return g.evaluateEnd(ctx, checker)
}

// ApplyEndGameScoring deducts each player's remaining rack value from
// their score. It does nothing until the game has ended and applies
// at most once, no matter how often it is called.
func (g *Game) ApplyEndGameScoring() *GameEnd {
	if !g.state.Ended {
		return nil
	}
	if !g.state.FinalScored {
		for _, p := range g.state.Players {
			p.Score -= p.Rack.Value()
		}
		g.state.FinalScored = true
	}
	return g.endPayload()
}

// applyTileMove mutates the state with an already validated move:
// tiles leave the rack and land on the board, blanks take on their
// chosen letter, the score is added and the rack refilled.
func (g *Game) applyTileMove(p *Player, m *tileMove, points int) {
	for pos, c := range m.covers {
		// Validation already proved the tile is in the rack.
		_ = p.Rack.Remove(c.tile.ID)
		if c.tile.Blank {
			c.tile.Letter = c.letter
		}
		g.state.Board.GetSquare(pos).Tile = c.tile
	}
	p.Score += points
	p.Rack.Fill(g.state.Bag)
}

func (g *Game) advanceTurn() {
	g.state.CurrentIndex = (g.state.CurrentIndex + 1) % len(g.state.Players)
	g.state.MoveCount++
}

// checkWords validates every formed word against the checker. A nil
// checker accepts everything. The returned error is either an
// InvalidWordError for a rejected word or a wrapped transport error.
func (g *Game) checkWords(ctx context.Context, checker WordChecker, words []Word) error {
	if checker == nil {
		return nil
	}
	for _, w := range words {
		ok, err := checker.CheckWord(ctx, w.Text, g.state.Language)
		if err != nil {
			return fmt.Errorf("check word %q: %w", w.Text, err)
		}
		if !ok {
			return &InvalidWordError{Word: w.Text}
		}
	}
	return nil
}

// evaluateEnd checks the two termination rules after an action.
//
// Four consecutive alternating passes end a two-player game outright.
// The bag-empty rule is gated on the bag having dropped below half its
// starting size and then being exactly empty; proving "nobody can
// move" further needs the checker to expose the full word set, so with
// no checker, no enumeration capability, or a nil word set the game
// simply stays on. A game is never declared over on a guess.
func (g *Game) evaluateEnd(ctx context.Context, checker WordChecker) (*GameEnd, error) {
	if g.state.fourConsecutivePasses() {
		return g.finish(EndReasonFourPasses), nil
	}

	if !g.state.Bag.BelowHalf() || !g.state.Bag.IsEmpty() {
		return nil, nil
	}
	enum, ok := checker.(WordEnumerator)
	if !ok {
		return nil, nil
	}
	words, err := enum.AllWords(ctx, g.state.Language)
	if err != nil {
		return nil, fmt.Errorf("enumerate words: %w", err)
	}
	if words == nil {
		return nil, nil
	}

	for _, p := range g.state.Players {
		has, err := g.scanner.HasAnyMove(ctx, words, g.state.Board, p.Rack)
		if err != nil {
			return nil, err
		}
		if has {
			return nil, nil
		}
	}
	return g.finish(EndReasonNoMovesBagEmpty), nil
}

// evaluateEndQuiet is evaluateEnd for the tail of an action: a word
// source failure there must not fail the already applied move, so it
// is logged and the verdict stays "not proven over".
func (g *Game) evaluateEndQuiet(ctx context.Context, checker WordChecker) *GameEnd {
	end, err := g.evaluateEnd(ctx, checker)
	if err != nil {
		log.Debug().
			Str("game", g.state.ID.String()).
			Err(err).
			Msg("end-of-game check not conclusive")
		return nil
	}
	return end
}

func (g *Game) finish(reason EndReason) *GameEnd {
	g.state.Ended = true
	g.state.EndReason = reason
	end := g.ApplyEndGameScoring()
	log.Debug().
		Str("game", g.state.ID.String()).
		Str("reason", string(reason)).
		Msg("game over")
	return end
}

func (g *Game) endPayload() *GameEnd {
	end := &GameEnd{
		Reason:      g.state.EndReason,
		FinalScores: make(map[uuid.UUID]int, len(g.state.Players)),
	}
	for _, p := range g.state.Players {
		end.FinalScores[p.ID] = p.Score
	}
	return end
}

func failResult(err error) *MoveResult {
	return &MoveResult{Reason: err.Error()}
}
