package game

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/leftrightcenter/internal/gameid"
	"github.com/lox/leftrightcenter/internal/randutil"
)

// MinPlayers is the smallest legal table.
const MinPlayers = 3

// Engine owns the state of a single game: the roster, chip counts, the
// center pool and the turn cursor. An Engine is not safe for concurrent
// use; a game is strictly sequential.
type Engine struct {
	id      string
	players []Player
	current int
	center  int
	turns   int
	over    bool

	roller   Roller
	logger   *log.Logger
	eventBus EventBus
	clock    quartz.Clock
}

// TurnResult is what one call to TakeTurn produced.
type TurnResult struct {
	Player     int
	PlayerName string
	Faces      []DieFace // in the order they were resolved
	Chips      []int     // every player's chips after the turn
	Center     int       // chips retired so far, including this turn
	Eliminated bool      // the roller ended the turn with no chips
	GameOver   bool
}

// New creates a game for playerCount players named by names. Every player
// starts with StartingChips and the cursor starts on player 0.
func New(playerCount int, names []string, opts ...Option) (*Engine, error) {
	if playerCount < MinPlayers {
		return nil, fmt.Errorf("%w: need at least %d players, got %d", ErrInvalidSetup, MinPlayers, playerCount)
	}
	if len(names) != playerCount {
		return nil, fmt.Errorf("%w: %d names for %d players", ErrInvalidSetup, len(names), playerCount)
	}

	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.roller == nil {
		rng := cfg.rng
		if rng == nil {
			seed, err := randutil.NewSeed()
			if err != nil {
				return nil, err
			}
			rng = randutil.New(seed)
		}
		cfg.roller = NewDieRoller(rng)
	}
	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}
	if cfg.eventBus == nil {
		cfg.eventBus = NewEventBus()
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.id == "" {
		cfg.id = gameid.Generate()
	}

	players := make([]Player, playerCount)
	for i, name := range names {
		players[i] = Player{Index: i, Name: name, Chips: StartingChips}
	}

	e := &Engine{
		id:       cfg.id,
		players:  players,
		roller:   cfg.roller,
		logger:   cfg.logger.With("game", cfg.id),
		eventBus: cfg.eventBus,
		clock:    cfg.clock,
	}

	e.logger.Debug("Starting game", "players", playerCount)
	e.eventBus.Publish(GameStartEvent{GameID: e.id, Players: e.Players(), timestamp: e.clock.Now()})

	return e, nil
}

// ID returns the game identifier.
func (e *Engine) ID() string { return e.id }

// EventBus returns the bus events are published on.
func (e *Engine) EventBus() EventBus { return e.eventBus }

// TakeTurn rolls min(chips, 3) dice for player current and resolves each
// die against the live chip counts before rolling the next. A player with
// no chips rolls no dice.
func (e *Engine) TakeTurn(current int) (TurnResult, error) {
	if current < 0 || current >= len(e.players) {
		return TurnResult{}, fmt.Errorf("%w: index %d, %d players", ErrUnknownPlayer, current, len(e.players))
	}
	if e.IsGameOver() {
		return TurnResult{}, ErrGameOver
	}

	p := &e.players[current]
	startChips := p.Chips
	dice := p.Dice()
	faces := make([]DieFace, 0, dice)

	for i := 0; i < dice; i++ {
		face := e.roller.Roll()
		e.resolve(current, face)
		faces = append(faces, face)
	}
	e.turns++

	result := TurnResult{
		Player:     current,
		PlayerName: p.Name,
		Faces:      faces,
		Chips:      e.chipCounts(),
		Center:     e.center,
		Eliminated: startChips > 0 && p.Chips == 0,
		GameOver:   e.IsGameOver(),
	}

	e.logger.Debug("Turn resolved", "player", p.Name, "faces", faces, "chips", result.Chips, "center", e.center)

	if err := e.ValidateChipConservation(); err != nil {
		e.logger.Error("Chip conservation violation detected!", "error", err)
		return result, fmt.Errorf("chip conservation violation: %w", err)
	}

	now := e.clock.Now()
	e.eventBus.Publish(TurnEvent{GameID: e.id, Turn: e.turns, Result: result, timestamp: now})
	if result.Eliminated {
		e.eventBus.Publish(PlayerEliminatedEvent{GameID: e.id, Player: *p, Turn: e.turns, timestamp: now})
	}
	if result.GameOver && !e.over {
		e.over = true
		winner, _ := e.Winner()
		e.logger.Debug("Game over", "winner", winner.Name, "turns", e.turns, "center", e.center)
		e.eventBus.Publish(GameOverEvent{GameID: e.id, Winner: winner, Turns: e.turns, Center: e.center, timestamp: now})
	}

	return result, nil
}

// resolve applies one die rolled by player i.
func (e *Engine) resolve(i int, face DieFace) {
	if !face.MovesChip() || e.players[i].Chips == 0 {
		return
	}
	n := len(e.players)
	e.players[i].Chips--
	switch face {
	case Left:
		e.players[(i-1+n)%n].Chips++
	case Right:
		// The last seat passes to seat 0, mirroring Left's wrap.
		e.players[(i+1)%n].Chips++
	case Center:
		e.center++
	}
}

// AdvanceTurn moves the cursor to the first player strictly after current
// (wrapping) who holds chips, and returns that index. If current is the only
// holder the cursor comes back to current.
func (e *Engine) AdvanceTurn(current int) int {
	n := len(e.players)
	current = ((current % n) + n) % n
	for step := 1; step <= n; step++ {
		next := (current + step) % n
		if e.players[next].Chips > 0 {
			e.current = next
			return next
		}
	}
	e.current = current
	return current
}

// PlayTurn takes the turn for the player under the cursor and advances the
// cursor. Once the game is over the cursor rests on the winner.
func (e *Engine) PlayTurn() (TurnResult, error) {
	current := e.current
	result, err := e.TakeTurn(current)
	if err != nil {
		return result, err
	}
	e.AdvanceTurn(current)
	return result, nil
}

// Run plays turns until the game is over or ctx is done.
func (e *Engine) Run(ctx context.Context) (Player, error) {
	for !e.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return Player{}, err
		}
		if _, err := e.PlayTurn(); err != nil {
			return Player{}, err
		}
	}
	return e.Winner()
}

// IsGameOver is true iff exactly one player holds chips.
func (e *Engine) IsGameOver() bool {
	return e.ActivePlayers() == 1
}

// Winner returns the sole player holding chips. It returns ErrNoWinnerYet
// while the game is still in progress.
func (e *Engine) Winner() (Player, error) {
	if !e.IsGameOver() {
		return Player{}, ErrNoWinnerYet
	}
	for _, p := range e.players {
		if p.Chips > 0 {
			return p, nil
		}
	}
	return Player{}, ErrNoWinnerYet
}

// ActivePlayers counts players holding chips.
func (e *Engine) ActivePlayers() int {
	active := 0
	for _, p := range e.players {
		if p.Chips > 0 {
			active++
		}
	}
	return active
}

// CurrentPlayerIndex returns the turn cursor.
func (e *Engine) CurrentPlayerIndex() int { return e.current }

// CurrentPlayer returns a copy of the player under the cursor.
func (e *Engine) CurrentPlayer() Player { return e.players[e.current] }

// ChipsOf returns player i's chips. It panics if i is out of range.
func (e *Engine) ChipsOf(i int) int { return e.players[i].Chips }

// NameOf returns player i's name. It panics if i is out of range.
func (e *Engine) NameOf(i int) string { return e.players[i].Name }

// Player returns a copy of player i.
func (e *Engine) Player(i int) (Player, error) {
	if i < 0 || i >= len(e.players) {
		return Player{}, fmt.Errorf("%w: index %d, %d players", ErrUnknownPlayer, i, len(e.players))
	}
	return e.players[i], nil
}

// Players returns a copy of the roster in seat order.
func (e *Engine) Players() []Player {
	return append([]Player(nil), e.players...)
}

// PlayerCount returns the size of the roster, eliminated players included.
func (e *Engine) PlayerCount() int { return len(e.players) }

// Center returns the number of chips retired to the center pool.
func (e *Engine) Center() int { return e.center }

// Turns returns how many turns have been taken.
func (e *Engine) Turns() int { return e.turns }

// TotalChips is the number of chips the game started with.
func (e *Engine) TotalChips() int { return StartingChips * len(e.players) }

// ValidateChipConservation checks that no player is negative and that the
// chips in play plus the center pool add up to the starting total.
func (e *Engine) ValidateChipConservation() error {
	sum := 0
	for _, p := range e.players {
		if p.Chips < 0 {
			return fmt.Errorf("player %d (%s) has %d chips", p.Index, p.Name, p.Chips)
		}
		sum += p.Chips
	}
	if sum+e.center != e.TotalChips() {
		return fmt.Errorf("expected %d chips, found %d in play and %d in the center", e.TotalChips(), sum, e.center)
	}
	return nil
}

func (e *Engine) chipCounts() []int {
	chips := make([]int, len(e.players))
	for i, p := range e.players {
		chips[i] = p.Chips
	}
	return chips
}
