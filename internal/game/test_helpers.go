package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/leftrightcenter/internal/randutil"
)

// TestEngineOption configures test engine creation
type TestEngineOption func(*testEngineBuilder)

type testEngineBuilder struct {
	seed    int64
	names   []string
	chips   []int
	roller  Roller
	bus     EventBus
	options []Option
}

func WithSeed(seed int64) TestEngineOption {
	return func(b *testEngineBuilder) { b.seed = seed }
}

func WithPlayers(names ...string) TestEngineOption {
	return func(b *testEngineBuilder) { b.names = names }
}

// WithChips overrides starting chips. The center pool absorbs the
// difference so conservation still holds.
func WithChips(chips ...int) TestEngineOption {
	return func(b *testEngineBuilder) { b.chips = chips }
}

func WithFaces(faces ...DieFace) TestEngineOption {
	return func(b *testEngineBuilder) { b.roller = NewScriptedRoller(faces...) }
}

func WithTestEventBus(bus EventBus) TestEngineOption {
	return func(b *testEngineBuilder) { b.bus = bus }
}

func WithEngineOptions(opts ...Option) TestEngineOption {
	return func(b *testEngineBuilder) { b.options = append(b.options, opts...) }
}

// NewTestEngine creates an engine for testing with sensible defaults: seed
// 42, three players named Alice, Bob and Charlie, a discarded logger.
func NewTestEngine(opts ...TestEngineOption) *Engine {
	b := &testEngineBuilder{
		seed:  42,
		names: []string{"Alice", "Bob", "Charlie"},
	}
	for _, opt := range opts {
		opt(b)
	}

	engineOpts := []Option{
		WithRNG(randutil.New(b.seed)),
		WithLogger(log.New(io.Discard)),
		WithID("test"),
	}
	if b.roller != nil {
		engineOpts = append(engineOpts, WithRoller(b.roller))
	}
	if b.bus != nil {
		engineOpts = append(engineOpts, WithEventBus(b.bus))
	}
	engineOpts = append(engineOpts, b.options...)

	e, err := New(len(b.names), b.names, engineOpts...)
	if err != nil {
		panic(fmt.Sprintf("test engine: %v", err))
	}
	if b.chips != nil {
		e.setChips(b.chips)
	}
	return e
}

// setChips forces chip counts for tests and moves the cursor to a holder.
func (e *Engine) setChips(chips []int) {
	if len(chips) != len(e.players) {
		panic("chip counts must match number of players")
	}
	sum := 0
	for i, c := range chips {
		e.players[i].Chips = c
		sum += c
	}
	e.center = e.TotalChips() - sum
	if e.center < 0 {
		panic("chip counts exceed the starting total")
	}
	if e.players[e.current].Chips == 0 {
		e.AdvanceTurn(e.current)
	}
}
