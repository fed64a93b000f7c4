package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Option configures an Engine during creation.
type Option func(*engineConfig)

type engineConfig struct {
	roller   Roller
	rng      *rand.Rand
	logger   *log.Logger
	eventBus EventBus
	clock    quartz.Clock
	id       string
}

// WithRNG rolls dice from rng. Ignored when WithRoller is also given.
func WithRNG(rng *rand.Rand) Option {
	return func(c *engineConfig) { c.rng = rng }
}

// WithRoller takes full control of die faces.
func WithRoller(roller Roller) Option {
	return func(c *engineConfig) { c.roller = roller }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *engineConfig) { c.logger = logger }
}

func WithEventBus(bus EventBus) Option {
	return func(c *engineConfig) { c.eventBus = bus }
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) Option {
	return func(c *engineConfig) { c.clock = clock }
}

// WithID overrides the generated game ID.
func WithID(id string) Option {
	return func(c *engineConfig) { c.id = id }
}

func defaultLogger() *log.Logger {
	return log.New(io.Discard)
}
