package game

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	count := 0
	sub := &countingSubscriber{count: &count}

	bus.Subscribe(sub)
	bus.Publish(GameStartEvent{})
	bus.Unsubscribe(sub)
	bus.Publish(GameStartEvent{})

	assert.Equal(t, 1, count)
}

type countingSubscriber struct {
	count *int
}

func (c *countingSubscriber) OnEvent(GameEvent) { *c.count++ }

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name  string
		event GameEvent
		want  string
	}{
		{
			name:  "game start",
			event: GameStartEvent{Players: []Player{{Name: "Alice"}, {Name: "Bob"}, {Name: "Charlie"}}},
			want:  "New game with 3 players: Alice, Bob, Charlie",
		},
		{
			name:  "turn",
			event: TurnEvent{Result: TurnResult{PlayerName: "Bob", Faces: []DieFace{Left, Dot, Center}}},
			want:  "Bob rolls L • C",
		},
		{
			name:  "turn without dice",
			event: TurnEvent{Result: TurnResult{PlayerName: "Bob"}},
			want:  "Bob has no chips to roll",
		},
		{
			name:  "eliminated",
			event: PlayerEliminatedEvent{Player: Player{Name: "Charlie"}},
			want:  "Charlie is out of chips",
		},
		{
			name:  "game over",
			event: GameOverEvent{Winner: Player{Name: "Alice"}, Turns: 12, Center: 4},
			want:  "Alice wins after 12 turns (4 chips in the center)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEvent(tt.event))
		})
	}
}

func TestLogSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	bus := NewEventBus()
	bus.Subscribe(NewLogSubscriber(logger))

	e := NewTestEngine(WithChips(1, 0, 3), WithFaces(Center), WithTestEventBus(bus))
	_, err := e.TakeTurn(0)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Alice rolls C")
	assert.Contains(t, out, "Alice is out of chips")
	assert.Contains(t, out, "Charlie wins after 1 turns")
}
