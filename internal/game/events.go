package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStart        EventType = "game_start"
	EventTypeTurn             EventType = "turn"
	EventTypePlayerEliminated EventType = "player_eliminated"
	EventTypeGameOver         EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once, when an engine is created
type GameStartEvent struct {
	GameID    string
	Players   []Player
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// TurnEvent is published after every resolved turn
type TurnEvent struct {
	GameID    string
	Turn      int
	Result    TurnResult
	timestamp time.Time
}

func (e TurnEvent) EventType() EventType { return EventTypeTurn }
func (e TurnEvent) Timestamp() time.Time { return e.timestamp }

// PlayerEliminatedEvent is published when a player's chips reach zero.
// Eliminated players keep their seat and can be revived by a neighbour's
// Left or Right roll.
type PlayerEliminatedEvent struct {
	GameID    string
	Player    Player
	Turn      int
	timestamp time.Time
}

func (e PlayerEliminatedEvent) EventType() EventType { return EventTypePlayerEliminated }
func (e PlayerEliminatedEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published once, when a single player holds chips
type GameOverEvent struct {
	GameID    string
	Winner    Player
	Turns     int
	Center    int
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a plain function to EventSubscriber
type EventSubscriberFunc func(GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// FormatEvent renders an event as a single human-readable line
func FormatEvent(event GameEvent) string {
	switch e := event.(type) {
	case GameStartEvent:
		names := make([]string, len(e.Players))
		for i, p := range e.Players {
			names[i] = p.Name
		}
		return fmt.Sprintf("New game with %d players: %s", len(e.Players), strings.Join(names, ", "))
	case TurnEvent:
		return FormatTurn(e.Result, e.Result.PlayerName)
	case PlayerEliminatedEvent:
		return fmt.Sprintf("%s is out of chips", e.Player.Name)
	case GameOverEvent:
		return fmt.Sprintf("%s wins after %d turns (%d chips in the center)", e.Winner.Name, e.Turns, e.Center)
	default:
		return event.EventType().String()
	}
}

// FormatTurn describes a turn result, e.g. "Alice rolls L • C".
func FormatTurn(r TurnResult, name string) string {
	if len(r.Faces) == 0 {
		return fmt.Sprintf("%s has no chips to roll", name)
	}
	symbols := make([]string, len(r.Faces))
	for i, f := range r.Faces {
		symbols[i] = f.Symbol()
	}
	return fmt.Sprintf("%s rolls %s", name, strings.Join(symbols, " "))
}

// LogSubscriber writes every event to a logger
type LogSubscriber struct {
	logger *log.Logger
}

// NewLogSubscriber returns a subscriber logging at debug level, game over at info.
func NewLogSubscriber(logger *log.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger}
}

func (s *LogSubscriber) OnEvent(event GameEvent) {
	switch e := event.(type) {
	case TurnEvent:
		s.logger.Debug(FormatEvent(e), "turn", e.Turn, "chips", e.Result.Chips, "center", e.Result.Center)
	case GameOverEvent:
		s.logger.Info(FormatEvent(e), "game", e.GameID)
	default:
		s.logger.Debug(FormatEvent(e), "event", e.EventType())
	}
}
