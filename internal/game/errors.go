package game

import "errors"

var (
	// ErrInvalidSetup is returned by New for fewer than three players or a
	// name list that does not match the player count.
	ErrInvalidSetup = errors.New("invalid game setup")

	// ErrNoWinnerYet is returned by Winner while more than one player holds chips.
	ErrNoWinnerYet = errors.New("no winner yet")

	// ErrUnknownPlayer is returned for a player index outside the roster.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrGameOver is returned when a turn is requested after the game ended.
	ErrGameOver = errors.New("game is over")
)
