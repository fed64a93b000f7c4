package game

// StartingChips is what every player holds when a game begins.
const StartingChips = 3

// Player is one seat at the table. Engines hand out copies; only roll
// resolution changes the engine's own roster.
type Player struct {
	Index int
	Name  string
	Chips int
}

// IsActive returns true if the player still holds chips
func (p Player) IsActive() bool {
	return p.Chips > 0
}

// Dice is the number of dice the player rolls on their turn.
func (p Player) Dice() int {
	return min(p.Chips, MaxDice)
}
