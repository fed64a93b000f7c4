package game

// DieFace is the resolved outcome of one die.
type DieFace int

const (
	Dot DieFace = iota
	Left
	Right
	Center
)

// Pips on the physical die.
const DieSides = 6

// MaxDice is the most dice a player ever rolls in one turn.
const MaxDice = 3

// FaceForPip maps a pip value (1-6) to its face. One sixth each for Left,
// Right and Center, the remaining half is Dot.
func FaceForPip(pip int) DieFace {
	switch pip {
	case 1:
		return Left
	case 2:
		return Right
	case 3:
		return Center
	default:
		return Dot
	}
}

func (f DieFace) String() string {
	switch f {
	case Dot:
		return "Dot"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Center:
		return "Center"
	default:
		return "Unknown"
	}
}

// Symbol is a single glyph for compact text rendering.
func (f DieFace) Symbol() string {
	switch f {
	case Dot:
		return "•"
	case Left:
		return "L"
	case Right:
		return "R"
	case Center:
		return "C"
	default:
		return "?"
	}
}

// MovesChip reports whether the face takes a chip from the roller.
func (f DieFace) MovesChip() bool {
	return f == Left || f == Right || f == Center
}
