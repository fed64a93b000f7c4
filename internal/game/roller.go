package game

import rand "math/rand/v2"

// Roller produces die faces. Implementations need not be safe for
// concurrent use; an engine calls its roller from one goroutine.
type Roller interface {
	Roll() DieFace
}

// DieRoller rolls a fair six-sided die.
type DieRoller struct {
	rng *rand.Rand
}

// NewDieRoller returns a roller drawing pips from rng.
func NewDieRoller(rng *rand.Rand) *DieRoller {
	if rng == nil {
		panic("rng is required for a die roller")
	}
	return &DieRoller{rng: rng}
}

// Roll draws a pip in 1..6 and maps it to a face.
func (r *DieRoller) Roll() DieFace {
	return FaceForPip(r.rng.IntN(DieSides) + 1)
}

// ScriptedRoller replays a fixed sequence of faces, then rolls Dot forever.
type ScriptedRoller struct {
	faces []DieFace
	next  int
}

// NewScriptedRoller returns a roller that yields faces in order.
func NewScriptedRoller(faces ...DieFace) *ScriptedRoller {
	return &ScriptedRoller{faces: append([]DieFace(nil), faces...)}
}

func (r *ScriptedRoller) Roll() DieFace {
	if r.next >= len(r.faces) {
		return Dot
	}
	f := r.faces[r.next]
	r.next++
	return f
}

// Remaining is the number of scripted faces not yet rolled.
func (r *ScriptedRoller) Remaining() int {
	return len(r.faces) - r.next
}
