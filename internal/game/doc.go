// Package game implements the Left-Right-Center dice game engine.
//
// The main type is Engine, which owns the roster of players, their chip
// counts, the center pool of retired chips and the turn cursor.
//
// # Basic Usage
//
// Create an engine and play it out turn by turn:
//
//	e, err := game.New(3, []string{"Alice", "Bob", "Charlie"}, game.WithRNG(randutil.New(42)))
//	if err != nil {
//	    return err
//	}
//	for !e.IsGameOver() {
//	    current := e.CurrentPlayerIndex()
//	    res, err := e.TakeTurn(current)
//	    // render res.Faces ...
//	    e.AdvanceTurn(current)
//	}
//	winner, _ := e.Winner()
//
// PlayTurn and Run wrap that loop for callers that do not need to pause
// between the roll and the advance.
//
// # Deterministic Testing
//
// Randomness is injected. WithRNG takes a seeded *rand.Rand, and
// WithRoller takes any Roller, including a ScriptedRoller that replays a
// fixed list of faces:
//
//	e, _ := game.New(3, names, game.WithRoller(game.NewScriptedRoller(game.Left, game.Right, game.Center)))
//
// # Rules
//
// A player rolls min(chips, 3) dice. Each die is resolved immediately
// against live chip counts: Left passes a chip to the previous seat, Right
// to the next seat (both wrap), Center retires a chip for good, Dot does
// nothing. Players with no chips are skipped but keep their seat. The game
// ends when exactly one player holds chips.
package game
