package maze

import "fmt"

// Action is one of the four moves available in every cell.
// The numeric value is part of the Q-table key layout and must not change.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right

	// NumActions is the number of actions available in every cell.
	NumActions = 4
)

var (
	// Actions lists all actions in index order. Greedy scans walk this order.
	Actions = [NumActions]Action{Up, Down, Left, Right}

	// Directions maps each action to its row/column delta.
	Directions = [NumActions]CellPosition{
		Up:    {Row: -1, Col: 0},
		Down:  {Row: 1, Col: 0},
		Left:  {Row: 0, Col: -1},
		Right: {Row: 0, Col: 1},
	}

	actionNames   = [NumActions]string{"Up", "Down", "Left", "Right"}
	actionSymbols = [NumActions]string{"↑", "↓", "←", "→"}
)

// ClampAction maps an arbitrary index into the valid action range.
func ClampAction(a int) Action {
	return Action(clamp(a, 0, NumActions-1))
}

// Valid reports whether a is one of the four actions.
func (a Action) Valid() bool {
	return a >= 0 && a < NumActions
}

// String returns the action name.
func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Symbol returns an arrow for rendering a policy.
func (a Action) Symbol() string {
	if !a.Valid() {
		return "?"
	}
	return actionSymbols[a]
}
