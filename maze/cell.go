package maze

// Cell represents a single cell in a maze grid.
type Cell struct {
	// Wall indicates whether the cell is blocked. Moving into a wall leaves the agent in place.
	Wall bool
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// GetRow returns the row index of the cell.
func (cp CellPosition) GetRow() int {
	return cp.Row
}

// GetCol returns the column index of the cell.
func (cp CellPosition) GetCol() int {
	return cp.Col
}

// Move represents a movement from one cell to another in a specific direction.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell (equal to From when blocked)
	Direction Action       // Action taken
	Reward    int64        // Scaled reward of the transition
	Terminal  bool         // Terminal reports whether the goal was reached
}
