/*
Package maze provides the fixed grid world the Q-learning agent is trained on.

A Maze is a rectangular grid of open and wall cells with a start and a goal. The
package exposes the transition function used by training (Step), silent
coordinate clamping used by every query, and ASCII rendering with optional
policy arrows.

All rewards are scaled integers (Scale = 10000) so that Q-values never need
floating point arithmetic.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Scale is the fixed-point unit shared by rewards and Q-values.
const Scale int64 = 10_000

// Transition rewards, expressed in Scale units.
const (
	WallReward = -10 * Scale
	StepReward = -1 * Scale
	GoalReward = 100 * Scale
)

const (
	defaultSize = 5
)

var (
	ErrInvalidLayout   = errors.New("invalid maze layout")
	ErrInvalidEndpoint = errors.New("start and goal must be open cells inside the maze")

	// defaultLayout is the compiled-in 5x5 world (1 = wall, 0 = path).
	defaultLayout = [defaultSize][defaultSize]uint8{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
	}

	// Default is the single maze instance served by the agent. It is built once
	// at process start and never mutated.
	Default = mustDefault()
)

// Maze represents a rectangular grid with walls, a start cell and a goal cell.
type Maze struct {
	Width  int      // Width of the maze (number of columns)
	Height int      // Height of the maze (number of rows)
	Grid   [][]Cell // 2D grid of cells forming the maze
	Start  CellPosition
	Goal   CellPosition
}

// Config summarizes the maze dimensions and endpoints.
type Config struct {
	Rows     int `json:"rows"`
	Cols     int `json:"cols"`
	Actions  int `json:"actions"`
	StartRow int `json:"start_row"`
	StartCol int `json:"start_col"`
	GoalRow  int `json:"goal_row"`
	GoalCol  int `json:"goal_col"`
}

// New builds a maze from a row-major layout where true marks a wall.
func New(walls [][]bool, start, goal CellPosition) (*Maze, error) {
	height := len(walls)
	if height == 0 || len(walls[0]) == 0 {
		return nil, ErrInvalidLayout
	}
	width := len(walls[0])

	grid := make([][]Cell, height)
	for i := range grid {
		if len(walls[i]) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidLayout, i, len(walls[i]), width)
		}
		grid[i] = make([]Cell, width)
		for j := range grid[i] {
			grid[i][j] = Cell{Wall: walls[i][j]}
		}
	}

	m := &Maze{
		Width:  width,
		Height: height,
		Grid:   grid,
		Start:  start,
		Goal:   goal,
	}
	if !m.InBound(start.Row, start.Col) || !m.InBound(goal.Row, goal.Col) {
		return nil, ErrInvalidEndpoint
	}
	if m.Grid[start.Row][start.Col].Wall || m.Grid[goal.Row][goal.Col].Wall {
		return nil, ErrInvalidEndpoint
	}
	return m, nil
}

func mustDefault() *Maze {
	walls := make([][]bool, defaultSize)
	for i, row := range defaultLayout {
		walls[i] = make([]bool, defaultSize)
		for j, v := range row {
			walls[i][j] = v == 1
		}
	}

	m, err := New(walls, CellPosition{Row: 0, Col: 0}, CellPosition{Row: defaultSize - 1, Col: defaultSize - 1})
	if err != nil {
		panic(err)
	}
	return m
}

// InBound reports whether (row, col) lies inside the grid.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.Height && col >= 0 && col < m.Width
}

// Clamp returns the nearest in-bounds position.
func (m *Maze) Clamp(row, col int) CellPosition {
	return CellPosition{Row: clamp(row, 0, m.Height-1), Col: clamp(col, 0, m.Width-1)}
}

// IsWall reports whether the clamped cell is a wall.
func (m *Maze) IsWall(row, col int) bool {
	pos := m.Clamp(row, col)
	return m.Grid[pos.Row][pos.Col].Wall
}

// IsGoal reports whether pos is the goal cell.
func (m *Maze) IsGoal(pos CellPosition) bool {
	return pos == m.Goal
}

// Cells returns the number of cells in the grid.
func (m *Maze) Cells() int {
	return m.Width * m.Height
}

// Step applies action a from pos and returns the resulting transition.
//
// Moving off an edge saturates at the border. Moving into a wall leaves the
// agent where it was with WallReward. Entering the goal ends the episode with
// GoalReward. Every other move costs StepReward. An invalid action does not move.
func (m *Maze) Step(pos CellPosition, a Action) Move {
	candidate := pos
	if a.Valid() {
		delta := Directions[a]
		candidate = m.Clamp(pos.Row+delta.Row, pos.Col+delta.Col)
	}

	move := Move{From: pos, To: candidate, Direction: a}
	switch {
	case m.Grid[candidate.Row][candidate.Col].Wall:
		move.To = pos
		move.Reward = WallReward
	case m.IsGoal(candidate):
		move.Reward = GoalReward
		move.Terminal = true
	default:
		move.Reward = StepReward
	}
	return move
}

// Config returns the maze dimensions and endpoints.
func (m *Maze) Config() Config {
	return Config{
		Rows:     m.Height,
		Cols:     m.Width,
		Actions:  NumActions,
		StartRow: m.Start.Row,
		StartCol: m.Start.Col,
		GoalRow:  m.Goal.Row,
		GoalCol:  m.Goal.Col,
	}
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	return m.Render(nil)
}

// Render draws the maze. When policy is not nil, open cells other than the
// goal show the arrow of the action policy returns for them.
func (m *Maze) Render(policy func(row, col int) Action) string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", m.Width) + "\n")

	for row := 0; row < m.Height; row++ {
		b.WriteString("|")
		for col := 0; col < m.Width; col++ {
			pos := CellPosition{Row: row, Col: col}
			switch {
			case m.Grid[row][col].Wall:
				b.WriteString("###")
			case pos == m.Goal:
				b.WriteString(" G ")
			case policy != nil:
				b.WriteString(" " + policy(row, col).Symbol() + " ")
			case pos == m.Start:
				b.WriteString(" S ")
			default:
				b.WriteString("   ")
			}
			b.WriteString("|")
		}
		b.WriteString("\n+" + strings.Repeat("---+", m.Width) + "\n")
	}

	return b.String()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
