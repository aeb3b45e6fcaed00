package qtable

import (
	"github.com/beka-birhanu/vinom-qlearn/maze"
	"gonum.org/v1/gonum/stat"
)

// CellValues holds the values of one cell, indexed by action.
type CellValues struct {
	Row    int                    `json:"row"`
	Col    int                    `json:"col"`
	Wall   bool                   `json:"wall"`
	Values [maze.NumActions]int64 `json:"values"`
	Best   maze.Action            `json:"best_action"`
}

// Summary describes the spread of the table. Min and Max start from zero so an
// untouched table reports a flat range.
type Summary struct {
	Min  int64   `json:"min"`
	Max  int64   `json:"max"`
	Mean float64 `json:"mean"` // mean in Scale units
}

// Snapshot is a full dump of the table, row-major.
type Snapshot struct {
	Cells   [][]CellValues `json:"cells"`
	Summary Summary        `json:"summary"`
}

// Snapshot copies every value of the table.
func (t *Table) Snapshot() Snapshot {
	m := t.maze
	cells := make([][]CellValues, m.Height)
	for row := range cells {
		cells[row] = make([]CellValues, m.Width)
		for col := range cells[row] {
			cv := CellValues{Row: row, Col: col, Wall: m.Grid[row][col].Wall, Best: t.BestAction(row, col)}
			for _, a := range maze.Actions {
				cv.Values[a] = t.Get(row, col, a)
			}
			cells[row][col] = cv
		}
	}

	return Snapshot{Cells: cells, Summary: Summarize(cells)}
}

// Summarize computes the value range and mean over open cells.
func Summarize(cells [][]CellValues) Summary {
	var s Summary
	var values []float64
	for _, row := range cells {
		for _, cell := range row {
			if cell.Wall {
				continue
			}
			for _, v := range cell.Values {
				s.Min = min(s.Min, v)
				s.Max = max(s.Max, v)
				values = append(values, float64(v))
			}
		}
	}
	if len(values) > 0 {
		s.Mean = stat.Mean(values, nil)
	}
	return s
}
