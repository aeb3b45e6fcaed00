/*
Package qtable implements the Q-value table of the maze agent.

Every (cell, action) pair maps to one integer key:

	key = (row*cols + col)*NumActions + action

Values are fixed-point integers in Scale units. Keys that were never written
read as zero. A Table is a working copy: it is loaded from a store, read and
updated in memory, and the changed entries are written back with Dirty.
*/
package qtable

import (
	"github.com/beka-birhanu/vinom-qlearn/maze"
)

// Table is an in-memory view of the Q-table for one maze.
// It is not safe for concurrent use.
type Table struct {
	maze   *maze.Maze
	values map[uint64]int64
	dirty  map[uint64]struct{}
}

// New creates a Table over m seeded with stored entries. entries may be nil.
func New(m *maze.Maze, entries map[uint64]int64) *Table {
	values := make(map[uint64]int64, len(entries))
	for k, v := range entries {
		values[k] = v
	}
	return &Table{
		maze:   m,
		values: values,
		dirty:  make(map[uint64]struct{}),
	}
}

// Key encodes an in-bounds (row, col, action) triple. Keys of distinct triples never collide.
func Key(m *maze.Maze, row, col int, a maze.Action) uint64 {
	return uint64((row*m.Width+col)*maze.NumActions + int(a))
}

// Size returns the number of keys the maze can produce.
func Size(m *maze.Maze) int {
	return m.Cells() * maze.NumActions
}

// Maze returns the maze the table belongs to.
func (t *Table) Maze() *maze.Maze {
	return t.maze
}

// Get returns the stored value of (row, col, a), zero when unset.
func (t *Table) Get(row, col int, a maze.Action) int64 {
	return t.values[Key(t.maze, row, col, a)]
}

// Set stores v at (row, col, a) and marks the entry dirty.
func (t *Table) Set(row, col int, a maze.Action, v int64) {
	key := Key(t.maze, row, col, a)
	t.values[key] = v
	t.dirty[key] = struct{}{}
}

// BestAction returns the action with the strictly greatest value for the cell.
// Ties go to the lowest action index.
func (t *Table) BestAction(row, col int) maze.Action {
	best := maze.Up
	bestQ := t.Get(row, col, best)
	for _, a := range maze.Actions[1:] {
		if q := t.Get(row, col, a); q > bestQ {
			best, bestQ = a, q
		}
	}
	return best
}

// MaxValue returns the value of BestAction for the cell.
func (t *Table) MaxValue(row, col int) int64 {
	return t.Get(row, col, t.BestAction(row, col))
}

// Dirty returns the entries written since the table was created.
func (t *Table) Dirty() map[uint64]int64 {
	changed := make(map[uint64]int64, len(t.dirty))
	for k := range t.dirty {
		changed[k] = t.values[k]
	}
	return changed
}
