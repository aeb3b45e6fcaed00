package maze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMaze(t *testing.T) {
	m := Default

	assert.Equal(t, 5, m.Width)
	assert.Equal(t, 5, m.Height)
	assert.False(t, m.IsWall(m.Start.Row, m.Start.Col))
	assert.False(t, m.IsWall(m.Goal.Row, m.Goal.Col))
	assert.Equal(t, Config{Rows: 5, Cols: 5, Actions: 4, StartRow: 0, StartCol: 0, GoalRow: 4, GoalCol: 4}, m.Config())

	walls := 0
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			if m.IsWall(row, col) {
				walls++
			}
		}
	}
	assert.Equal(t, 6, walls)
	assert.True(t, m.IsWall(1, 2))
	assert.True(t, m.IsWall(3, 1))
	assert.False(t, m.IsWall(1, 0))
	assert.False(t, m.IsWall(1, 4))
}

func TestStep(t *testing.T) {
	m := Default

	tests := []struct {
		name     string
		from     CellPosition
		action   Action
		to       CellPosition
		reward   int64
		terminal bool
	}{
		{"corridor right", CellPosition{0, 0}, Right, CellPosition{0, 1}, -1 * Scale, false},
		{"into wall stays put", CellPosition{0, 1}, Down, CellPosition{0, 1}, -10 * Scale, false},
		{"open gap in walled row", CellPosition{0, 0}, Down, CellPosition{1, 0}, -1 * Scale, false},
		{"top edge saturates", CellPosition{0, 0}, Up, CellPosition{0, 0}, -1 * Scale, false},
		{"left edge saturates", CellPosition{2, 0}, Left, CellPosition{2, 0}, -1 * Scale, false},
		{"goal from above", CellPosition{3, 4}, Down, CellPosition{4, 4}, 100 * Scale, true},
		{"goal from the left", CellPosition{4, 3}, Right, CellPosition{4, 4}, 100 * Scale, true},
		{"invalid action stays", CellPosition{2, 2}, Action(7), CellPosition{2, 2}, -1 * Scale, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move := m.Step(tt.from, tt.action)
			assert.Equal(t, tt.from, move.From)
			assert.Equal(t, tt.to, move.To)
			assert.Equal(t, tt.reward, move.Reward)
			assert.Equal(t, tt.terminal, move.Terminal)
		})
	}

	t.Run("deterministic", func(t *testing.T) {
		for _, a := range Actions {
			assert.Equal(t, m.Step(CellPosition{2, 2}, a), m.Step(CellPosition{2, 2}, a))
		}
	})
}

func TestClamp(t *testing.T) {
	m := Default
	assert.Equal(t, CellPosition{4, 4}, m.Clamp(999, 999))
	assert.Equal(t, CellPosition{0, 0}, m.Clamp(-3, -1))
	assert.Equal(t, CellPosition{2, 4}, m.Clamp(2, 17))
	assert.Equal(t, Right, ClampAction(999))
	assert.Equal(t, Up, ClampAction(-5))
	assert.False(t, m.IsWall(999, 999))
}

func TestNew(t *testing.T) {
	t.Run("rejects walled goal", func(t *testing.T) {
		_, err := New([][]bool{{false, true}}, CellPosition{0, 0}, CellPosition{0, 1})
		assert.ErrorIs(t, err, ErrInvalidEndpoint)
	})

	t.Run("rejects ragged layout", func(t *testing.T) {
		_, err := New([][]bool{{false, false}, {false}}, CellPosition{0, 0}, CellPosition{0, 1})
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("rejects empty layout", func(t *testing.T) {
		_, err := New(nil, CellPosition{}, CellPosition{})
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})
}

func TestRender(t *testing.T) {
	out := Default.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "| S |   |   |   |   |", lines[1])
	assert.Equal(t, "|   |###|###|###|   |", lines[3])
	assert.Equal(t, "|   |   |   |   | G |", lines[9])

	withPolicy := Default.Render(func(row, col int) Action { return Right })
	assert.Contains(t, withPolicy, "| → |")
	assert.NotContains(t, withPolicy, " S ")
}
