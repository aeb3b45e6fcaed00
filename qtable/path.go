package qtable

import (
	"github.com/beka-birhanu/vinom-qlearn/maze"
)

// Rollout limits.
const (
	MaxPathSteps      = 50
	maxCellVisits     = 8
	maxConsecutiveHit = 8
)

// Reasons a rollout stops.
const (
	EndGoal     = "goal"
	EndLoop     = "loop"
	EndWalls    = "walls"
	EndMaxSteps = "max_steps"
)

// PathStep is one greedy decision taken during a rollout.
type PathStep struct {
	Row    int         `json:"row"`
	Col    int         `json:"col"`
	Action maze.Action `json:"action"`
}

// Path is the result of following the greedy policy from the start cell.
type Path struct {
	Steps       []PathStep `json:"steps"`
	TotalReward int64      `json:"total_reward"` // Scale units
	ReachedGoal bool       `json:"reached_goal"`
	EndReason   string     `json:"end_reason"`
}

// Rollout follows BestAction from the start cell for at most MaxPathSteps moves.
// It stops early at the goal, when one cell has been visited maxCellVisits
// times, or after maxConsecutiveHit wall bumps in a row.
func (t *Table) Rollout() Path {
	m := t.maze
	pos := m.Start
	visits := make(map[maze.CellPosition]int)
	wallHits := 0
	path := Path{EndReason: EndMaxSteps}

	for step := 0; step < MaxPathSteps; step++ {
		action := t.BestAction(pos.Row, pos.Col)
		path.Steps = append(path.Steps, PathStep{Row: pos.Row, Col: pos.Col, Action: action})

		visits[pos]++
		if visits[pos] >= maxCellVisits {
			path.EndReason = EndLoop
			break
		}

		move := m.Step(pos, action)
		path.TotalReward += move.Reward
		if move.Reward == maze.WallReward {
			wallHits++
			if wallHits >= maxConsecutiveHit {
				path.EndReason = EndWalls
				break
			}
		} else {
			wallHits = 0
		}
		pos = move.To

		if move.Terminal {
			path.ReachedGoal = true
			path.EndReason = EndGoal
			break
		}
	}

	return path
}
