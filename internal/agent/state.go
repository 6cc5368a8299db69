package agent

import (
	"fmt"

	"github.com/google/uuid"
)

// State carries data between the stages of a single turn. It is created
// fresh for every user input and never shared across turns.
type State struct {
	// TurnID correlates log lines for one turn.
	TurnID string

	// CurrentTask is the user input. Stages never modify it.
	CurrentTask string

	// Scratchpad accumulates "Step N: <thought>" entries from the planner.
	Scratchpad string

	// Command is written by the planner and read by the executor.
	Command string

	// Output is written by the executor, then overwritten by the
	// presenter with its summary.
	Output string

	// StepCount increases by one per completed stage.
	StepCount int
}

// NewState returns an empty state for task.
func NewState(task string) *State {
	return &State{
		TurnID:      uuid.NewString(),
		CurrentTask: task,
	}
}

// AppendThought records thought as the entry for the next step. Entries
// are separated by a blank line.
func (s *State) AppendThought(thought string) {
	if s.Scratchpad != "" {
		s.Scratchpad += "\n\n"
	}
	s.Scratchpad += fmt.Sprintf("Step %d: %s", s.StepCount+1, thought)
}
