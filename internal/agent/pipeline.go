// Package agent drives one user turn through the planner, executor and
// presenter stages.
package agent

import (
	"context"
	"fmt"

	"paladin/internal/client"
	"paladin/internal/config"
	"paladin/internal/logging"
)

const (
	// NoCommandMessage replaces executor output when the planner chose nothing.
	NoCommandMessage = "[INFO] No command to execute"

	// SafetyMessage is the turn output when the step cap is reached.
	SafetyMessage = "[SAFETY] Maximum steps exceeded"
)

// CommandRunner runs an approved command and always returns printable
// output. *executor.Executor satisfies it.
type CommandRunner interface {
	Run(ctx context.Context, command string) string
}

// Reporter receives user-visible stage output.
type Reporter interface {
	Planner(command string)
	Executor(output string)
	FinalAnswer(summary string)
	Safety(message string)
}

type nopReporter struct{}

func (nopReporter) Planner(string)     {}
func (nopReporter) Executor(string)    {}
func (nopReporter) FinalAnswer(string) {}
func (nopReporter) Safety(string)      {}

// Result is the outcome of RunOnce. RawOutput is the executor output
// before the presenter replaced it.
type Result struct {
	Message   string
	Command   string
	RawOutput string
}

// Pipeline wires the LLM client and command runner into the three stages.
// It holds no per-turn data and may be reused across turns, but turns
// must not run concurrently.
type Pipeline struct {
	llm      client.Client
	runner   CommandRunner
	reporter Reporter
	maxSteps int
}

// NewPipeline creates a pipeline. A nil reporter discards stage output;
// maxSteps <= 0 selects the default step cap.
func NewPipeline(llm client.Client, runner CommandRunner, reporter Reporter, maxSteps int) *Pipeline {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if maxSteps <= 0 {
		maxSteps = config.DefaultMaxSteps
	}
	return &Pipeline{
		llm:      llm,
		runner:   runner,
		reporter: reporter,
		maxSteps: maxSteps,
	}
}

// Plan asks the model for a command and records any thought in the
// scratchpad.
func (p *Pipeline) Plan(ctx context.Context, st *State) error {
	response, err := p.llm.Invoke(ctx, RenderPlannerPrompt(st))
	if err != nil {
		return fmt.Errorf("planner: %w", err)
	}

	thought, command := ExtractThink(response)
	if thought != "" {
		st.AppendThought(thought)
	}
	st.Command = command
	st.StepCount++

	logging.Debug("planner chose command",
		"turn", st.TurnID,
		"command", command,
		"has_thought", thought != "")
	p.reporter.Planner(command)
	return nil
}

// Execute runs the planned command. It cannot fail; problems are written
// to st.Output as text.
func (p *Pipeline) Execute(ctx context.Context, st *State) {
	if st.Command == "" {
		st.Output = NoCommandMessage
	} else {
		st.Output = p.runner.Run(ctx, st.Command)
	}
	st.StepCount++

	logging.Debug("executor finished",
		"turn", st.TurnID,
		"output_chars", len(st.Output))
	p.reporter.Executor(st.Output)
}

// Present asks the model to summarize the output and replaces st.Output
// with the summary. Any thought in the response is discarded.
func (p *Pipeline) Present(ctx context.Context, st *State) error {
	response, err := p.llm.Invoke(ctx, RenderPresenterPrompt(st))
	if err != nil {
		return fmt.Errorf("presenter: %w", err)
	}

	_, summary := ExtractThink(response)
	st.Output = summary
	st.StepCount++

	p.reporter.FinalAnswer(summary)
	return nil
}

// Run executes one full turn for task and returns its final state.
func (p *Pipeline) Run(ctx context.Context, task string) (*State, error) {
	st := NewState(task)
	_, err := p.run(ctx, st)
	return st, err
}

// RunOnce executes one turn and returns the summary together with the
// command and the raw executor output.
func (p *Pipeline) RunOnce(ctx context.Context, task string) (Result, error) {
	st := NewState(task)
	raw, err := p.run(ctx, st)
	if err != nil {
		return Result{Command: st.Command, RawOutput: raw}, err
	}
	return Result{
		Message:   st.Output,
		Command:   st.Command,
		RawOutput: raw,
	}, nil
}

// run drives st through the stages and returns the executor output as it
// was before the presenter overwrote it.
func (p *Pipeline) run(ctx context.Context, st *State) (string, error) {
	logging.Info("turn started", "turn", st.TurnID, "task_chars", len(st.CurrentTask))

	if err := p.Plan(ctx, st); err != nil {
		return "", err
	}

	if st.StepCount >= p.maxSteps {
		logging.Warn("step cap reached", "turn", st.TurnID, "steps", st.StepCount, "max", p.maxSteps)
		st.Output = SafetyMessage
		p.reporter.Safety(SafetyMessage)
		return "", nil
	}

	p.Execute(ctx, st)
	raw := st.Output

	if err := p.Present(ctx, st); err != nil {
		return raw, err
	}

	logging.Info("turn finished", "turn", st.TurnID, "steps", st.StepCount)
	return raw, nil
}
