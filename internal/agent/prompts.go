package agent

import "strings"

// PlannerPromptTemplate asks the model for exactly one shell command.
// Placeholders: {current_task}, {scratchpad}.
const PlannerPromptTemplate = `
You are a command extraction agent.

User request: {current_task}

Current Scratchpad:
{scratchpad}

Your job: Extract EXACTLY ONE shell command that fulfills this request.

Rules:
- You MAY use the scratchpad to track your objective or reasoning using <think> tags.
- Content inside <think>...</think> will be saved to your scratchpad for future steps.
- Output ONLY the command itself after the think block (if any).
- No explanations outside the think block.
- If the request is already a command, output it verbatim.

Examples:
User: "use fastfetch"
Output: fastfetch

User: "list files"
Output:
<think>User wants to see files. I should use ls -la.</think>
ls -la

Output:
`

// PresenterPromptTemplate asks the model to summarize command output.
// Placeholders: {command}, {output}.
const PresenterPromptTemplate = "\n" +
	"You are a CLI presenter.\n" +
	"\n" +
	"Command executed: `{command}`\n" +
	"Output:\n" +
	"```\n" +
	"{output}\n" +
	"```\n" +
	"\n" +
	"Your job: Summarize the result briefly for the user.\n" +
	"- If it's a simple output, just show it or describe it.\n" +
	"- Be concise.\n"

// RenderPlannerPrompt fills the planner template from st. Substitution is a
// single pass, so placeholder text inside the task is left alone.
func RenderPlannerPrompt(st *State) string {
	return strings.NewReplacer(
		"{current_task}", st.CurrentTask,
		"{scratchpad}", st.Scratchpad,
	).Replace(PlannerPromptTemplate)
}

// RenderPresenterPrompt fills the presenter template from st.
func RenderPresenterPrompt(st *State) string {
	return strings.NewReplacer(
		"{command}", st.Command,
		"{output}", st.Output,
	).Replace(PresenterPromptTemplate)
}
