// Package ui renders pipeline output for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	plannerLabel = "PLANNER:"
	execLabel    = "EXECUTOR:"
	finalLabel   = "FINAL ANSWER:"
	promptText   = "User> "
)

// Printer writes stage output to a terminal or any other writer. Color
// and markdown rendering are enabled only when out supports them.
type Printer struct {
	out      io.Writer
	styles   *Styles
	renderer *glamour.TermRenderer
}

// Option configures a Printer.
type Option func(*printerOptions)

type printerOptions struct {
	markdown *bool
	width    int
}

// WithMarkdown forces glamour rendering of final answers on or off.
func WithMarkdown(enabled bool) Option {
	return func(o *printerOptions) { o.markdown = &enabled }
}

// WithWordWrap sets the markdown wrap width. 0 disables wrapping.
func WithWordWrap(width int) Option {
	return func(o *printerOptions) { o.width = width }
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, opts ...Option) *Printer {
	o := printerOptions{width: 100}
	for _, opt := range opts {
		opt(&o)
	}

	r := lipgloss.NewRenderer(out)
	markdown := r.ColorProfile() != termenv.Ascii
	if o.markdown != nil {
		markdown = *o.markdown
	}

	p := &Printer{
		out:    out,
		styles: NewStyles(r),
	}
	if markdown {
		style := "light"
		if r.HasDarkBackground() {
			style = "dark"
		}
		// A renderer error leaves final answers as plain text.
		p.renderer, _ = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(o.width),
		)
	}
	return p
}

// Banner prints the active provider, model and mode.
func (p *Printer) Banner(provider, model, mode string) {
	fmt.Fprintf(p.out, "Provider: %s | Model: %s | Mode: %s\n", provider, model, mode)
}

// Status prints a dim progress line such as "Running agent...".
func (p *Printer) Status(msg string) {
	fmt.Fprintln(p.out, p.styles.Dim.Render(msg))
}

// Prompt prints the input prompt without a trailing newline.
func (p *Printer) Prompt() {
	fmt.Fprint(p.out, "\n"+p.styles.Prompt.Render(promptText))
}

// Planner announces the chosen command.
func (p *Printer) Planner(command string) {
	fmt.Fprintln(p.out, renderLines(p.styles.Planner, plannerLabel+" "+command))
}

// Executor prints the captured command output under its label.
func (p *Printer) Executor(output string) {
	fmt.Fprintln(p.out, p.styles.ExecLabel.Render(execLabel))
	fmt.Fprintln(p.out, renderLines(p.styles.Dim, output))
}

// FinalAnswer prints the presenter summary, rendered as markdown when the
// output is a terminal.
func (p *Printer) FinalAnswer(summary string) {
	fmt.Fprintln(p.out, p.styles.FinalLabel.Render(finalLabel))
	fmt.Fprintln(p.out, p.renderMarkdown(summary))
}

// Safety reports that the step cap stopped the turn.
func (p *Printer) Safety(message string) {
	fmt.Fprintln(p.out, renderLines(p.styles.Warning, message))
}

// Error prints err in the error style.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.out, renderLines(p.styles.Error, "Error: "+err.Error()))
}

func (p *Printer) renderMarkdown(text string) string {
	if p.renderer == nil || text == "" {
		return text
	}
	rendered, err := p.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(rendered, "\n")
}

// renderLines styles each line on its own. Rendering a block would pad
// every line to the widest one.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
