package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	bannerStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2)
)

const ruleWidth = 60

// Display handles styled terminal output for the pipeline and workflows.
type Display struct {
	w io.Writer
}

// NewDisplay creates a display that writes to stdout.
func NewDisplay() *Display {
	return &Display{w: os.Stdout}
}

// NewDisplayWriter creates a display that writes to w.
func NewDisplayWriter(w io.Writer) *Display {
	return &Display{w: w}
}

// Banner prints the boxed program banner.
func (d *Display) Banner(lines ...string) {
	fmt.Fprintf(d.w, "\n%s\n\n", bannerStyle.Render(strings.Join(lines, "\n")))
}

// Step prints a ruled step header.
func (d *Display) Step(message string) {
	rule := headerStyle.Render(strings.Repeat("=", ruleWidth))
	fmt.Fprintf(d.w, "\n%s\n%s\n%s\n\n", rule, headerStyle.Render("► "+message), rule)
}

func (d *Display) Success(message string) {
	fmt.Fprintln(d.w, successStyle.Render("✓ "+message))
}

func (d *Display) Warn(message string) {
	fmt.Fprintln(d.w, warnStyle.Render("⚠ "+message))
}

func (d *Display) Error(message string) {
	fmt.Fprintln(d.w, errorStyle.Render("✗ "+message))
}

func (d *Display) Info(message string) {
	fmt.Fprintln(d.w, infoStyle.Render("ℹ "+message))
}

// Plain prints an unstyled line.
func (d *Display) Plain(message string) {
	fmt.Fprintln(d.w, message)
}

// Summary prints the elapsed-time line shown at the end of a workflow.
func (d *Display) Summary(elapsed time.Duration) {
	fmt.Fprintf(d.w, "\n⏱  Total time: %.1f seconds\n", elapsed.Seconds())
}
