package report

import (
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/runner"
	"github.com/charmbracelet/lipgloss"
)

var (
	sizeStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	algorithmStyle = lipgloss.NewStyle().Bold(true)
)

// ConsoleWriter prints each case as soon as it finishes, opening a new
// section whenever the input size changes.
type ConsoleWriter struct {
	w        io.Writer
	lastSize int
	started  bool
}

func NewConsoleWriter(w io.Writer) *ConsoleWriter {
	return &ConsoleWriter{w: w}
}

func (c *ConsoleWriter) WriteCase(cr runner.CaseResult) {
	if !c.started || cr.Size != c.lastSize {
		fmt.Fprintf(c.w, "\n%s\n", sizeStyle.Render(fmt.Sprintf("Input Size: n = %d", cr.Size)))
		c.lastSize = cr.Size
		c.started = true
	}

	fmt.Fprintf(c.w, "%s\n", algorithmStyle.Render("> "+cr.Algorithm))
	fmt.Fprintf(c.w, "   Avg Time   : %.6f s\n", cr.Result.AvgTime)
	fmt.Fprintf(c.w, "   Avg Energy : %.6f J\n", cr.Result.AvgEnergy)
	fmt.Fprintf(c.w, "   Method     : %s\n", cr.Result.Method)
}
