// Package output formats messages of the non-interactive subcommands.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// StatusType represents different types of CLI output status
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
	StatusWarning StatusType = "warning"
	StatusInfo    StatusType = "info"
	StatusTip     StatusType = "tip"
)

var indicators = map[StatusType]string{
	StatusSuccess: "[OK]",
	StatusError:   "[FAIL]",
	StatusWarning: "[WARN]",
	StatusInfo:    "[INFO]",
	StatusTip:     "[TIP]",
}

// Formatter provides a high-level interface for CLI output formatting
type Formatter struct {
	out     io.Writer
	errOut  io.Writer
	enabled bool
	quiet   bool
	styles  map[StatusType]lipgloss.Style
	bold    lipgloss.Style
}

// NewFormatter creates a formatter writing to stdout and stderr. Colors
// are used only on a terminal and when NO_COLOR is unset.
func NewFormatter(theme string, noColor bool) *Formatter {
	flavor := Flavor(theme)
	enabled := !noColor && os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stdout.Fd()))

	return &Formatter{
		out:     os.Stdout,
		errOut:  os.Stderr,
		enabled: enabled,
		styles: map[StatusType]lipgloss.Style{
			StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Green().Hex)).Bold(true),
			StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Red().Hex)).Bold(true),
			StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Yellow().Hex)).Bold(true),
			StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Blue().Hex)),
			StatusTip:     lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Mauve().Hex)),
		},
		bold: lipgloss.NewStyle().Bold(true),
	}
}

// SetOutput redirects normal and error output.
func (f *Formatter) SetOutput(out, errOut io.Writer) {
	f.out = out
	f.errOut = errOut
}

// SetQuiet suppresses everything but errors.
func (f *Formatter) SetQuiet(quiet bool) {
	f.quiet = quiet
}

func (f *Formatter) status(statusType StatusType, message string) string {
	indicator := indicators[statusType]
	if f.enabled {
		indicator = f.styles[statusType].Render(indicator)
	}
	return indicator + " " + message
}

// Success prints a success message (always shown unless quiet)
func (f *Formatter) Success(format string, args ...interface{}) {
	if !f.quiet {
		fmt.Fprintln(f.out, f.status(StatusSuccess, fmt.Sprintf(format, args...)))
	}
}

// Error prints an error message (always shown)
func (f *Formatter) Error(format string, args ...interface{}) {
	fmt.Fprintln(f.errOut, f.status(StatusError, fmt.Sprintf(format, args...)))
}

// Warning prints a warning message (always shown unless quiet)
func (f *Formatter) Warning(format string, args ...interface{}) {
	if !f.quiet {
		fmt.Fprintln(f.out, f.status(StatusWarning, fmt.Sprintf(format, args...)))
	}
}

// Info prints an info message
func (f *Formatter) Info(format string, args ...interface{}) {
	if !f.quiet {
		fmt.Fprintln(f.out, f.status(StatusInfo, fmt.Sprintf(format, args...)))
	}
}

// Tip prints a tip message (shown unless quiet)
func (f *Formatter) Tip(format string, args ...interface{}) {
	if !f.quiet {
		fmt.Fprintln(f.out, f.status(StatusTip, fmt.Sprintf(format, args...)))
	}
}

// Println prints a plain line. Command listings go through here so they
// stay pipeable.
func (f *Formatter) Println(line string) {
	fmt.Fprintln(f.out, line)
}

// Header prints a formatted section header
func (f *Formatter) Header(title string) {
	if f.quiet {
		return
	}
	rendered := title
	if f.enabled {
		rendered = f.bold.Render(title)
	}
	fmt.Fprintln(f.out, rendered+"\n"+strings.Repeat("=", len(title)))
}
