package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of output. It colors text on a capable
// terminal and wraps it in open and close markers otherwise.
type Formatter struct {
	color *color.Color
	open  string
	close string
}

func newFormatter(open, close string, attrs ...color.Attribute) Formatter {
	return Formatter{color: color.New(attrs...), open: open, close: close}
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.open + text + f.close
	}
	return f.color.Sprint(text)
}

// Sprint renders the operands as fmt.Sprint would.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf renders a format string as fmt.Sprintf would.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

// noColor reports whether output is plain, either because NO_COLOR is set
// or because fatih/color detected a terminal without color support.
func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

var (
	// Code marks a command the user can run: `vellum doc unseal`.
	Code = newFormatter("`", "`", color.FgYellow)

	// Path marks a file on disk.
	Path = newFormatter("", "", color.FgYellow)

	// Flag marks a command-line flag such as --force.
	Flag = newFormatter("", "", color.FgYellow)

	Success = newFormatter("", "", color.FgGreen)
	Error   = newFormatter("", "", color.FgRed)
	Warning = newFormatter("", "", color.FgYellow)

	// Info marks hints and the current-document arrow.
	Info = newFormatter("", "", color.FgCyan)

	// Highlight marks a document title or config value: 'Untitled 1'.
	Highlight = newFormatter("'", "'", color.FgCyan)

	// Muted marks secondary detail: (unknown).
	Muted = newFormatter("(", ")", color.FgHiBlack)

	// Badge marks an envelope format label: [v2].
	Badge = newFormatter("[", "]", color.FgMagenta)

	// Dirty marks the unsaved-changes prefix of a title.
	Dirty = newFormatter("", "", color.FgRed, color.Bold)
)

const (
	CheckMark = "✓"
	Cross     = "✗"
	Arrow     = "→"
)

// Done prefixes msg with a green check mark.
func Done(msg string) string { return Success.Sprint(CheckMark) + " " + msg }

// Failed prefixes msg with a red cross.
func Failed(msg string) string { return Error.Sprint(Cross) + " " + msg }

// Hint prefixes msg with a cyan arrow.
func Hint(msg string) string { return Info.Sprint(Arrow) + " " + msg }

// EnsureNewline appends a newline unless s already ends with one.
func EnsureNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s
	}
	return s + "\n"
}
