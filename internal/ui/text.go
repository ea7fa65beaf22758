package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders one kind of text in color, or with plain decorations
// when color is off.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if colorDisabled() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// colorDisabled honours NO_COLOR even when fatih/color has already decided
// the output is a terminal.
func colorDisabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

var (
	// Code is a command or flag the user can type. `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path is a file location: the auth config, key file or audit log.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight is an account or service name. 'quotes' without color.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}
)

// Status lines. Each starts with a colored marker.

func Done(msg string) string   { return Success.Sprint("✓") + " " + msg }
func Failed(msg string) string { return Error.Sprint("✗") + " " + msg }
func Warn(msg string) string   { return Warning.Sprint("⚠") + " " + msg }
func Note(msg string) string   { return Info.Sprint("ℹ") + " " + msg }
func Hint(msg string) string   { return Info.Sprint("→") + " " + msg }

// Lines joins status lines into one block.
func Lines(lines ...string) string {
	return strings.Join(lines, "\n")
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}
