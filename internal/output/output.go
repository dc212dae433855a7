// Package output provides formatted terminal output utilities.
// Status lines are part of the CLI's scripting contract and go to Stdout;
// structured logs go to stderr through slog instead.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/controleopcoes/controleopcoes/internal/constants"

	"github.com/fatih/color"
)

var (
	// Colors and styles
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	gray   = color.New(color.FgHiBlack)
	bold   = color.New(color.Bold)

	// Stdout is the output writer for status lines (can be overridden for testing).
	Stdout io.Writer = os.Stdout

	// Disable colors if not TTY or NO_COLOR is set
	noColor = os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stdout)
)

func init() {
	if noColor {
		color.NoColor = true
	}
}

// Successf prints a success message with a checkmark
// Example: ✓ Table 'AppControleOpcoes' already exists in sa-east-1.
func Successf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stdout, green.Sprint("✓")+" "+format+"\n", a...)
}

// Infof prints an informational message with an arrow
// Example: → Creating table 'AppControleOpcoes' in sa-east-1...
func Infof(format string, a ...any) {
	_, _ = fmt.Fprintf(Stdout, cyan.Sprint("→")+" "+format+"\n", a...)
}

// Warningf prints a warning message with a warning symbol
func Warningf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stdout, yellow.Sprint("⚠")+" "+format+"\n", a...)
}

// Errorf prints an error message with an X symbol
// Example: ✗ Error creating table: AccessDeniedException
func Errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stdout, red.Sprint("✗")+" "+format+"\n", a...)
}

// Header prints a section header with a separator line
// Example:
// --- Setting up Infrastructure for ControleOpções ---
// ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
func Header(text string) {
	_, _ = fmt.Fprintln(Stdout, bold.Sprint(text))
	_, _ = fmt.Fprintln(Stdout, gray.Sprint(strings.Repeat("━", constants.HeaderSeparatorLength)))
}

// KeyValue prints a key-value pair with indentation
// Example:   Region: sa-east-1
func KeyValue(key, value string) {
	_, _ = fmt.Fprintf(Stdout, "  %s: %s\n", gray.Sprint(key), value)
}

// Blank prints a blank line
func Blank() {
	_, _ = fmt.Fprintln(Stdout)
}

// Println prints a plain line without any formatting
func Println(a ...any) {
	_, _ = fmt.Fprintln(Stdout, a...)
}

// Printf prints a formatted plain line
func Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stdout, format, a...)
}

// Bold returns text in bold
func Bold(text string) string {
	return bold.Sprint(text)
}

// NumberedList prints a numbered list
// Example:
// 1. First step
// 2. Second step
func NumberedList(items []string) {
	for i, item := range items {
		_, _ = fmt.Fprintf(Stdout, "%d. %s\n", i+1, item)
	}
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		fileInfo, err := f.Stat()
		if err != nil {
			return false
		}
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
