// Package term resolves whether terminal output should be colored.
//
// [Configure] is called once during startup (from [logging.NewLogger]); the
// result is read by the logger and the banner through [Enabled].
package term

import (
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/backmassage/scanseries/internal/config"
)

var enabled bool

// Configure resolves the color mode for output written to f.
func Configure(mode config.ColorMode, f *os.File) {
	enabled = resolve(mode, f)
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return enabled }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
