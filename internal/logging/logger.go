// Package logging provides leveled, optionally colored logging to stderr
// with an optional plain-text file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/backmassage/scanseries/internal/config"
	"github.com/backmassage/scanseries/internal/term"
)

// SuccessLevel sits between INFO and WARN so it is shown whenever INFO is.
const SuccessLevel = log.InfoLevel + 1

const timeFormat = "2006-01-02 15:04:05"

// Logger provides leveled logging with an optional file sink.
type Logger struct {
	mu      sync.Mutex
	console *log.Logger
	file    *log.Logger
	fh      *os.File
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile.
// Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode, os.Stderr)
	l := &Logger{console: newLog(os.Stderr, cfg.Verbose, term.Enabled())}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.fh = f
		l.file = newLog(f, cfg.Verbose, false)
	}
	return l, nil
}

// New returns a Logger writing to w only. Used by tests and embedding hosts.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{console: newLog(w, verbose, false)}
}

func newLog(w io.Writer, verbose, color bool) *log.Logger {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Level:           log.InfoLevel,
	})
	if verbose {
		lg.SetLevel(log.DebugLevel)
	}
	if color {
		lg.SetColorProfile(termenv.ANSI256)
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}

	styles := log.DefaultStyles()
	styles.Levels[SuccessLevel] = lipgloss.NewStyle().
		SetString("SUCC").
		Bold(true).
		MaxWidth(4).
		Foreground(lipgloss.Color("42"))
	lg.SetStyles(styles)
	return lg
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fh != nil {
		err := l.fh.Close()
		l.fh = nil
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) logf(level log.Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console.Log(level, msg)
	if l.file != nil {
		l.file.Log(level, msg)
	}
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...any) { l.logf(log.InfoLevel, format, args...) }

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...any) { l.logf(SuccessLevel, format, args...) }

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...any) { l.logf(log.WarnLevel, format, args...) }

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...any) { l.logf(log.ErrorLevel, format, args...) }

// Debug logs at DEBUG level; dropped unless the logger is verbose.
func (l *Logger) Debug(format string, args ...any) { l.logf(log.DebugLevel, format, args...) }
