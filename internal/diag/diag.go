// Package diag defines the non-fatal conditions raised while resolving a
// series. None of them abort an open; each degrades the result (default axis
// sizes, single-file mode, fewer companions) and is reported as a Warning.
package diag

import "fmt"

// Kind classifies a non-fatal condition.
type Kind string

const (
	KeyUnparsable        Kind = "key-unparsable"         // Numeric key present but not a positive integer.
	ChannelCountMismatch Kind = "channel-count-mismatch" // Decoder page count disagrees with resolved C.
	NamingViolation      Kind = "naming-violation"       // Filename does not follow <prefix>_<suffix>.<ext>.
	MissingCompanionFile Kind = "missing-companion-file" // Synthesized sibling is not on disk.
)

// Warning is one observed non-fatal condition.
type Warning struct {
	Kind    Kind
	Subject string // Key or file name the warning is about.
	Message string
}

// Newf builds a Warning with a formatted message.
func Newf(kind Kind, subject, format string, args ...any) Warning {
	return Warning{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

func (w Warning) String() string {
	if w.Subject == "" {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Subject, w.Message)
}
