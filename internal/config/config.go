// Package config holds runtime configuration: defaults, validation, and
// loading from a config file, SCANSERIES_* environment variables and CLI
// flags.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// OutputFormat selects how resolved series are printed.
type OutputFormat string

const (
	OutputText OutputFormat = "text" // Human-readable summary (default).
	OutputJSON OutputFormat = "json" // A JSON array of series reports.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then overridden by [Load] before being passed (by pointer) to packages that
// need it.
type Config struct {
	// Series resolution.
	SidecarExtensions  []string // Default: ["xml"]. Without leading dot.
	CompanionExtension string   // Default: ".tif". Extension of synthesized sibling names.
	LoopFactor         bool     // Default: false. Unverified acqsPerLoop suffix arithmetic.

	// Scanning.
	Recursive bool // Default: false. Descend into subdirectories in scan.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode    // Default: "auto".
	LogFile   string       // Optional log file path.
	Output    OutputFormat // Default: "text".
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		SidecarExtensions:  []string{"xml"},
		CompanionExtension: ".tif",
		LoopFactor:         false,
		Recursive:          false,
		Verbose:            false,
		ColorMode:          ColorAuto,
		Output:             OutputText,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and normalizes extensions: sidecar extensions
// lose any leading dot and the companion extension gains one.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.Output {
	case OutputText, OutputJSON:
		// valid
	default:
		return errors.New("invalid output format (use 'text' or 'json')")
	}

	exts := make([]string, 0, len(c.SidecarExtensions))
	for _, e := range c.SidecarExtensions {
		e = strings.TrimPrefix(strings.TrimSpace(e), ".")
		if e == "" {
			continue
		}
		exts = append(exts, e)
	}
	c.SidecarExtensions = exts

	ext, err := normalizeExtension(c.CompanionExtension)
	if err != nil {
		return err
	}
	c.CompanionExtension = ext
	return nil
}

// normalizeExtension accepts "tif", ".tif", ".TIFF" and returns a dotted,
// lower-case extension limited to the TIFF family.
func normalizeExtension(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	switch s {
	case ".tif", ".tiff":
		return s, nil
	}
	return "", fmt.Errorf("invalid companion extension %q (use tif or tiff)", raw)
}
