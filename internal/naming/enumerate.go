package naming

import (
	"path/filepath"

	"github.com/backmassage/scanseries/internal/axes"
	"github.com/backmassage/scanseries/internal/comment"
	"github.com/backmassage/scanseries/internal/diag"
)

// MaxCompanions bounds how many sibling names are checked for one series.
const MaxCompanions = 1 << 16

// maxMissingWarnings is how many missing siblings are reported by name; the
// rest are folded into one summary warning.
const maxMissingWarnings = 8

// ExistsFunc reports whether a synthesized path is on disk.
type ExistsFunc func(path string) (bool, error)

// Enumeration is the outcome of Enumerate.
type Enumeration struct {
	Mode     axes.Mode
	Files    []string // Existing sibling paths in suffix order; empty in single mode.
	Warnings []diag.Warning
}

// Enumerate produces the ordered sibling list for a grouped acquisition.
// It collapses to single mode when mode is single or validationErr is
// non-nil. Siblings are checked with exists one at a time, at most
// MaxCompanions of them; missing ones are dropped with a MissingCompanionFile
// warning.
func Enumerate(
	mode axes.Mode,
	parts Parts,
	validationErr error,
	sizes axes.Sizes,
	m *comment.Map,
	opts Options,
	dir string,
	exists ExistsFunc,
) Enumeration {
	if mode != axes.ModeGrouped || validationErr != nil {
		return Enumeration{Mode: axes.ModeSingle}
	}

	loop := opts.loop(m)
	count := int64(sizes.Z) * int64(sizes.T)
	if opts.LoopFactor {
		count = int64(sizes.Z) * loop
	}
	start := firstSuffix(m, loop)
	ext := opts.extension()

	out := Enumeration{Mode: axes.ModeGrouped}
	if count > MaxCompanions {
		out.Warnings = append(out.Warnings, diag.Newf(diag.MissingCompanionFile, "",
			"metadata expects %d companion files; checking only the first %d", count, MaxCompanions))
		count = MaxCompanions
	}

	missing := 0
	for i := int64(0); i < count; i++ {
		name := parts.Name(start+i, ext)
		path := filepath.Join(dir, name)
		ok, err := exists(path)
		if err != nil || !ok {
			missing++
			if missing > maxMissingWarnings {
				continue
			}
		}
		switch {
		case err != nil:
			out.Warnings = append(out.Warnings, diag.Newf(diag.MissingCompanionFile, name,
				"cannot check companion file: %v", err))
		case !ok:
			out.Warnings = append(out.Warnings, diag.Newf(diag.MissingCompanionFile, name,
				"companion file not found"))
		default:
			out.Files = append(out.Files, path)
		}
	}
	if extra := missing - maxMissingWarnings; extra > 0 {
		out.Warnings = append(out.Warnings, diag.Newf(diag.MissingCompanionFile, "",
			"%d more companion files not found", extra))
	}
	return out
}

// firstSuffix returns cycleIterIdxDone*numSlices*loop + 1. Missing keys count
// as 0 completed cycles and 1 slice.
func firstSuffix(m *comment.Map, loop int64) int64 {
	done, err := m.Int(KeyCycleIterIdxDone)
	if err != nil || done < 0 {
		done = 0
	}
	slices, err := m.Int(KeySlicesPerVolume)
	if err != nil || slices < 1 {
		slices = 1
	}
	return int64(done)*int64(slices)*loop + 1
}
