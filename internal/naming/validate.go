package naming

import (
	"errors"
	"fmt"

	"github.com/backmassage/scanseries/internal/comment"
)

// Naming violations. All of them force single-file mode.
var (
	ErrNoSeparator      = errors.New("file name has no '_' separator")
	ErrNonIntegerSuffix = errors.New("file name suffix is not a non-negative integer")
	ErrSuffixMismatch   = errors.New("file name suffix does not match metadata")
)

// Comment keys used to compute the expected suffix.
const (
	KeyCycleIterIdxDone   = "scanimage.SI.hCycleManager.cycleIterIdxDone"
	KeySlicesPerVolume    = "scanimage.SI.hStackManager.numSlices"
	KeyAcquisitionNumbers = "acquisitionNumbers"
	KeyAcqsPerLoop        = "scanimage.SI.acqsPerLoop"
)

// DefaultExtension is the extension given to synthesized sibling names.
const DefaultExtension = ".tif"

// Options tunes validation and enumeration.
type Options struct {
	// LoopFactor multiplies the suffix arithmetic by acqsPerLoop. This variant
	// has not been checked against real acquisitions and is off by default.
	LoopFactor bool
	// Extension for synthesized sibling names. Empty means DefaultExtension.
	Extension string
}

func (o Options) extension() string {
	if o.Extension == "" {
		return DefaultExtension
	}
	return o.Extension
}

// loop returns the acqsPerLoop multiplier, or 1 when LoopFactor is off or the
// key is unusable.
func (o Options) loop(m *comment.Map) int64 {
	if !o.LoopFactor {
		return 1
	}
	n, err := m.Int(KeyAcqsPerLoop)
	if err != nil || n < 1 {
		return 1
	}
	return int64(n)
}

// NamingError carries the offending base name alongside the violation.
type NamingError struct {
	Name string
	Err  error
}

func (e *NamingError) Error() string { return fmt.Sprintf("%s: %v", e.Name, e.Err) }

func (e *NamingError) Unwrap() error { return e.Err }

// SuffixMismatchError reports a suffix that differs from the value computed
// from metadata. It matches ErrSuffixMismatch under errors.Is.
type SuffixMismatchError struct {
	Actual   int64
	Expected int64
}

func (e *SuffixMismatchError) Error() string {
	return fmt.Sprintf("%v: got %d, expected %d", ErrSuffixMismatch, e.Actual, e.Expected)
}

func (e *SuffixMismatchError) Is(target error) bool { return target == ErrSuffixMismatch }

// ExpectedSuffix computes cycleIterIdxDone*numSlices + acquisitionNumbers
// (times acqsPerLoop on the product when opts.LoopFactor is set). ok is false
// when any of the three keys is missing or unparsable.
func ExpectedSuffix(m *comment.Map, opts Options) (suffix int64, ok bool) {
	done, err := m.Int(KeyCycleIterIdxDone)
	if err != nil {
		return 0, false
	}
	slices, err := m.Int(KeySlicesPerVolume)
	if err != nil {
		return 0, false
	}
	acq, err := m.Int(KeyAcquisitionNumbers)
	if err != nil {
		return 0, false
	}
	return int64(done)*int64(slices)*opts.loop(m) + int64(acq), true
}

// Validate splits path and checks its suffix against the value expected from
// m. When the expected value cannot be computed the check passes.
func Validate(path string, m *comment.Map, opts Options) (Parts, error) {
	parts, err := SplitName(path)
	if err != nil {
		return Parts{}, err
	}
	expected, ok := ExpectedSuffix(m, opts)
	if ok && parts.Suffix != expected {
		return parts, &SuffixMismatchError{Actual: parts.Suffix, Expected: expected}
	}
	return parts, nil
}
