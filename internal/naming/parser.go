package naming

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Parts is a file name split according to the naming convention.
type Parts struct {
	Prefix    string
	Suffix    int64
	Extension string // Including the leading dot; empty when the name has none.
	Width     int    // Number of digits in the suffix as written.
}

// Name rebuilds a file name with the same prefix and padding but a different
// suffix and extension.
func (p Parts) Name(suffix int64, ext string) string {
	digits := strconv.FormatInt(suffix, 10)
	if pad := p.Width - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	return p.Prefix + "_" + digits + ext
}

// SplitName splits the base name of path on its last '.' and the last '_'
// before it. It returns a *NamingError wrapping ErrNoSeparator or
// ErrNonIntegerSuffix when the name does not follow the convention.
func SplitName(path string) (Parts, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	sep := strings.LastIndexByte(stem, '_')
	if sep < 0 {
		return Parts{}, &NamingError{Name: base, Err: ErrNoSeparator}
	}
	prefix, text := stem[:sep], stem[sep+1:]

	if !isDigits(text) {
		return Parts{}, &NamingError{Name: base, Err: ErrNonIntegerSuffix}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Parts{}, &NamingError{Name: base, Err: ErrNonIntegerSuffix}
	}
	return Parts{Prefix: prefix, Suffix: n, Extension: ext, Width: len(text)}, nil
}

// isDigits reports whether s is non-empty and made only of ASCII digits.
// strconv alone would also accept a leading sign.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
