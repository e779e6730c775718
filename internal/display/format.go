package display

import (
	"fmt"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatSizes renders axis sizes as "Z=5 C=3 T=2 (10 planes)".
func FormatSizes(z, c, t, planes int) string {
	noun := "planes"
	if planes == 1 {
		noun = "plane"
	}
	return fmt.Sprintf("Z=%d C=%d T=%d (%d %s)", z, c, t, planes, noun)
}
