// Package axes derives the Z, C and T extents of a ScanImage acquisition from
// its parsed comment block, and decides whether the acquisition spans more
// than one file.
package axes

import (
	"errors"
	"math"
	"strings"

	"github.com/backmassage/scanseries/internal/comment"
	"github.com/backmassage/scanseries/internal/diag"
)

// Comment keys read by Resolve. For C and T the first present key wins.
const (
	KeyNumSlices      = "scanimage.SI.hStackManager.numSlices"
	KeyChannelsActive = "scanimage.SI.hChannels.channelsActive"
	KeyChannelDisplay = "scanimage.SI.hChannels.channelDisplay"
	KeyCycleIdxTotal  = "scanimage.SI.hCycleManager.cycleIdxTotal"
	KeyAcqsPerLoop    = "scanimage.SI.acqsPerLoop"
	KeyZoomFactor     = "scanimage.SI.hRoiManager.scanZoomFactor"
)

var (
	zKeys = []string{KeyNumSlices}
	cKeys = []string{KeyChannelsActive, KeyChannelDisplay}
	tKeys = []string{KeyCycleIdxTotal, KeyAcqsPerLoop}
)

// Mode says whether an acquisition is read from one file or a group of files.
type Mode string

const (
	ModeSingle  Mode = "single"
	ModeGrouped Mode = "grouped"
)

// Sizes holds the axis extents. Every field is at least 1 and at most
// math.MaxUint32.
// PlaneCount is Z*T: channels are interleaved inside each file's pages and
// do not multiply the cross-file plane count.
type Sizes struct {
	Z          int
	C          int
	T          int
	PlaneCount int
}

// DefaultSizes returns the sizes used before any metadata is applied.
func DefaultSizes() Sizes {
	return Sizes{Z: 1, C: 1, T: 1, PlaneCount: 1}
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Sizes    Sizes
	Mode     Mode
	Zoom     float64 // 0 when the comment has no zoom factor.
	Warnings []diag.Warning
}

// Resolve computes axis sizes and mode from m. decoderPages is the page count
// the raster decoder reports for the file; when positive and different from
// the resolved channel count a ChannelCountMismatch warning is added. The
// metadata value stays authoritative.
func Resolve(m *comment.Map, decoderPages int) Resolution {
	var r Resolution
	r.Sizes = DefaultSizes()

	r.Sizes.Z = r.axis(m, zKeys, parseCount)
	r.Sizes.C = r.axis(m, cKeys, parseChannels)
	r.Sizes.T = r.axis(m, tKeys, parseCount)
	if planes := uint64(r.Sizes.Z) * uint64(r.Sizes.T); planes > math.MaxUint32 {
		r.Warnings = append(r.Warnings, diag.Newf(diag.KeyUnparsable, "",
			"Z=%d times T=%d overflows the plane count; keeping defaults", r.Sizes.Z, r.Sizes.T))
		r.Sizes.Z, r.Sizes.T = 1, 1
	}
	r.Sizes.PlaneCount = r.Sizes.Z * r.Sizes.T

	if decoderPages > 0 && decoderPages != r.Sizes.C {
		r.Warnings = append(r.Warnings, diag.Newf(diag.ChannelCountMismatch, "",
			"decoder reports %d pages, metadata resolves %d channels; using metadata",
			decoderPages, r.Sizes.C))
	}

	if zoom, err := m.Float(KeyZoomFactor); err == nil && zoom > 0 {
		r.Zoom = zoom
	}

	r.Mode = ModeSingle
	if r.Sizes.PlaneCount > 1 {
		r.Mode = ModeGrouped
	}
	return r
}

var errNotPositive = errors.New("must be a positive integer")

// axis returns the value of the first usable key in keys, or 1.
func (r *Resolution) axis(m *comment.Map, keys []string, parse func(*comment.Map, string) (int, error)) int {
	for _, key := range keys {
		n, err := parse(m, key)
		if errors.Is(err, comment.ErrKeyMissing) {
			continue
		}
		if err == nil && n < 1 {
			err = errNotPositive
		}
		if err != nil {
			raw, _ := m.Get(key)
			r.Warnings = append(r.Warnings, diag.Newf(diag.KeyUnparsable, key,
				"cannot use value %q (%v); keeping default", raw, err))
			continue
		}
		return n
	}
	return 1
}

func parseCount(m *comment.Map, key string) (int, error) {
	n, err := m.Uint32(key)
	return int(n), err
}

// parseChannels accepts a plain integer or a ';'-delimited channel list such
// as "[1;2;3]", which counts as the number of separators plus one.
func parseChannels(m *comment.Map, key string) (int, error) {
	raw, ok := m.Get(key)
	if !ok {
		return 0, comment.ErrKeyMissing
	}
	if strings.Contains(raw, ";") {
		return strings.Count(raw, ";") + 1, nil
	}
	return parseCount(m, key)
}
