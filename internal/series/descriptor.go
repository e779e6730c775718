package series

import (
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/backmassage/scanseries/internal/axes"
)

// GroupOption tells a host whether the opened file may be treated alone.
type GroupOption string

const (
	// MustGroup: the file is one part of a multi-file acquisition; opening any
	// sibling opens the whole series.
	MustGroup GroupOption = "must-group"
	// CanGroup: the file is the whole dataset.
	CanGroup GroupOption = "can-group"
)

// Descriptor is the resolved layout of one acquisition. A Session hands out
// copies, so changing one never affects the session's own state.
type Descriptor struct {
	Mode           axes.Mode `json:"mode"`
	PrimaryFile    string    `json:"primaryFile"`
	CompanionFiles []string  `json:"companionFiles"`
	SidecarFile    string    `json:"sidecarFile,omitempty"`
}

// Clone returns a deep copy of d.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := *d
	c.CompanionFiles = slices.Clone(d.CompanionFiles)
	if c.CompanionFiles == nil {
		c.CompanionFiles = []string{}
	}
	return &c
}

// GroupOption derives the grouping signal from the mode.
func (d *Descriptor) GroupOption() GroupOption {
	if d.Mode == axes.ModeGrouped {
		return MustGroup
	}
	return CanGroup
}

// PixelFiles returns the files holding planes: the companions, with the
// primary file first when it is not among them.
func (d *Descriptor) PixelFiles() []string {
	if d.Mode != axes.ModeGrouped {
		return []string{d.PrimaryFile}
	}
	if slices.Contains(d.CompanionFiles, d.PrimaryFile) {
		return slices.Clone(d.CompanionFiles)
	}
	return append([]string{d.PrimaryFile}, d.CompanionFiles...)
}

// Contains reports whether path is one of the descriptor's pixel files.
func (d *Descriptor) Contains(path string) bool {
	return slices.Contains(d.PixelFiles(), path)
}

// Fingerprint hashes every field. Two descriptors resolved from the same
// inputs have the same fingerprint.
func (d *Descriptor) Fingerprint() uint64 {
	h := xxhash.New()
	write := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	write(string(d.Mode))
	write(d.PrimaryFile)
	for _, f := range d.CompanionFiles {
		write(f)
	}
	write(d.SidecarFile)
	return h.Sum64()
}
