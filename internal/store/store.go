// Package store is the metadata sink filled while a series is resolved. It
// keeps every comment key/value pair in arrival order for provenance display,
// plus the pixel-level facts derived from them.
package store

import (
	"github.com/backmassage/scanseries/internal/axes"
	"github.com/backmassage/scanseries/internal/comment"
)

// Entry is one recorded pair.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Pixels describes the resolved pixel layout of a series.
type Pixels struct {
	SizeX      int     `json:"sizeX"`
	SizeY      int     `json:"sizeY"`
	SizeZ      int     `json:"sizeZ"`
	SizeC      int     `json:"sizeC"`
	SizeT      int     `json:"sizeT"`
	ImageCount int     `json:"imageCount"`
	Zoom       float64 `json:"zoom,omitempty"`
}

var _ comment.Sink = (*Store)(nil)

// Store is an in-memory comment.Sink. The zero value is ready to use.
type Store struct {
	entries []Entry
	pixels  Pixels
}

// New returns an empty Store.
func New() *Store { return &Store{} }

// Record appends a pair. Repeated keys are kept; this is a log, not a map.
func (s *Store) Record(key, value string) {
	s.entries = append(s.entries, Entry{Key: key, Value: value})
}

// Entries returns a copy of the recorded pairs.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// SetPixels records the pixel layout for a resolved series.
func (s *Store) SetPixels(width, height int, sizes axes.Sizes, zoom float64) {
	s.pixels = Pixels{
		SizeX:      width,
		SizeY:      height,
		SizeZ:      sizes.Z,
		SizeC:      sizes.C,
		SizeT:      sizes.T,
		ImageCount: sizes.PlaneCount,
		Zoom:       zoom,
	}
}

// Pixels returns the recorded pixel layout.
func (s *Store) Pixels() Pixels { return s.pixels }

// Reset drops everything recorded.
func (s *Store) Reset() {
	s.entries = nil
	s.pixels = Pixels{}
}
