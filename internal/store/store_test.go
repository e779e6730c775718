package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/backmassage/scanseries/internal/axes"
)

func TestStore(t *testing.T) {
	s := New()
	s.Record("a", "1")
	s.Record("b", "2")
	s.Record("a", "3")

	require.Equal(t, []Entry{{"a", "1"}, {"b", "2"}, {"a", "3"}}, s.Entries())

	entries := s.Entries()
	entries[0].Value = "changed"
	require.Equal(t, "1", s.Entries()[0].Value, "Entries returns a copy")

	s.SetPixels(512, 256, axes.Sizes{Z: 5, C: 2, T: 3, PlaneCount: 15}, 1.5)
	require.Equal(t, Pixels{SizeX: 512, SizeY: 256, SizeZ: 5, SizeC: 2, SizeT: 3, ImageCount: 15, Zoom: 1.5}, s.Pixels())

	s.Reset()
	require.Empty(t, s.Entries())
	require.Equal(t, Pixels{}, s.Pixels())
}
