package tiff

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/scanseries/internal/tiff/tifftest"
)

func decodeBytes(t *testing.T, b []byte) (*File, error) {
	t.Helper()
	return Decode(bytes.NewReader(b), int64(len(b)))
}

func TestDecode_Flavours(t *testing.T) {
	const desc = "scanimage.SI.hStackManager.numSlices = 5\nacquisitionNumbers = 1"
	tests := []struct {
		name string
		opts tifftest.Options
	}{
		{"classic little endian", tifftest.Options{}},
		{"classic big endian", tifftest.Options{Order: binary.BigEndian}},
		{"bigtiff little endian", tifftest.Options{Big: true}},
		{"bigtiff big endian", tifftest.Options{Big: true, Order: binary.BigEndian}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := tifftest.Pages(3, desc)
			pages[2].Width, pages[2].Height = 64, 32

			f, err := decodeBytes(t, tifftest.Build(tt.opts, pages...))
			require.NoError(t, err)
			require.Equal(t, tt.opts.Big, f.Big)
			require.Equal(t, 3, f.PageCount())

			got, ok := f.Comment()
			require.True(t, ok)
			require.Equal(t, desc, got)

			require.Equal(t, 512, f.Width(0))
			require.Equal(t, 64, f.Width(2))
			require.Equal(t, 32, f.Height(2))
			require.Zero(t, f.Width(3))
			require.Zero(t, f.Height(-1))
		})
	}
}

func TestDecode_ShortDescriptionInline(t *testing.T) {
	f, err := decodeBytes(t, tifftest.Build(tifftest.Options{}, tifftest.Pages(1, "abc")...))
	require.NoError(t, err)
	got, ok := f.Comment()
	require.True(t, ok)
	require.Equal(t, "abc", got)
}

func TestDecode_NoDescription(t *testing.T) {
	b := tifftest.Build(tifftest.Options{}, tifftest.Page{Width: 8, Height: 8})
	f, err := decodeBytes(t, b)
	require.NoError(t, err)
	_, ok := f.Comment()
	require.False(t, ok)
	require.Equal(t, 1, f.PageCount())
}

func TestDecode_Rejects(t *testing.T) {
	valid := tifftest.Build(tifftest.Options{}, tifftest.Pages(2, "scanimage")...)

	loop := append([]byte(nil), valid...)
	// Point the first IFD's next offset back at itself.
	ifdSize := 2 + 3*12 + 4
	binary.LittleEndian.PutUint32(loop[8+ifdSize-4:], 8)

	truncated := valid[:20]

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"too short", []byte("II*"), ErrNotTIFF},
		{"bad byte order", []byte("XX*\x00\x08\x00\x00\x00"), ErrNotTIFF},
		{"bad magic", []byte("II\x2b\x00\x08\x00\x00\x00"), ErrNotTIFF},
		{"no ifd", []byte("II*\x00\x00\x00\x00\x00"), ErrCorrupt},
		{"loop", loop, ErrIFDLoop},
		{"truncated", truncated, ErrCorrupt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeBytes(t, tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpenFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, tifftest.WriteFile(fs, "/d/a_1.tif", tifftest.Pages(2, "scanimage")...))

	f, err := OpenFs(fs, "/d/a_1.tif")
	require.NoError(t, err)
	require.Equal(t, 2, f.PageCount())

	_, err = OpenFs(fs, "/d/missing.tif")
	require.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/d/junk.tif", []byte("not a tiff at all"), 0o644))
	_, err = OpenFs(fs, "/d/junk.tif")
	require.ErrorIs(t, err, ErrNotTIFF)
}
