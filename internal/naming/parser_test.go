package naming

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		want    Parts
		wantErr error
	}{
		{
			name: "plain", path: "/data/run/stack_3.tif",
			want: Parts{Prefix: "stack", Suffix: 3, Extension: ".tif", Width: 1},
		},
		{
			name: "zero padded", path: "position_xyz_00005.tiff",
			want: Parts{Prefix: "position_xyz", Suffix: 5, Extension: ".tiff", Width: 5},
		},
		{
			name: "last dot only", path: "a.b_12.tif",
			want: Parts{Prefix: "a.b", Suffix: 12, Extension: ".tif", Width: 2},
		},
		{
			name: "no extension", path: "stack_7",
			want: Parts{Prefix: "stack", Suffix: 7, Extension: "", Width: 1},
		},
		{
			name: "empty prefix", path: "_0.tif",
			want: Parts{Prefix: "", Suffix: 0, Extension: ".tif", Width: 1},
		},
		{name: "no separator", path: "image.tif", wantErr: ErrNoSeparator},
		{name: "underscore only in extension", path: "image.ti_f", wantErr: ErrNoSeparator},
		{name: "alpha suffix", path: "stack_abc.tif", wantErr: ErrNonIntegerSuffix},
		{name: "empty suffix", path: "stack_.tif", wantErr: ErrNonIntegerSuffix},
		{name: "plus sign", path: "stack_+3.tif", wantErr: ErrNonIntegerSuffix},
		{name: "minus sign", path: "stack_-3.tif", wantErr: ErrNonIntegerSuffix},
		{name: "overflow", path: "stack_99999999999999999999.tif", wantErr: ErrNonIntegerSuffix},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitName(tc.path)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				var ne *NamingError
				require.True(t, errors.As(err, &ne))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParts_Name(t *testing.T) {
	p := Parts{Prefix: "stack", Width: 5}
	require.Equal(t, "stack_00012.tif", p.Name(12, ".tif"))

	p.Width = 1
	require.Equal(t, "stack_123.tif", p.Name(123, ".tif"), "suffix wider than padding is kept whole")
}
