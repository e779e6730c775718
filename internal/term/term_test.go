package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/backmassage/scanseries/internal/config"
)

func TestConfigure(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	Configure(config.ColorAlways, f)
	require.True(t, Enabled())

	Configure(config.ColorNever, f)
	require.False(t, Enabled())

	Configure(config.ColorAuto, f)
	require.False(t, Enabled(), "a regular file is not a terminal")
}

func TestIsTerminal_Nil(t *testing.T) {
	require.False(t, IsTerminal(nil))
}
