package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/data/run1", "/data/run1"},
		{"single trailing slash", "/data/run1/", "/data/run1"},
		{"multiple trailing slashes", "/data/run1///", "/data/run1"},
		{"root path", "/", "/"},
		{"relative path", "run1", "run1"},
		{"relative with slash", "run1/", "run1"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Output(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output = "yaml"
	require.Error(t, cfg.Validate())

	cfg.Output = OutputJSON
	require.NoError(t, cfg.Validate())
}

func TestValidate_NormalizesExtensions(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"dotted", ".tif", ".tif", false},
		{"bare", "tiff", ".tiff", false},
		{"upper", ".TIF", ".tif", false},
		{"not tiff", ".png", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CompanionExtension = tt.in
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, cfg.CompanionExtension)
		})
	}

	cfg := DefaultConfig()
	cfg.SidecarExtensions = []string{".xml", " txt ", "", "."}
	require.NoError(t, cfg.Validate())
	require.Equal(t, []string{"xml", "txt"}, cfg.SidecarExtensions)
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, []string{"xml"}, cfg.SidecarExtensions)
	require.Equal(t, ".tif", cfg.CompanionExtension)
	require.False(t, cfg.LoopFactor, "the unverified suffix variant is opt-in")
	require.Equal(t, ColorAuto, cfg.ColorMode)
	require.Equal(t, OutputText, cfg.Output)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	want := DefaultConfig()
	require.Equal(t, &want, cfg)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scanseries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"loop-factor: true\n"+
			"companion-ext: tiff\n"+
			"output: json\n"+
			"sidecar-ext: [xml, txt]\n"), 0o644))

	t.Setenv("SCANSERIES_OUTPUT", "text")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--verbose", "--color", "never"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	require.True(t, cfg.LoopFactor, "from file")
	require.Equal(t, ".tiff", cfg.CompanionExtension, "from file, normalized")
	require.Equal(t, []string{"xml", "txt"}, cfg.SidecarExtensions)
	require.Equal(t, OutputText, cfg.Output, "env beats file")
	require.True(t, cfg.Verbose, "from flag")
	require.Equal(t, ColorNever, cfg.ColorMode, "from flag")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SCANSERIES_COLOR", "rainbow")
	_, err := Load("", nil)
	require.Error(t, err)
}

func TestLoad_SidecarExtensionsFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want []string
	}{
		{"comma separated", "xml,txt", []string{"xml", "txt"}},
		{"space separated", "xml txt", []string{"xml", "txt"}},
		{"dots and padding", ".xml, .ome", []string{"xml", "ome"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SCANSERIES_SIDECAR_EXT", tt.env)
			cfg, err := Load("", nil)
			require.NoError(t, err)
			require.Equal(t, tt.want, cfg.SidecarExtensions)
		})
	}
}

func TestLoad_SidecarExtensionsFromFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--sidecar-ext", "xml,csv"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	require.Equal(t, []string{"xml", "csv"}, cfg.SidecarExtensions)
}
