package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SCANSERIES"

// Config keys shared by viper, config files and flag names.
const (
	KeySidecarExtensions  = "sidecar-ext"
	KeyCompanionExtension = "companion-ext"
	KeyLoopFactor         = "loop-factor"
	KeyRecursive          = "recursive"
	KeyVerbose            = "verbose"
	KeyColor              = "color"
	KeyLogFile            = "log"
	KeyOutput             = "output"
)

// RegisterFlags defines the configuration flags on fs with defaults taken
// from DefaultConfig.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.StringSlice(KeySidecarExtensions, d.SidecarExtensions, "Sidecar metadata extensions to look for")
	fs.String(KeyCompanionExtension, d.CompanionExtension, "Extension of synthesized companion names (tif | tiff)")
	fs.Bool(KeyLoopFactor, d.LoopFactor, "Multiply suffix arithmetic by acqsPerLoop (unverified)")
	fs.BoolP(KeyRecursive, "r", d.Recursive, "Descend into subdirectories when scanning")
	fs.BoolP(KeyVerbose, "v", d.Verbose, "Verbose output")
	fs.String(KeyColor, string(d.ColorMode), "Color mode: auto | always | never")
	fs.StringP(KeyLogFile, "l", d.LogFile, "Append logs to file")
	fs.StringP(KeyOutput, "o", string(d.Output), "Output format: text | json")
}

// Load builds a Config from defaults, then the optional config file at
// path, then SCANSERIES_* environment variables, then flags explicitly set on
// fs. fs may be nil. The result is validated.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault(KeySidecarExtensions, d.SidecarExtensions)
	v.SetDefault(KeyCompanionExtension, d.CompanionExtension)
	v.SetDefault(KeyLoopFactor, d.LoopFactor)
	v.SetDefault(KeyRecursive, d.Recursive)
	v.SetDefault(KeyVerbose, d.Verbose)
	v.SetDefault(KeyColor, string(d.ColorMode))
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyOutput, string(d.Output))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := &Config{
		SidecarExtensions:  splitList(v.GetStringSlice(KeySidecarExtensions)),
		CompanionExtension: v.GetString(KeyCompanionExtension),
		LoopFactor:         v.GetBool(KeyLoopFactor),
		Recursive:          v.GetBool(KeyRecursive),
		Verbose:            v.GetBool(KeyVerbose),
		ColorMode:          ColorMode(strings.ToLower(v.GetString(KeyColor))),
		LogFile:            v.GetString(KeyLogFile),
		Output:             OutputFormat(strings.ToLower(v.GetString(KeyOutput))),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList splits every element on commas. Viper splits an environment
// string on whitespace only, so "xml,txt" arrives as one element.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
