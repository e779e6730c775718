package display

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/backmassage/scanseries/internal/axes"
	"github.com/backmassage/scanseries/internal/config"
	"github.com/backmassage/scanseries/internal/series"
	"github.com/backmassage/scanseries/internal/store"
)

// Report is the printable result of resolving one series.
type Report struct {
	Descriptor  *series.Descriptor `json:"descriptor"`
	GroupOption series.GroupOption `json:"groupOption"`
	Pixels      store.Pixels       `json:"pixels"`
	Fingerprint string             `json:"fingerprint"`
	Bytes       int64              `json:"bytes"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// WriteReports renders reports to w in the requested format. JSON output is
// one array; text output is one block per report.
func WriteReports(w io.Writer, format config.OutputFormat, reports []Report) error {
	if format == config.OutputJSON {
		if reports == nil {
			reports = []Report{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeText(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeText(w io.Writer, r Report) error {
	d := r.Descriptor
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", d.PrimaryFile)
	fmt.Fprintf(&b, "  mode:        %s (%s)\n", d.Mode, r.GroupOption)
	fmt.Fprintf(&b, "  sizes:       %s\n", FormatSizes(r.Pixels.SizeZ, r.Pixels.SizeC, r.Pixels.SizeT, r.Pixels.ImageCount))
	if r.Pixels.SizeX > 0 || r.Pixels.SizeY > 0 {
		fmt.Fprintf(&b, "  plane:       %dx%d\n", r.Pixels.SizeX, r.Pixels.SizeY)
	}
	if r.Pixels.Zoom > 0 {
		fmt.Fprintf(&b, "  zoom:        %g\n", r.Pixels.Zoom)
	}
	files := d.PixelFiles()
	fmt.Fprintf(&b, "  files:       %d (%s)\n", len(files), FormatBytes(r.Bytes))
	if d.Mode == axes.ModeGrouped {
		for _, f := range files {
			fmt.Fprintf(&b, "    %s\n", filepath.Base(f))
		}
	}
	if d.SidecarFile != "" {
		fmt.Fprintf(&b, "  sidecar:     %s\n", filepath.Base(d.SidecarFile))
	}
	fmt.Fprintf(&b, "  fingerprint: %s\n", r.Fingerprint)
	for _, msg := range r.Warnings {
		fmt.Fprintf(&b, "  warning:     %s\n", msg)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
