// Command scanseries resolves multi-file ScanImage TIFF acquisitions.
//
// It loads configuration (defaults, optional config file, SCANSERIES_*
// environment, flags), then resolves one file, scans a directory, or sniffs
// files for the ScanImage marker.
package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	root, a := newRootCmd()
	defer a.close()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(fmt.Sprintf("%s (%s)", version, commit)),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		return 1
	}
	return 0
}
