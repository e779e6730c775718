package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/backmassage/scanseries/internal/axes"
	"github.com/backmassage/scanseries/internal/config"
	"github.com/backmassage/scanseries/internal/display"
	"github.com/backmassage/scanseries/internal/logging"
	"github.com/backmassage/scanseries/internal/naming"
	"github.com/backmassage/scanseries/internal/series"
)

// Result is the outcome of a batch run.
type Result struct {
	Stats   RunStats
	Reports []display.Report
}

// SessionOptions maps the user configuration onto series options.
func SessionOptions(cfg *config.Config) series.Options {
	return series.Options{
		Naming: naming.Options{
			LoopFactor: cfg.LoopFactor,
			Extension:  cfg.CompanionExtension,
		},
		SidecarExtensions: cfg.SidecarExtensions,
	}
}

// Resolve opens path with s and builds its report. The session is left open
// so callers can inspect it further.
func Resolve(fs afero.Fs, s *series.Session, path string) (display.Report, error) {
	desc, err := s.Open(path)
	if err != nil {
		return display.Report{}, err
	}
	r := display.Report{
		Descriptor:  desc,
		GroupOption: s.GroupOption(),
		Pixels:      s.Store().Pixels(),
		Fingerprint: fmt.Sprintf("%016x", desc.Fingerprint()),
		Bytes:       usedBytes(fs, s.UsedFiles(false)),
	}
	for _, w := range s.Warnings() {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r, nil
}

// usedBytes sums the sizes of files that can be stat'ed.
func usedBytes(fs afero.Fs, files []string) int64 {
	var total int64
	for _, f := range files {
		if fi, err := fs.Stat(f); err == nil {
			total += fi.Size()
		}
	}
	return total
}

// Run discovers TIFFs under dir and resolves every series once.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, fs afero.Fs, dir string) (Result, error) {
	var res Result

	files, err := Discover(fs, dir, cfg.Recursive)
	if err != nil {
		return res, fmt.Errorf("discover %s: %w", dir, err)
	}
	res.Stats.Total = len(files)
	log.Info("Found %d TIFF file(s) in %s", len(files), dir)

	opener := series.TIFFOpener(fs)
	session := series.NewTIFFSession(fs, SessionOptions(cfg), log)
	defer session.Close()

	var grouped []*series.Descriptor
	for i, path := range files {
		res.Stats.Current = i + 1
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			return res, ctx.Err()
		}
		grouped = processFile(fs, log, session, opener, path, grouped, &res)
	}

	logSummary(log, &res.Stats)
	return res, nil
}

func processFile(
	fs afero.Fs,
	log *logging.Logger,
	session *series.Session,
	opener series.OpenFunc,
	path string,
	grouped []*series.Descriptor,
	res *Result,
) []*series.Descriptor {
	stats := &res.Stats
	for _, d := range grouped {
		if d.Contains(path) {
			log.Debug("[%d/%d] %s: part of %s", stats.Current, stats.Total,
				filepath.Base(path), filepath.Base(d.PrimaryFile))
			stats.Covered++
			return grouped
		}
	}
	if !series.Sniff(opener, path) {
		log.Debug("[%d/%d] %s: not a ScanImage TIFF", stats.Current, stats.Total, filepath.Base(path))
		stats.Skipped++
		return grouped
	}

	log.Info("[%d/%d] %s", stats.Current, stats.Total, filepath.Base(path))
	r, err := Resolve(fs, session, path)
	if err != nil {
		log.Error("%s: %v", path, err)
		stats.Failed++
		return grouped
	}

	stats.Series++
	stats.TotalBytes += r.Bytes
	if r.Descriptor.Mode == axes.ModeGrouped {
		stats.Grouped++
		grouped = append(grouped, r.Descriptor)
	} else {
		stats.Single++
	}
	res.Reports = append(res.Reports, r)
	return grouped
}

func logSummary(log *logging.Logger, s *RunStats) {
	log.Success("Resolved %d series (%d grouped, %d single) covering %s",
		s.Series, s.Grouped, s.Single, display.FormatBytes(s.TotalBytes))
	if s.Covered > 0 {
		log.Info("Companion files folded into a series: %d", s.Covered)
	}
	if s.Skipped > 0 {
		log.Info("Not ScanImage: %d", s.Skipped)
	}
	if s.Failed > 0 {
		log.Error("Failed: %d", s.Failed)
	}
}
