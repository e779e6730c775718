package series

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/backmassage/scanseries/internal/axes"
	"github.com/backmassage/scanseries/internal/comment"
	"github.com/backmassage/scanseries/internal/companion"
	"github.com/backmassage/scanseries/internal/diag"
	"github.com/backmassage/scanseries/internal/fsys"
	"github.com/backmassage/scanseries/internal/naming"
	"github.com/backmassage/scanseries/internal/store"
	"github.com/backmassage/scanseries/internal/tiff"
)

// Fatal open errors.
var (
	ErrUnreadableFile      = errors.New("primary file cannot be decoded")
	ErrDirectoryUnreadable = errors.New("directory cannot be listed")
)

// DefaultSidecarExtensions are searched when Options leaves them empty.
var DefaultSidecarExtensions = []string{"xml"}

// Decoder is the raster decoder view a Session needs.
type Decoder interface {
	Comment() (string, bool)
	PageCount() int
	Width(page int) int
	Height(page int) int
}

// OpenFunc opens path for decoding.
type OpenFunc func(path string) (Decoder, error)

// TIFFOpener returns an OpenFunc decoding TIFF files on fs.
func TIFFOpener(fs afero.Fs) OpenFunc {
	return func(path string) (Decoder, error) {
		f, err := tiff.OpenFs(fs, path)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// Logger is the minimal logging interface a Session reports through.
type Logger interface {
	Warn(string, ...any)
	Debug(string, ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}

// Options configures a Session.
type Options struct {
	Naming            naming.Options
	SidecarExtensions []string
}

func (o Options) sidecarExtensions() []string {
	if len(o.SidecarExtensions) == 0 {
		return DefaultSidecarExtensions
	}
	return o.SidecarExtensions
}

// Session resolves one open dataset at a time. It is not safe for concurrent
// use. Close restores it to the unresolved state so it can be reused.
type Session struct {
	fs      fsys.Accessor
	open    OpenFunc
	opts    Options
	log     Logger
	store   *store.Store
	locator *companion.Locator

	meta     *comment.Map
	sizes    axes.Sizes
	desc     *Descriptor
	warnings []diag.Warning
}

// NewSession builds a Session. log may be nil.
func NewSession(fs fsys.Accessor, open OpenFunc, opts Options, log Logger) *Session {
	if log == nil {
		log = nopLogger{}
	}
	s := &Session{
		fs:      fs,
		open:    open,
		opts:    opts,
		log:     log,
		store:   store.New(),
		locator: companion.NewLocator(fs),
	}
	s.Close()
	return s
}

// NewTIFFSession builds a Session reading TIFF files from fs.
func NewTIFFSession(fs afero.Fs, opts Options, log Logger) *Session {
	return NewSession(fsys.New(fs), TIFFOpener(fs), opts, log)
}

// Open resolves the acquisition that path belongs to. Any previous state is
// discarded first. On error the session is left unresolved.
func (s *Session) Open(path string) (*Descriptor, error) {
	s.Close()
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	dec, err := s.open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}

	sidecar, err := s.locator.Find(dir, s.opts.sidecarExtensions())
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %w", ErrDirectoryUnreadable, err)
	}

	text, ok := dec.Comment()
	meta := comment.Parse(text, ok, s.store)
	res := axes.Resolve(meta, dec.PageCount())
	warnings := res.Warnings

	var parts naming.Parts
	var verr error
	if res.Mode == axes.ModeGrouped {
		parts, verr = naming.Validate(path, meta, s.opts.Naming)
		if verr != nil {
			warnings = append(warnings, diag.Newf(diag.NamingViolation, filepath.Base(path),
				"%v; opening as a single file", verr))
		}
	}

	enum := naming.Enumerate(res.Mode, parts, verr, res.Sizes, meta, s.opts.Naming, dir, s.fs.Exists)
	warnings = append(warnings, enum.Warnings...)

	desc := &Descriptor{
		Mode:           enum.Mode,
		PrimaryFile:    path,
		CompanionFiles: enum.Files,
		SidecarFile:    sidecar,
	}
	if desc.CompanionFiles == nil {
		desc.CompanionFiles = []string{}
	}

	s.store.SetPixels(dec.Width(0), dec.Height(0), res.Sizes, res.Zoom)
	s.meta = meta
	s.sizes = res.Sizes
	s.desc = desc
	s.warnings = warnings

	for _, w := range warnings {
		s.log.Warn("%s", w)
	}
	s.log.Debug("%s: Z=%d C=%d T=%d planes=%d mode=%s companions=%d sidecar=%q",
		filepath.Base(path), res.Sizes.Z, res.Sizes.C, res.Sizes.T, res.Sizes.PlaneCount,
		desc.Mode, len(desc.CompanionFiles), desc.SidecarFile)
	return desc.Clone(), nil
}

// Close resets every resolved field and the sidecar cache.
func (s *Session) Close() {
	s.meta = comment.NewMap()
	s.sizes = axes.DefaultSizes()
	s.desc = nil
	s.warnings = nil
	s.store.Reset()
	s.locator.Reset()
}

// Descriptor returns a copy of the current descriptor, or nil when nothing
// is open.
func (s *Session) Descriptor() *Descriptor { return s.desc.Clone() }

// Sizes returns the resolved axis sizes (all 1 when nothing is open).
func (s *Session) Sizes() axes.Sizes { return s.sizes }

// Metadata returns the parsed comment of the primary file.
func (s *Session) Metadata() *comment.Map { return s.meta }

// Store returns the metadata sink filled by Open.
func (s *Session) Store() *store.Store { return s.store }

// Warnings returns the non-fatal conditions observed by the last Open.
func (s *Session) Warnings() []diag.Warning { return s.warnings }

// GroupOption reports MustGroup for a grouped acquisition, CanGroup otherwise.
func (s *Session) GroupOption() GroupOption {
	if s.desc == nil {
		return CanGroup
	}
	return s.desc.GroupOption()
}

// IsSingleFile is true when the dataset is exactly the opened file: single
// mode and no sidecar.
func (s *Session) IsSingleFile() bool {
	return s.desc == nil || (s.desc.Mode == axes.ModeSingle && s.desc.SidecarFile == "")
}

// UsedFiles lists every file the dataset uses: the sidecar first, then the
// pixel files unless noPixels is set.
func (s *Session) UsedFiles(noPixels bool) []string {
	if s.desc == nil {
		return nil
	}
	var out []string
	if s.desc.SidecarFile != "" {
		out = append(out, s.desc.SidecarFile)
	}
	if !noPixels {
		out = append(out, s.desc.PixelFiles()...)
	}
	return out
}

// IsThisFormat reports whether dec carries a ScanImage comment.
func IsThisFormat(dec Decoder) bool {
	text, ok := dec.Comment()
	return ok && comment.HasMarker(text)
}

// Sniff opens path and reports whether it is a ScanImage file. Files that
// cannot be decoded are not.
func Sniff(open OpenFunc, path string) bool {
	dec, err := open(path)
	if err != nil {
		return false
	}
	return IsThisFormat(dec)
}
