// Package tiff reads the parts of a TIFF or BigTIFF file that series
// resolution needs: the IFD chain (one IFD per page), each page's width and
// height, and the ImageDescription text. Pixel data is never touched.
package tiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// Errors returned by Decode.
var (
	ErrNotTIFF    = errors.New("not a TIFF file")
	ErrCorrupt    = errors.New("corrupt TIFF structure")
	ErrIFDLoop    = errors.New("IFD chain loops")
	ErrTooManyIFD = errors.New("too many IFDs")
)

// MaxPages bounds the IFD chain walk.
const MaxPages = 1 << 20

const (
	tagImageWidth       = 256
	tagImageLength      = 257
	tagImageDescription = 270
)

// TIFF field types used by the tags above.
const (
	typeASCII = 2
	typeShort = 3
	typeLong  = 4
	typeLong8 = 16
)

// Page is one IFD.
type Page struct {
	Width          int
	Height         int
	Description    string
	HasDescription bool
}

// File is a decoded IFD chain.
type File struct {
	Big   bool
	Order binary.ByteOrder
	Pages []Page
}

// Comment returns the first page's ImageDescription.
func (f *File) Comment() (string, bool) {
	if len(f.Pages) == 0 {
		return "", false
	}
	return f.Pages[0].Description, f.Pages[0].HasDescription
}

// PageCount returns the number of IFDs.
func (f *File) PageCount() int { return len(f.Pages) }

// Width returns the width of page, or 0 when out of range.
func (f *File) Width(page int) int {
	if page < 0 || page >= len(f.Pages) {
		return 0
	}
	return f.Pages[page].Width
}

// Height returns the height of page, or 0 when out of range.
func (f *File) Height(page int) int {
	if page < 0 || page >= len(f.Pages) {
		return 0
	}
	return f.Pages[page].Height
}

// OpenFs decodes the TIFF at path on fs.
func OpenFs(fs afero.Fs, path string) (*File, error) {
	fh, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	fi, err := fh.Stat()
	if err != nil {
		return nil, err
	}
	f, err := Decode(fh, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode walks the IFD chain of a TIFF held in r.
func Decode(r io.ReaderAt, size int64) (*File, error) {
	var hdr [16]byte
	if size < 8 {
		return nil, ErrNotTIFF
	}
	n := int64(len(hdr))
	if size < n {
		n = size
	}
	if _, err := r.ReadAt(hdr[:n], 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	f := &File{}
	switch string(hdr[:2]) {
	case "II":
		f.Order = binary.LittleEndian
	case "MM":
		f.Order = binary.BigEndian
	default:
		return nil, ErrNotTIFF
	}

	var next uint64
	switch f.Order.Uint16(hdr[2:4]) {
	case 42:
		next = uint64(f.Order.Uint32(hdr[4:8]))
	case 43:
		if n < 16 || f.Order.Uint16(hdr[4:6]) != 8 {
			return nil, ErrNotTIFF
		}
		f.Big = true
		next = f.Order.Uint64(hdr[8:16])
	default:
		return nil, ErrNotTIFF
	}

	d := &decoder{r: r, size: size, file: f}
	seen := make(map[uint64]bool)
	for next != 0 {
		if seen[next] {
			return nil, ErrIFDLoop
		}
		if len(f.Pages) >= MaxPages {
			return nil, ErrTooManyIFD
		}
		seen[next] = true

		page, following, err := d.readIFD(next)
		if err != nil {
			return nil, err
		}
		f.Pages = append(f.Pages, page)
		next = following
	}
	if len(f.Pages) == 0 {
		return nil, fmt.Errorf("%w: no IFD", ErrCorrupt)
	}
	return f, nil
}

type decoder struct {
	r    io.ReaderAt
	size int64
	file *File
}

func (d *decoder) read(off uint64, n int) ([]byte, error) {
	if off > uint64(d.size) || uint64(n) > uint64(d.size)-off {
		return nil, fmt.Errorf("%w: read of %d bytes at %d past end", ErrCorrupt, n, off)
	}
	buf := make([]byte, n)
	if _, err := d.r.ReadAt(buf, int64(off)); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf, nil
}

// readIFD decodes the IFD at off and returns the offset of the next one.
func (d *decoder) readIFD(off uint64) (Page, uint64, error) {
	order := d.file.Order
	countSize, entrySize, nextSize := 2, 12, 4
	if d.file.Big {
		countSize, entrySize, nextSize = 8, 20, 8
	}

	raw, err := d.read(off, countSize)
	if err != nil {
		return Page{}, 0, err
	}
	var count uint64
	if d.file.Big {
		count = order.Uint64(raw)
	} else {
		count = uint64(order.Uint16(raw))
	}
	if count > uint64(d.size)/uint64(entrySize) {
		return Page{}, 0, fmt.Errorf("%w: IFD entry count %d", ErrCorrupt, count)
	}

	body, err := d.read(off+uint64(countSize), int(count)*entrySize+nextSize)
	if err != nil {
		return Page{}, 0, err
	}

	var p Page
	for i := 0; i < int(count); i++ {
		if err := d.readEntry(body[i*entrySize:(i+1)*entrySize], &p); err != nil {
			return Page{}, 0, err
		}
	}

	tail := body[int(count)*entrySize:]
	var next uint64
	if d.file.Big {
		next = order.Uint64(tail)
	} else {
		next = uint64(order.Uint32(tail))
	}
	return p, next, nil
}

func (d *decoder) readEntry(e []byte, p *Page) error {
	order := d.file.Order
	tag := order.Uint16(e[0:2])
	typ := order.Uint16(e[2:4])

	var count uint64
	var field []byte
	if d.file.Big {
		count = order.Uint64(e[4:12])
		field = e[12:20]
	} else {
		count = uint64(order.Uint32(e[4:8]))
		field = e[8:12]
	}

	switch tag {
	case tagImageWidth, tagImageLength:
		v, ok := d.scalar(typ, field)
		if !ok {
			return nil
		}
		if tag == tagImageWidth {
			p.Width = int(v)
		} else {
			p.Height = int(v)
		}
	case tagImageDescription:
		if typ != typeASCII {
			return nil
		}
		text, err := d.value(field, count)
		if err != nil {
			return err
		}
		p.Description = strings.TrimRight(string(text), "\x00")
		p.HasDescription = true
	}
	return nil
}

// scalar reads a single SHORT, LONG or LONG8 stored inline.
func (d *decoder) scalar(typ uint16, field []byte) (uint64, bool) {
	order := d.file.Order
	switch typ {
	case typeShort:
		return uint64(order.Uint16(field)), true
	case typeLong:
		return uint64(order.Uint32(field)), true
	case typeLong8:
		if d.file.Big {
			return order.Uint64(field), true
		}
	}
	return 0, false
}

// value returns the count bytes of a one-byte-per-element field, reading
// them inline or from the offset stored in field.
func (d *decoder) value(field []byte, count uint64) ([]byte, error) {
	if count <= uint64(len(field)) {
		return field[:count], nil
	}
	var off uint64
	if d.file.Big {
		off = d.file.Order.Uint64(field)
	} else {
		off = uint64(d.file.Order.Uint32(field))
	}
	if count > uint64(d.size) {
		return nil, fmt.Errorf("%w: value of %d bytes", ErrCorrupt, count)
	}
	return d.read(off, int(count))
}
