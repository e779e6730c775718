// Package tifftest builds minimal TIFF and BigTIFF byte streams for tests.
// Pages carry only width, height and an optional ImageDescription; there is
// no pixel data.
package tifftest

import (
	"encoding/binary"

	"github.com/spf13/afero"
)

// Page describes one IFD to emit.
type Page struct {
	Width          int
	Height         int
	Description    string
	HasDescription bool
}

// ByteOrder is satisfied by binary.LittleEndian and binary.BigEndian.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Options selects the container flavour.
type Options struct {
	Big   bool
	Order ByteOrder // Nil means little endian.
}

// Pages returns n pages of 512x512 where only the first carries desc.
func Pages(n int, desc string) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = Page{Width: 512, Height: 512}
	}
	if n > 0 {
		pages[0].Description = desc
		pages[0].HasDescription = true
	}
	return pages
}

// Build encodes pages.
func Build(opts Options, pages ...Page) []byte {
	var order ByteOrder = binary.LittleEndian
	if opts.Order != nil {
		order = opts.Order
	}
	countSize, entrySize, offSize := 2, 12, 4
	if opts.Big {
		countSize, entrySize, offSize = 8, 20, 8
	}

	var buf []byte
	if order == ByteOrder(binary.BigEndian) {
		buf = append(buf, 'M', 'M')
	} else {
		buf = append(buf, 'I', 'I')
	}
	if opts.Big {
		buf = order.AppendUint16(buf, 43)
		buf = order.AppendUint16(buf, 8)
		buf = order.AppendUint16(buf, 0)
		buf = order.AppendUint64(buf, 16)
	} else {
		buf = order.AppendUint16(buf, 42)
		buf = order.AppendUint32(buf, 8)
	}

	for i, p := range pages {
		ifdOff := len(buf)
		n := 2
		if p.HasDescription {
			n = 3
		}
		ifdSize := countSize + n*entrySize + offSize
		desc := []byte(p.Description + "\x00")
		descOff := ifdOff + ifdSize
		end := descOff
		if p.HasDescription && len(desc) > offSize {
			end += len(desc)
		}
		if end%2 == 1 {
			end++
		}

		if opts.Big {
			buf = order.AppendUint64(buf, uint64(n))
		} else {
			buf = order.AppendUint16(buf, uint16(n))
		}
		buf = appendEntry(buf, order, opts.Big, 256, 4, 1, inline(order, offSize, uint64(p.Width), 4))
		buf = appendEntry(buf, order, opts.Big, 257, 4, 1, inline(order, offSize, uint64(p.Height), 4))
		if p.HasDescription {
			var field []byte
			if len(desc) <= offSize {
				field = make([]byte, offSize)
				copy(field, desc)
			} else {
				field = inline(order, offSize, uint64(descOff), offSize)
			}
			buf = appendEntry(buf, order, opts.Big, 270, 2, uint64(len(desc)), field)
		}

		next := uint64(0)
		if i < len(pages)-1 {
			next = uint64(end)
		}
		if opts.Big {
			buf = order.AppendUint64(buf, next)
		} else {
			buf = order.AppendUint32(buf, uint32(next))
		}

		if p.HasDescription && len(desc) > offSize {
			buf = append(buf, desc...)
		}
		for len(buf) < end {
			buf = append(buf, 0)
		}
	}
	return buf
}

// WriteFile writes a classic little-endian TIFF with pages to path on fs.
func WriteFile(fs afero.Fs, path string, pages ...Page) error {
	return afero.WriteFile(fs, path, Build(Options{}, pages...), 0o644)
}

func appendEntry(buf []byte, order ByteOrder, big bool, tag, typ uint16, count uint64, field []byte) []byte {
	buf = order.AppendUint16(buf, tag)
	buf = order.AppendUint16(buf, typ)
	if big {
		buf = order.AppendUint64(buf, count)
	} else {
		buf = order.AppendUint32(buf, uint32(count))
	}
	return append(buf, field...)
}

// inline encodes v in a field of fieldSize bytes using width bytes, left
// justified as TIFF 6.0 requires.
func inline(order binary.ByteOrder, fieldSize int, v uint64, width int) []byte {
	field := make([]byte, fieldSize)
	switch width {
	case 4:
		order.PutUint32(field, uint32(v))
	case 8:
		order.PutUint64(field, v)
	}
	return field
}
