// Package bookmark extracts file paths from macOS bookmark data, the opaque
// blobs the Dock and Launchpad store in place of plain paths.
//
// A bookmark is a little-endian container:
//
//	header:  "book" | size u32 | version u32 | header size u32 | ...
//	body:    first TOC offset u32 (relative to the header size)
//	TOC:     length u32 | 0xfffffffe | id u32 | next TOC u32 | count u32
//	         count × (key u32 | item offset u32 | flags u32)
//	item:    length u32 | type u32 | payload
//
// Offsets inside the body are relative to the header size. Only the item
// types needed to recover the path are decoded.
package bookmark

import (
	"encoding/binary"
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	// ErrMalformed reports data that is not a readable bookmark.
	ErrMalformed = errors.New("bookmark: malformed data")
	// ErrNoPath reports a well-formed bookmark without path components.
	ErrNoPath = errors.New("bookmark: no path")
)

const (
	magic         = "book"
	tocMagic      = 0xfffffffe
	headerMinSize = 16
	tocHeaderSize = 20
	tocEntrySize  = 12
	itemHeader    = 8

	keyPath      = 0x1004
	stringKeyBit = 0x80000000

	typeMask   = 0xffffff00
	typeString = 0x0100
	typeArray  = 0x0600

	maxTOCs = 64
)

// Resolve returns the absolute path recorded in data.
func Resolve(data []byte) (string, error) {
	b, err := parse(data)
	if err != nil {
		return "", err
	}
	return b.path()
}

// Components returns the individual path components recorded in data.
func Components(data []byte) ([]string, error) {
	b, err := parse(data)
	if err != nil {
		return nil, err
	}
	return b.components()
}

type bookmark struct {
	data    []byte
	hdrsize uint32
	tocs    []map[uint32]uint32
}

func parse(data []byte) (*bookmark, error) {
	if len(data) < headerMinSize || string(data[:4]) != magic {
		return nil, ErrMalformed
	}
	size := binary.LittleEndian.Uint32(data[4:8])
	hdrsize := binary.LittleEndian.Uint32(data[12:16])
	if size > uint32(len(data)) {
		size = uint32(len(data))
	}
	if hdrsize < headerMinSize || uint64(hdrsize)+4 > uint64(size) {
		return nil, ErrMalformed
	}

	b := &bookmark{data: data[:size], hdrsize: hdrsize}
	next := binary.LittleEndian.Uint32(data[hdrsize : hdrsize+4])
	seen := map[uint32]bool{}
	for next != 0 {
		if seen[next] || len(seen) >= maxTOCs {
			return nil, ErrMalformed
		}
		seen[next] = true

		base := uint64(hdrsize) + uint64(next)
		if base+tocHeaderSize > uint64(size) {
			return nil, ErrMalformed
		}
		hdr := b.data[base : base+tocHeaderSize]
		if binary.LittleEndian.Uint32(hdr[4:8]) != tocMagic {
			break
		}
		count := uint64(binary.LittleEndian.Uint32(hdr[16:20]))
		entries := base + tocHeaderSize
		if entries+count*tocEntrySize > uint64(size) {
			return nil, ErrMalformed
		}
		toc := make(map[uint32]uint32, count)
		for i := uint64(0); i < count; i++ {
			e := b.data[entries+i*tocEntrySize:]
			key := binary.LittleEndian.Uint32(e[0:4])
			if key&stringKeyBit != 0 {
				continue
			}
			toc[key] = binary.LittleEndian.Uint32(e[4:8])
		}
		b.tocs = append(b.tocs, toc)
		next = binary.LittleEndian.Uint32(hdr[12:16])
	}
	if len(b.tocs) == 0 {
		return nil, ErrMalformed
	}
	return b, nil
}

func (b *bookmark) item(offset uint32) (typ uint32, payload []byte, err error) {
	start := uint64(b.hdrsize) + uint64(offset)
	if start+itemHeader > uint64(len(b.data)) {
		return 0, nil, ErrMalformed
	}
	length := uint64(binary.LittleEndian.Uint32(b.data[start : start+4]))
	typ = binary.LittleEndian.Uint32(b.data[start+4 : start+8])
	end := start + itemHeader + length
	if end > uint64(len(b.data)) {
		return 0, nil, ErrMalformed
	}
	return typ & typeMask, b.data[start+itemHeader : end], nil
}

func (b *bookmark) components() ([]string, error) {
	for _, toc := range b.tocs {
		offset, ok := toc[keyPath]
		if !ok {
			continue
		}
		typ, payload, err := b.item(offset)
		if err != nil {
			return nil, err
		}
		if typ != typeArray || len(payload)%4 != 0 {
			return nil, ErrMalformed
		}
		parts := make([]string, 0, len(payload)/4)
		for i := 0; i < len(payload); i += 4 {
			typ, text, err := b.item(binary.LittleEndian.Uint32(payload[i : i+4]))
			if err != nil {
				return nil, err
			}
			if typ != typeString || !utf8.Valid(text) {
				return nil, ErrMalformed
			}
			parts = append(parts, string(text))
		}
		if len(parts) == 0 {
			return nil, ErrNoPath
		}
		return parts, nil
	}
	return nil, ErrNoPath
}

func (b *bookmark) path() (string, error) {
	parts, err := b.components()
	if err != nil {
		return "", err
	}
	return "/" + strings.Join(parts, "/"), nil
}
