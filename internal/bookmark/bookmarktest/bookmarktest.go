// Package bookmarktest builds minimal bookmark data for tests.
package bookmarktest

import (
	"encoding/binary"
	"strings"
)

const headerSize = 48

// Encode returns bookmark data whose only TOC entry is the path components
// of the absolute path p.
func Encode(p string) []byte {
	body := make([]byte, 4)
	u32 := func(v uint32) {
		body = binary.LittleEndian.AppendUint32(body, v)
	}
	item := func(typ uint32, payload []byte) uint32 {
		off := uint32(len(body))
		u32(uint32(len(payload)))
		u32(typ)
		body = append(body, payload...)
		for len(body)%4 != 0 {
			body = append(body, 0)
		}
		return off
	}

	var offsets []byte
	for _, part := range strings.Split(strings.Trim(p, "/"), "/") {
		if part == "" {
			continue
		}
		offsets = binary.LittleEndian.AppendUint32(offsets, item(0x0101, []byte(part)))
	}
	path := item(0x0601, offsets)

	toc := uint32(len(body))
	u32(20 - 8 + 12)
	u32(0xfffffffe)
	u32(1)
	u32(0)
	u32(1)
	u32(0x1004)
	u32(path)
	u32(0)
	binary.LittleEndian.PutUint32(body[0:4], toc)

	header := make([]byte, headerSize)
	copy(header, "book")
	binary.LittleEndian.PutUint32(header[4:8], uint32(headerSize+len(body)))
	binary.LittleEndian.PutUint32(header[8:12], 0x10040000)
	binary.LittleEndian.PutUint32(header[12:16], headerSize)
	return append(header, body...)
}
