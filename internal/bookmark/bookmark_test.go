package bookmark

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeaderSize = 48

type tocEntry struct {
	key    uint32
	offset uint32
}

// blobBuilder assembles bookmark data the way the system lays it out: a
// fixed header followed by a body of items and TOCs.
type blobBuilder struct {
	body []byte
}

func newBlobBuilder() *blobBuilder {
	return &blobBuilder{body: make([]byte, 4)}
}

func (b *blobBuilder) u32(v uint32) {
	b.body = binary.LittleEndian.AppendUint32(b.body, v)
}

func (b *blobBuilder) item(typ uint32, payload []byte) uint32 {
	off := uint32(len(b.body))
	b.u32(uint32(len(payload)))
	b.u32(typ)
	b.body = append(b.body, payload...)
	for len(b.body)%4 != 0 {
		b.body = append(b.body, 0)
	}
	return off
}

func (b *blobBuilder) str(s string) uint32 {
	return b.item(typeString|0x01, []byte(s))
}

func (b *blobBuilder) array(offsets ...uint32) uint32 {
	payload := make([]byte, 0, 4*len(offsets))
	for _, o := range offsets {
		payload = binary.LittleEndian.AppendUint32(payload, o)
	}
	return b.item(typeArray|0x01, payload)
}

func (b *blobBuilder) path(parts ...string) uint32 {
	offsets := make([]uint32, 0, len(parts))
	for _, p := range parts {
		offsets = append(offsets, b.str(p))
	}
	return b.array(offsets...)
}

// toc appends a TOC and returns its offset. next links to the following TOC.
func (b *blobBuilder) toc(id, next uint32, entries ...tocEntry) uint32 {
	off := uint32(len(b.body))
	b.u32(uint32(tocHeaderSize - 8 + tocEntrySize*len(entries)))
	b.u32(tocMagic)
	b.u32(id)
	b.u32(next)
	b.u32(uint32(len(entries)))
	for _, e := range entries {
		b.u32(e.key)
		b.u32(e.offset)
		b.u32(0)
	}
	return off
}

func (b *blobBuilder) setFirstTOC(off uint32) {
	binary.LittleEndian.PutUint32(b.body[0:4], off)
}

func (b *blobBuilder) bytes() []byte {
	header := make([]byte, testHeaderSize)
	copy(header, magic)
	binary.LittleEndian.PutUint32(header[4:8], uint32(testHeaderSize+len(b.body)))
	binary.LittleEndian.PutUint32(header[8:12], 0x10040000)
	binary.LittleEndian.PutUint32(header[12:16], testHeaderSize)
	return append(header, b.body...)
}

func safariBookmark() []byte {
	b := newBlobBuilder()
	volume := b.str("Macintosh HD")
	path := b.path("Applications", "Safari.app")
	label := b.str("NSURLDocumentIdentifierKey")
	b.setFirstTOC(b.toc(1, 0,
		tocEntry{key: 0x2010, offset: volume},
		tocEntry{key: stringKeyBit | label, offset: volume},
		tocEntry{key: keyPath, offset: path},
	))
	return b.bytes()
}

func TestResolve(t *testing.T) {
	got, err := Resolve(safariBookmark())
	require.NoError(t, err)
	assert.Equal(t, "/Applications/Safari.app", got)

	parts, err := Components(safariBookmark())
	require.NoError(t, err)
	assert.Equal(t, []string{"Applications", "Safari.app"}, parts)
}

func TestResolve_FollowsTOCChain(t *testing.T) {
	b := newBlobBuilder()
	path := b.path("System", "Applications", "Notes.app")
	volume := b.str("Macintosh HD")
	second := b.toc(2, 0, tocEntry{key: keyPath, offset: path})
	b.setFirstTOC(b.toc(1, second, tocEntry{key: 0x2010, offset: volume}))

	got, err := Resolve(b.bytes())
	require.NoError(t, err)
	assert.Equal(t, "/System/Applications/Notes.app", got)
}

func TestResolve_Truncated(t *testing.T) {
	data := safariBookmark()
	for _, n := range []int{0, 3, 15, testHeaderSize + 2, len(data) - 10} {
		_, err := Resolve(data[:n])
		assert.ErrorIs(t, err, ErrMalformed, "length %d", n)
	}
}

func TestResolve_BadMagic(t *testing.T) {
	data := safariBookmark()
	copy(data, "alis")
	_, err := Resolve(data)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestResolve_NoPath(t *testing.T) {
	b := newBlobBuilder()
	volume := b.str("Macintosh HD")
	b.setFirstTOC(b.toc(1, 0, tocEntry{key: 0x2010, offset: volume}))

	_, err := Resolve(b.bytes())
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestResolve_EmptyPathArray(t *testing.T) {
	b := newBlobBuilder()
	path := b.array()
	b.setFirstTOC(b.toc(1, 0, tocEntry{key: keyPath, offset: path}))

	_, err := Resolve(b.bytes())
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestResolve_PathWithWrongType(t *testing.T) {
	b := newBlobBuilder()
	notArray := b.str("Applications")
	b.setFirstTOC(b.toc(1, 0, tocEntry{key: keyPath, offset: notArray}))

	_, err := Resolve(b.bytes())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestResolve_ItemOutOfRange(t *testing.T) {
	b := newBlobBuilder()
	b.setFirstTOC(b.toc(1, 0, tocEntry{key: keyPath, offset: 0xffff}))

	_, err := Resolve(b.bytes())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestResolve_CyclicTOC(t *testing.T) {
	b := newBlobBuilder()
	volume := b.str("Macintosh HD")
	first := uint32(len(b.body))
	b.toc(1, first, tocEntry{key: 0x2010, offset: volume})
	b.setFirstTOC(first)

	_, err := Resolve(b.bytes())
	assert.ErrorIs(t, err, ErrMalformed)
}
