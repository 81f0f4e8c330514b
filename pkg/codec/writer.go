package codec

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Writer encodes primitive field types into an in-memory buffer. Writes
// cannot fail; the accumulated bytes are retrieved with Bytes or WriteTo.
type Writer struct {
	buf     bytes.Buffer
	scratch [binary.MaxVarintLen64]byte
}

// NewWriter creates an empty primitive writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteUint8 appends a single byte
func (w *Writer) WriteUint8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteBool appends 1 for true and 0 for false
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
		return
	}
	w.WriteUint8(0)
}

// WriteUint16 appends a little-endian unsigned 16-bit integer
func (w *Writer) WriteUint16(v uint16) {
	binary.LittleEndian.PutUint16(w.scratch[:2], v)
	w.buf.Write(w.scratch[:2])
}

// WriteUint32 appends a little-endian unsigned 32-bit integer
func (w *Writer) WriteUint32(v uint32) {
	binary.LittleEndian.PutUint32(w.scratch[:4], v)
	w.buf.Write(w.scratch[:4])
}

// WriteInt64 appends a little-endian signed 64-bit integer
func (w *Writer) WriteInt64(v int64) {
	binary.LittleEndian.PutUint64(w.scratch[:8], uint64(v))
	w.buf.Write(w.scratch[:8])
}

// WriteULEB128 appends v as an unsigned variable-width integer
func (w *Writer) WriteULEB128(v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

// WriteString appends a marker-prefixed string. The empty string is
// written as absent.
func (w *Writer) WriteString(s string) {
	if s == "" {
		w.WriteUint8(StringAbsent)
		return
	}
	w.WriteUint8(StringPresent)
	w.WriteULEB128(uint64(len(s)))
	w.buf.WriteString(s)
}

// WriteBytes appends raw bytes with no length prefix
func (w *Writer) WriteBytes(b []byte) {
	w.buf.Write(b)
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the encoded bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteTo implements io.WriterTo
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	return w.buf.WriteTo(dst)
}
