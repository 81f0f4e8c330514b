package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// String marker bytes
const (
	StringAbsent  byte = 0x00
	StringPresent byte = 0x0b
)

// Reader decodes the primitive field types of the replay format from a
// buffered byte source.
//
// Fixed-width reads are atomic: the bytes are peeked, decoded and only then
// discarded, so a read that fails for lack of data consumes nothing and the
// caller may retry with a narrower width.
type Reader struct {
	r *bufio.Reader
}

// NewReader creates a new primitive reader. A *bufio.Reader is used as is.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

// peek returns the next n bytes without consuming them
func (r *Reader) peek(n int, op string) ([]byte, error) {
	b, err := r.r.Peek(n)
	if err != nil {
		return nil, IOError(op, err)
	}
	return b, nil
}

// ReadUint8 reads a single byte
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, IOError("read uint8", err)
	}
	return b, nil
}

// ReadUint16 reads a little-endian unsigned 16-bit integer
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.peek(2, "read uint16")
	if err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(b)
	_, _ = r.r.Discard(2)
	return v, nil
}

// ReadUint32 reads a little-endian unsigned 32-bit integer
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.peek(4, "read uint32")
	if err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(b)
	_, _ = r.r.Discard(4)
	return v, nil
}

// ReadInt64 reads a little-endian signed 64-bit integer
func (r *Reader) ReadInt64() (int64, error) {
	b, err := r.peek(8, "read int64")
	if err != nil {
		return 0, err
	}
	v := int64(binary.LittleEndian.Uint64(b))
	_, _ = r.r.Discard(8)
	return v, nil
}

// ReadULEB128 reads an unsigned variable-width integer, 7 data bits per
// byte with the high bit set while more bytes follow.
func (r *Reader) ReadULEB128() (uint64, error) {
	var (
		result uint64
		shift  uint
	)
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return 0, IOError("read uleb128", err)
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, fmt.Errorf("%w: uleb128 longer than 64 bits", ErrInvalidFormat)
		}
	}
}

// ReadBytes reads exactly n bytes. The buffer grows with the data actually
// read, so a forged length cannot force a huge allocation up front.
func (r *Reader) ReadBytes(n uint64) ([]byte, error) {
	if n > math.MaxInt64 {
		return nil, fmt.Errorf("%w: length %d out of range", ErrInvalidFormat, n)
	}
	var buf bytes.Buffer
	if n <= 1<<16 {
		buf.Grow(int(n))
	}
	if _, err := io.CopyN(&buf, r.r, int64(n)); err != nil {
		return nil, IOError(fmt.Sprintf("read %d bytes", n), err)
	}
	return buf.Bytes(), nil
}

// ReadString reads a marker-prefixed string. ok is false when the marker
// says the string is absent.
func (r *Reader) ReadString() (s string, ok bool, err error) {
	marker, err := r.ReadUint8()
	if err != nil {
		return "", false, err
	}

	switch marker {
	case StringAbsent:
		return "", false, nil
	case StringPresent:
		length, err := r.ReadULEB128()
		if err != nil {
			return "", false, err
		}
		data, err := r.ReadBytes(length)
		if err != nil {
			return "", false, err
		}
		if !utf8.Valid(data) {
			return "", false, fmt.Errorf("%w: string of %d bytes", ErrUTF8, len(data))
		}
		return string(data), true, nil
	default:
		return "", false, &InvalidStringMarkerError{Marker: marker}
	}
}
