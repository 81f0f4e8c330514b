// Package codec provides the primitive field encoding of the osu! replay
// (.osr) format.
//
// Every higher layer of the format is built from a handful of primitives:
//
//	byte     1 byte
//	short    2 bytes, unsigned, little-endian
//	int      4 bytes, unsigned, little-endian
//	long     8 bytes, signed, little-endian
//	uleb128  unsigned varint, 7 data bits per byte, high bit = more follows
//	string   marker byte, then (if 0x0b) uleb128 length and UTF-8 bytes
//	time     long holding 100ns ticks since 0001-01-01 UTC
//
// # Strings
//
// A string starts with a marker byte. 0x00 means the string is absent (the
// format does not distinguish absent from empty, so Writer.WriteString
// writes "" as absent). 0x0b means a uleb128 byte length and that many
// bytes of UTF-8 follow. Any other marker fails with an
// *InvalidStringMarkerError carrying the offending byte.
//
// # Timestamps
//
//	ticks = 621355968000000000 + unix_seconds*10_000_000 + nanoseconds/100
//
// A tick value whose offset from the Unix epoch overflows an int64 (below
// MinTicks) decodes as the current time rather than failing. Every other
// value, including years before 1 and after 9999, decodes exactly.
//
// # Usage
//
//	w := codec.NewWriter()
//	w.WriteUint8(0)
//	w.WriteString("peppy")
//	w.WriteTimestamp(time.Now())
//
//	r := codec.NewReader(bytes.NewReader(w.Bytes()))
//	mode, err := r.ReadUint8()
//	name, ok, err := r.ReadString()
//	played, err := r.ReadTimestamp()
//
// # Error Handling
//
// All failures wrap one of the sentinel errors in this package (ErrIO,
// ErrUnexpectedEOF, ErrInvalidStringMarker, ErrUTF8, ErrInvalidFormat, ...)
// and can be tested with errors.Is.
//
// # Thread Safety
//
// Readers and Writers are not safe for concurrent use; each encode or
// decode call should own its own instance.
package codec
